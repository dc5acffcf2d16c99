// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file loads the order notes shown in the listing.
//
// Automated flows write system notes (status transitions, courier API
// results) alongside notes typed by staff. The listing shows only the
// newest human note per order, so system notes are filtered out by content
// here rather than flagged at write time — the note writers predate this
// listing and carry no marker column.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// systemNoteMarkers identify automated notes by characteristic substrings.
var systemNoteMarkers = []string{
	"Status updated from custom order page.",
	"Order status changed from",
	"was upgraded to",
	"API returned",
	"was generated for this customer",
	"sent to",
}

// isSystemNote reports whether the note content matches a known automated
// message pattern.
func isSystemNote(content string) bool {
	for _, marker := range systemNoteMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// LatestCustomerNotes returns, for each order in orderIDs that has one, the
// content of its newest non-system note. Orders without a human note are
// absent from the result. One query serves the whole page.
func LatestCustomerNotes(ctx context.Context, db *gorm.DB, orderIDs []string) (map[string]string, error) {
	notes := map[string]string{}
	if len(orderIDs) == 0 {
		return notes, nil
	}

	var rows []domain.OrderNote
	err := db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// Rows arrive newest first; keep the first human note per order.
	for _, n := range rows {
		if _, done := notes[n.OrderID]; done {
			continue
		}
		if isSystemNote(n.Content) {
			continue
		}
		notes[n.OrderID] = n.Content
	}
	return notes, nil
}
