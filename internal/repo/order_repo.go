// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the order queries behind the
// back-office listing.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only query
// composition. Tab/status resolution lives in the listing package.
//
// Search semantics: the term is matched with SQL LIKE against the billing
// phone, billing name, and billing address. SQLite's LIKE is
// case-insensitive for ASCII, so search here is effectively
// case-insensitive; non-ASCII terms match case-sensitively.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListOrders returns one page of orders whose status is in statuses,
// optionally narrowed by a search term, newest CreatedAt first, plus the
// total number of matching rows. Line items are preloaded for display.
//
// Ties on CreatedAt keep the repository's natural row order; no secondary
// sort key is applied.
func ListOrders(ctx context.Context, db *gorm.DB, statuses []domain.Status, search string, offset, limit int) ([]domain.Order, int64, error) {
	q := db.WithContext(ctx).Model(&domain.Order{}).Where("status IN ?", statuses)
	if search != "" {
		pat := "%" + escapeLike(search) + "%"
		q = q.Where("billing_phone LIKE ? ESCAPE '\\' OR billing_name LIKE ? ESCAPE '\\' OR billing_address LIKE ? ESCAPE '\\'", pat, pat, pat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := q.
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountOrdersByStatus returns the number of orders currently in status.
func CountOrdersByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// escapeLike escapes LIKE wildcards in a user-supplied search term so "50%"
// matches literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
