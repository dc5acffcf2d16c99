// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides queries for incomplete
// (abandoned-checkout) orders.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// ListIncompleteOrders returns one page of incomplete orders, most recently
// updated first, plus the total match count. The search term is matched
// against the phone and the typed customer fields (name, address, note) —
// the same fields the original serialized payload carried. See the search
// semantics note in order_repo.go; the same LIKE behavior applies.
func ListIncompleteOrders(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.IncompleteOrder, int64, error) {
	q := db.WithContext(ctx).Model(&domain.IncompleteOrder{})
	if search != "" {
		pat := "%" + escapeLike(search) + "%"
		q = q.Where(
			"phone LIKE ? ESCAPE '\\' OR customer_name LIKE ? ESCAPE '\\' OR address LIKE ? ESCAPE '\\' OR note LIKE ? ESCAPE '\\'",
			pat, pat, pat, pat,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.IncompleteOrder
	err := q.
		Preload("Items").
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
