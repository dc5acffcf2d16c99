// Package listing – Composer
//
// This file joins a page of orders with their courier reliability
// statistics into the row set handed to the renderer. Both listing variants
// (orders and incomplete orders) share the same extraction and join logic;
// the only per-variant knowledge is how to read the customer phone, which
// each domain type exposes through CustomerPhone.
package listing

import (
	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/reliability"
)

// PhoneCarrier is any listed record that carries a customer phone number.
type PhoneCarrier interface {
	CustomerPhone() string
}

// Row pairs one listed record with its reliability annotation. Rate is nil
// when no statistic could be resolved; the row then renders as TierUnknown,
// never as zero success.
type Row[T PhoneCarrier] struct {
	Item T
	Tier reliability.Tier
	Rate *domain.SuccessRate
}

// Phones extracts the distinct non-empty phone identifiers from a page of
// records, in first-appearance order. The identifiers are normalized the
// same way the cache derives its keys, so extraction and lookup can never
// disagree on whitespace or shape.
func Phones[T PhoneCarrier](items []T) []string {
	seen := make(map[string]struct{}, len(items))
	phones := make([]string, 0, len(items))
	for _, it := range items {
		p := reliability.NormalizePhone(it.CustomerPhone())
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		phones = append(phones, p)
	}
	return phones
}

// Compose joins records with their resolved statistics, preserving the
// input sequence. A record whose phone has no statistic (empty phone,
// gateway failure) keeps its row with TierUnknown and a nil Rate; rows are
// never dropped.
func Compose[T PhoneCarrier](items []T, stats map[string]domain.SuccessRate) []Row[T] {
	rows := make([]Row[T], 0, len(items))
	for _, it := range items {
		var rate *domain.SuccessRate
		if s, ok := stats[reliability.NormalizePhone(it.CustomerPhone())]; ok {
			rate = &s
		}
		rows = append(rows, Row[T]{
			Item: it,
			Tier: reliability.Classify(rate),
			Rate: rate,
		})
	}
	return rows
}
