// Package listing – Service
//
// This file wires the query engine, the reliability cache, and the note
// repository into the two listing operations the HTTP layer exposes:
// complete orders (tabbed, status-filtered) and incomplete orders
// (search + pagination only). Reliability resolution is strictly
// best-effort; only repository failures abort a listing.
package listing

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/utils"
)

// Resolver resolves courier reliability statistics for a batch of phone
// numbers. Failures surface as absent entries, never as errors.
type Resolver interface {
	ResolveBatch(ctx context.Context, phones []string) map[string]domain.SuccessRate
}

// NoteRepo loads the latest human note per order for a page of order IDs.
type NoteRepo interface {
	LatestCustomerNotes(ctx context.Context, db *gorm.DB, orderIDs []string) (map[string]string, error)
}

// IncompleteRepo defines the repository contract for the incomplete-orders
// listing.
type IncompleteRepo interface {
	// ListIncompleteOrders returns one page matching the search term,
	// most recently updated first, along with the total match count.
	ListIncompleteOrders(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.IncompleteOrder, int64, error)
}

// OrderListing is the page-ready result of the complete-orders listing.
type OrderListing struct {
	Rows       []Row[domain.Order]
	Notes      map[string]string // order ID -> latest human note
	TotalCount int64
	PageCount  int
	Page       int

	// Counts drives the per-status badges; TabTotal the "All" badge.
	Counts   map[domain.Status]int64
	TabTotal int64
}

// IncompleteListing is the page-ready result of the incomplete-orders
// listing.
type IncompleteListing struct {
	Rows       []Row[domain.IncompleteOrder]
	TotalCount int64
	PageCount  int
	Page       int
}

// Service composes listings from the engine, the reliability resolver, and
// the repositories. All dependencies are injected; there is no package
// state.
type Service struct {
	DB         *gorm.DB
	Engine     *Engine
	Resolver   Resolver
	Notes      NoteRepo
	Incomplete IncompleteRepo
}

// NewService constructs a listing Service.
func NewService(db *gorm.DB, engine *Engine, resolver Resolver, notes NoteRepo, incomplete IncompleteRepo) *Service {
	return &Service{
		DB:         db,
		Engine:     engine,
		Resolver:   resolver,
		Notes:      notes,
		Incomplete: incomplete,
	}
}

// ListOrders runs the full listing pipeline for one request: query the
// filtered page, resolve reliability statistics for its unique phones,
// join rows, attach latest notes, and compute the tab's status counts.
func (s *Service) ListOrders(ctx context.Context, f Filter) (*OrderListing, error) {
	page, err := s.Engine.Query(ctx, f)
	if err != nil {
		return nil, err
	}

	stats := s.Resolver.ResolveBatch(ctx, Phones(page.Orders))
	rows := Compose(page.Orders, stats)

	notes := map[string]string{}
	if s.Notes != nil && len(page.Orders) > 0 {
		ids := make([]string, 0, len(page.Orders))
		for _, o := range page.Orders {
			ids = append(ids, o.ID)
		}
		notes, err = s.Notes.LatestCustomerNotes(ctx, s.DB, ids)
		if err != nil {
			return nil, fmt.Errorf("load order notes: %w", err)
		}
	}

	counts, err := s.Engine.StatusCounts(ctx, f.Tab)
	if err != nil {
		return nil, err
	}
	tabTotal, err := s.Engine.TotalForTab(ctx, f.Tab)
	if err != nil {
		return nil, err
	}

	return &OrderListing{
		Rows:       rows,
		Notes:      notes,
		TotalCount: page.TotalCount,
		PageCount:  page.PageCount,
		Page:       page.Page,
		Counts:     counts,
		TabTotal:   tabTotal,
	}, nil
}

// ListIncomplete runs the listing pipeline for abandoned checkouts: search
// and pagination only, no tabs or status facets, with the same reliability
// annotation as the complete listing.
func (s *Service) ListIncomplete(ctx context.Context, search string, page int) (*IncompleteListing, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	orders, total, err := s.Incomplete.ListIncompleteOrders(ctx, s.DB, search, offset, PageSize)
	if err != nil {
		return nil, fmt.Errorf("query incomplete orders: %w", err)
	}

	stats := s.Resolver.ResolveBatch(ctx, Phones(orders))

	return &IncompleteListing{
		Rows:       Compose(orders, stats),
		TotalCount: total,
		PageCount:  utils.PageCount(total, PageSize),
		Page:       page,
	}, nil
}
