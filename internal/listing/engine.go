// Package listing – Engine
//
// This file implements the order query engine: it composes the active tab,
// an optional status override, free-text search, and pagination into a
// single repository query, and computes the per-status counts that drive
// the tab badges.
package listing

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/utils"
)

// PageSize is the fixed number of rows per listing page.
const PageSize = 20

// StatusAll is the status-override value meaning "no override": the tab's
// full status set applies.
const StatusAll = "all"

// Filter carries the listing request parameters after transport decoding.
type Filter struct {
	// Tab selects the status grouping; resolve raw input with ParseTab.
	Tab Tab
	// Status optionally narrows the query to one status. The override is
	// permissive: a status outside the tab's set still executes as given.
	Status string
	// Search is an optional free-text term matched against customer
	// identifying fields.
	Search string
	// Page is 1-based; values < 1 are treated as 1.
	Page int
}

// statuses resolves the effective status set for the filter.
func (f Filter) statuses() []domain.Status {
	if f.Status != "" && f.Status != StatusAll {
		return []domain.Status{domain.Status(f.Status)}
	}
	return f.Tab.Statuses()
}

// OrderRepo defines the repository contract required by Engine.
type OrderRepo interface {
	// ListOrders returns one page of orders matching the status set and
	// search term, newest first, along with the total match count.
	ListOrders(ctx context.Context, db *gorm.DB, statuses []domain.Status, search string, offset, limit int) ([]domain.Order, int64, error)

	// CountOrdersByStatus returns the number of orders in one status.
	CountOrdersByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error)
}

// Page is the result of one listing query.
type Page struct {
	// Orders is the page slice, ordered newest first.
	Orders []domain.Order
	// TotalCount is the number of orders matching the filter overall.
	TotalCount int64
	// PageCount is ceil(TotalCount / PageSize). A requested page beyond
	// PageCount yields an empty Orders slice, not an error.
	PageCount int
	// Page echoes the effective (clamped) page number.
	Page int
}

// Engine resolves listing queries and status counts against the order
// repository. The repository is the only source of order data; a repository
// failure is propagated with no partial or cached fallback.
type Engine struct {
	// DB is the GORM handle passed through to the repository.
	DB *gorm.DB
	// Repo is the order repository used by this engine.
	Repo OrderRepo
	// PageSize overrides the fixed page size; zero means PageSize.
	PageSize int
}

// NewEngine constructs an Engine with the fixed default page size.
func NewEngine(db *gorm.DB, repo OrderRepo) *Engine {
	return &Engine{DB: db, Repo: repo, PageSize: PageSize}
}

func (e *Engine) pageSize() int {
	if e.PageSize > 0 {
		return e.PageSize
	}
	return PageSize
}

// Query returns the filtered, paginated order page.
func (e *Engine) Query(ctx context.Context, f Filter) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	size := e.pageSize()
	offset := (f.Page - 1) * size

	orders, total, err := e.Repo.ListOrders(ctx, e.DB, f.statuses(), f.Search, offset, size)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return &Page{
		Orders:     orders,
		TotalCount: total,
		PageCount:  utils.PageCount(total, size),
		Page:       f.Page,
	}, nil
}

// StatusCounts returns the per-status order counts shown as sub-tab badges.
// Each status is counted with an independent query, never derived from the
// paginated result, so the badges are unaffected by any status override.
// Statuses with zero orders are omitted.
//
// For the all-orders tab every known status is counted, matching the
// original behavior of linking every non-empty status there.
func (e *Engine) StatusCounts(ctx context.Context, tab Tab) (map[domain.Status]int64, error) {
	statuses := tab.Statuses()
	if tab == TabAllOrders {
		statuses = make([]domain.Status, 0, len(domain.StatusLabels()))
		for s := range domain.StatusLabels() {
			statuses = append(statuses, s)
		}
	}

	counts := make(map[domain.Status]int64, len(statuses))
	for _, s := range statuses {
		n, err := e.Repo.CountOrdersByStatus(ctx, e.DB, s)
		if err != nil {
			return nil, fmt.Errorf("count status %q: %w", s, err)
		}
		if n > 0 {
			counts[s] = n
		}
	}
	return counts, nil
}

// TotalForTab sums CountOrdersByStatus over exactly the statuses declared in
// the tab, independent of any status override applied to the paginated
// query.
func (e *Engine) TotalForTab(ctx context.Context, tab Tab) (int64, error) {
	var total int64
	for _, s := range tab.Statuses() {
		n, err := e.Repo.CountOrdersByStatus(ctx, e.DB, s)
		if err != nil {
			return 0, fmt.Errorf("count status %q: %w", s, err)
		}
		total += n
	}
	return total, nil
}
