// Order listing HTTP handlers.
//
// This file exposes the back-office listing endpoints:
//   - GET /orders           (tabbed, status-filtered, searchable, paginated)
//   - GET /orders/statuses  (status vocabulary and tab layout)
//
// Handlers are transport-thin: they decode query parameters, call the
// listing service, and translate results into JSON responses.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/listing"
	"github.com/oms-labs/go-order-backoffice/internal/utils"
)

//
// Service contracts (context-aware)
//

// OrderListingService defines the complete-orders listing operation consumed
// by HTTP handlers. Implementations must be safe for concurrent use and
// honor the provided context for cancellation and timeouts.
type OrderListingService interface {
	// ListOrders runs the listing pipeline for one request: page query,
	// reliability resolution, note attachment, and status counts.
	ListOrders(ctx context.Context, f listing.Filter) (*listing.OrderListing, error)
}

// IncompleteListingService defines the abandoned-checkout listing operation.
type IncompleteListingService interface {
	// ListIncomplete returns one page of incomplete orders matching the
	// search term, most recently updated first.
	ListIncomplete(ctx context.Context, search string, page int) (*listing.IncompleteListing, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for order and incomplete-order
// listings. It depends on abstract service interfaces to keep transport
// concerns separate from the query core.
type Handlers struct {
	orders     OrderListingService
	incomplete IncompleteListingService
}

// New constructs a Handlers instance bound to the given services.
func New(orders OrderListingService, incomplete IncompleteListingService) *Handlers {
	return &Handlers{orders: orders, incomplete: incomplete}
}

//
// DTOs
//

// ItemDTO is one line item as rendered in a listing row.
type ItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Quantity  int    `json:"quantity"`
}

// ReliabilityDTO carries the courier reliability annotation for one row.
// Rate is omitted when no statistic could be resolved; the tier is then
// "unknown".
type ReliabilityDTO struct {
	Tier string              `json:"tier"`
	Rate *domain.SuccessRate `json:"rate,omitempty"`
}

// OrderRow is one order as rendered in the listing.
type OrderRow struct {
	ID             string         `json:"id"`
	Number         string         `json:"number"`
	Status         string         `json:"status"`
	StatusLabel    string         `json:"status_label"`
	BillingPhone   string         `json:"billing_phone"`
	BillingName    string         `json:"billing_name"`
	BillingAddress string         `json:"billing_address"`
	CreatedAt      time.Time      `json:"created_at"`
	Note           string         `json:"note,omitempty"`
	Items          []ItemDTO      `json:"items"`
	Reliability    ReliabilityDTO `json:"reliability"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// StatusCount is one per-status badge within the active tab. Statuses with
// zero orders are omitted from the response.
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// ListOrdersResponse wraps a page of order rows with tab facets.
type ListOrdersResponse struct {
	Tab          string        `json:"tab"`
	Orders       []OrderRow    `json:"orders"`
	Pagination   Pagination    `json:"pagination"`
	StatusCounts []StatusCount `json:"status_counts"`
	TabTotal     int64         `json:"tab_total"`
}

// StatusInfo pairs a status slug with its display label.
type StatusInfo struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// TabInfo describes one navigation tab and its status set.
type TabInfo struct {
	Tab      string   `json:"tab"`
	Statuses []string `json:"statuses"`
}

// StatusesResponse is the static status vocabulary and tab layout.
type StatusesResponse struct {
	Statuses []StatusInfo `json:"statuses"`
	Tabs     []TabInfo    `json:"tabs"`
}

//
// Endpoints
//

// ListOrders handles GET /orders.
//
// Query parameters:
//   - tab:    all_orders | not-confirmed | confirmed | shipped
//     (unknown values fall back to all_orders)
//   - status: one status slug to narrow the tab, or "all" (default)
//   - s:      free-text search over phone, name, and address
//   - paged:  1-based page number (default 1)
func (h *Handlers) ListOrders(c *gin.Context) {
	f := listing.Filter{
		Tab:    listing.ParseTab(c.Query("tab")),
		Status: c.DefaultQuery("status", listing.StatusAll),
		Search: c.Query("s"),
		Page:   utils.AtoiDefault(c.Query("paged"), 1),
	}

	res, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load orders")
		return
	}

	rows := make([]OrderRow, 0, len(res.Rows))
	for _, r := range res.Rows {
		o := r.Item
		rows = append(rows, OrderRow{
			ID:             o.ID,
			Number:         o.Number,
			Status:         string(o.Status),
			StatusLabel:    o.Status.Label(),
			BillingPhone:   o.BillingPhone,
			BillingName:    o.BillingName,
			BillingAddress: o.BillingAddress,
			CreatedAt:      o.CreatedAt,
			Note:           res.Notes[o.ID],
			Items:          itemDTOs(o.Items),
			Reliability:    ReliabilityDTO{Tier: string(r.Tier), Rate: r.Rate},
		})
	}

	// Badge order follows the tab's configured status order; zero-count
	// statuses are already absent from res.Counts.
	counts := make([]StatusCount, 0, len(res.Counts))
	for _, s := range f.Tab.Statuses() {
		if n, present := res.Counts[s]; present {
			counts = append(counts, StatusCount{Status: string(s), Label: s.Label(), Count: n})
		}
	}

	ok(c, http.StatusOK, ListOrdersResponse{
		Tab:    string(f.Tab),
		Orders: rows,
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   listing.PageSize,
			Total:      res.TotalCount,
			TotalPages: res.PageCount,
			HasNext:    res.Page < res.PageCount,
		},
		StatusCounts: counts,
		TabTotal:     res.TabTotal,
	})
}

// ListStatuses handles GET /orders/statuses.
//
// The response is static per build: the status vocabulary with display
// labels, and the tab layout. Clients use it to render navigation without
// hardcoding the status table.
func (h *Handlers) ListStatuses(c *gin.Context) {
	all := listing.TabAllOrders.Statuses()
	statuses := make([]StatusInfo, 0, len(all))
	for _, s := range all {
		statuses = append(statuses, StatusInfo{Status: string(s), Label: s.Label()})
	}

	tabs := make([]TabInfo, 0, 4)
	for _, t := range listing.Tabs() {
		set := t.Statuses()
		slugs := make([]string, 0, len(set))
		for _, s := range set {
			slugs = append(slugs, string(s))
		}
		tabs = append(tabs, TabInfo{Tab: string(t), Statuses: slugs})
	}

	ok(c, http.StatusOK, StatusesResponse{Statuses: statuses, Tabs: tabs})
}

// itemDTOs maps persisted line items to their listing representation.
func itemDTOs(items []domain.OrderItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
		})
	}
	return out
}
