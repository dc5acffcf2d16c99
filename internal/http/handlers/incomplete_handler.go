// Incomplete-order listing HTTP handlers.
//
// This file exposes the abandoned-checkout listing:
//   - GET /incomplete-orders  (searchable, paginated)
//
// Incomplete orders have no status lifecycle, so the endpoint carries no
// tab or status parameters; rows are ordered by last customer activity.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/listing"
	"github.com/oms-labs/go-order-backoffice/internal/utils"
)

// IncompleteRow is one abandoned checkout as rendered in the listing.
type IncompleteRow struct {
	ID           string         `json:"id"`
	Phone        string         `json:"phone"`
	CustomerName string         `json:"customer_name"`
	Address      string         `json:"address"`
	Note         string         `json:"note,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Items        []ItemDTO      `json:"items"`
	Reliability  ReliabilityDTO `json:"reliability"`
}

// ListIncompleteResponse wraps a page of incomplete-order rows.
type ListIncompleteResponse struct {
	Orders     []IncompleteRow `json:"orders"`
	Pagination Pagination      `json:"pagination"`
}

// ListIncomplete handles GET /incomplete-orders.
//
// Query parameters:
//   - s:     free-text search over phone, name, address, and note
//   - paged: 1-based page number (default 1)
func (h *Handlers) ListIncomplete(c *gin.Context) {
	search := c.Query("s")
	page := utils.AtoiDefault(c.Query("paged"), 1)

	res, err := h.incomplete.ListIncomplete(c.Request.Context(), search, page)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load incomplete orders")
		return
	}

	rows := make([]IncompleteRow, 0, len(res.Rows))
	for _, r := range res.Rows {
		o := r.Item
		rows = append(rows, IncompleteRow{
			ID:           o.ID,
			Phone:        o.Phone,
			CustomerName: o.CustomerName,
			Address:      o.Address,
			Note:         o.Note,
			UpdatedAt:    o.UpdatedAt,
			Items:        incompleteItemDTOs(o.Items),
			Reliability:  ReliabilityDTO{Tier: string(r.Tier), Rate: r.Rate},
		})
	}

	ok(c, http.StatusOK, ListIncompleteResponse{
		Orders: rows,
		Pagination: Pagination{
			Page:       res.Page,
			PageSize:   listing.PageSize,
			Total:      res.TotalCount,
			TotalPages: res.PageCount,
			HasNext:    res.Page < res.PageCount,
		},
	})
}

// incompleteItemDTOs maps captured cart lines to their listing representation.
func incompleteItemDTOs(items []domain.IncompleteItem) []ItemDTO {
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
