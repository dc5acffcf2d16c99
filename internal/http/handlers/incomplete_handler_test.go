package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
	"github.com/oms-labs/go-order-backoffice/internal/listing"
	"github.com/oms-labs/go-order-backoffice/internal/reliability"
)

func TestListIncomplete_DecodesParamsAndMapsResponse(t *testing.T) {
	rate := domain.SuccessRate{SuccessRate: 40, SuccessOrders: 4, TotalOrders: 10}
	svc := &fakeIncompleteService{result: &listing.IncompleteListing{
		Rows: []listing.Row[domain.IncompleteOrder]{
			{
				Item: domain.IncompleteOrder{
					ID:           "i-1",
					Phone:        "01812345678",
					CustomerName: "Anika",
					Address:      "12 Lake Rd",
					Note:         "asked for COD",
					UpdatedAt:    time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
					Items: []domain.IncompleteItem{
						{ProductID: "p-9", Name: "Kettle", Quantity: 1},
					},
				},
				Tier: reliability.TierRed,
				Rate: &rate,
			},
		},
		TotalCount: 21,
		PageCount:  2,
		Page:       1,
	}}
	r := newTestRouter(&fakeOrderService{}, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/incomplete-orders?s=anika&paged=1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotSearch != "anika" || svc.gotPage != 1 {
		t.Errorf("params = %q / %d", svc.gotSearch, svc.gotPage)
	}

	var resp ListIncompleteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 1 {
		t.Fatalf("orders = %d", len(resp.Orders))
	}
	row := resp.Orders[0]
	if row.CustomerName != "Anika" || row.Note != "asked for COD" {
		t.Errorf("row = %+v", row)
	}
	if row.Reliability.Tier != "red" || row.Reliability.Rate == nil {
		t.Errorf("reliability = %+v", row.Reliability)
	}
	if len(row.Items) != 1 || row.Items[0].Name != "Kettle" {
		t.Errorf("items = %+v", row.Items)
	}
	p := resp.Pagination
	if p.Total != 21 || p.TotalPages != 2 || !p.HasNext {
		t.Errorf("pagination = %+v", p)
	}
}

func TestListIncomplete_DefaultPage(t *testing.T) {
	svc := &fakeIncompleteService{result: &listing.IncompleteListing{Page: 1}}
	r := newTestRouter(&fakeOrderService{}, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/incomplete-orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.gotPage != 1 || svc.gotSearch != "" {
		t.Errorf("params = %q / %d", svc.gotSearch, svc.gotPage)
	}
}

func TestListIncomplete_ServiceErrorReturnsEnvelope(t *testing.T) {
	svc := &fakeIncompleteService{err: errors.New("db down")}
	r := newTestRouter(&fakeOrderService{}, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/incomplete-orders", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != ErrCodeListFailed {
		t.Errorf("code = %q", resp.Code)
	}
}
