// Package domain defines the persistence models for orders, incomplete
// (abandoned-checkout) orders, line items, and order notes. These types are
// mapped with GORM and form the core data layer of the back-office
// application. Order data is read-only from the listing core's perspective.
package domain

import (
	"time"
)

// Order represents a placed order as shown in the back-office listing.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Number: human-facing order number shown in the list.
//   - Status: one of the order Status slugs; indexed for tab filtering.
//   - BillingPhone: customer phone; the identifier used for courier
//     reliability lookups. Indexed for search.
//   - BillingName / BillingAddress: customer display fields.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM; the listing is
//     ordered by CreatedAt descending.
type Order struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	Number         string    `json:"number"          gorm:"type:varchar(32);not null;index"`
	Status         Status    `json:"status"          gorm:"type:varchar(32);not null;index:idx_orders_status"`
	BillingPhone   string    `json:"billing_phone"   gorm:"type:varchar(32);index:idx_orders_phone"`
	BillingName    string    `json:"billing_name"    gorm:"type:varchar(255)"`
	BillingAddress string    `json:"billing_address" gorm:"type:varchar(512)"`
	CreatedAt      time.Time `json:"created_at"      gorm:"index:idx_orders_created"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Items are the order's line items, cascade-deleted with the order.
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// CustomerPhone returns the phone identifier used for reliability lookups.
func (o Order) CustomerPhone() string { return o.BillingPhone }

// OrderItem is a single line item belonging to an order. Product display
// data (name, SKU, image) is denormalized at write time so the listing does
// not need a product-catalog join.
type OrderItem struct {
	ID        string `json:"id"         gorm:"type:char(36);primaryKey"`
	OrderID   string `json:"order_id"   gorm:"type:char(36);not null;index:idx_items_order"`
	ProductID string `json:"product_id" gorm:"type:char(36);not null"`
	Name      string `json:"name"       gorm:"type:varchar(255);not null"`
	SKU       string `json:"sku"        gorm:"type:varchar(64)"`
	ImageURL  string `json:"image_url"  gorm:"type:varchar(512)"`
	Quantity  int    `json:"quantity"   gorm:"not null;default:1"`
}

// TableName returns the database table name for OrderItem.
func (OrderItem) TableName() string { return "order_items" }

// OrderNote is an internal annotation on an order. Besides notes typed in by
// staff, automated flows append system notes (status transitions, API call
// results); the listing surfaces only the latest human note per order.
type OrderNote struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	OrderID   string    `json:"order_id"   gorm:"type:char(36);not null;index:idx_notes_order,priority:1"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_notes_order,priority:2"`
}

// TableName returns the database table name for OrderNote.
func (OrderNote) TableName() string { return "order_notes" }

// IncompleteOrder captures an abandoned checkout: the customer started
// entering details but never placed the order. Customer fields are typed
// columns decoded once at capture time, never re-parsed downstream.
//
// The incomplete listing is ordered by UpdatedAt descending, since rows are
// rewritten each time the visitor touches the checkout form.
type IncompleteOrder struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Phone        string    `json:"phone"         gorm:"type:varchar(32);index:idx_incomplete_phone"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(255)"`
	Address      string    `json:"address"       gorm:"type:varchar(512)"`
	Note         string    `json:"note"          gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    gorm:"index:idx_incomplete_updated"`

	// Items mirror the abandoned cart contents.
	Items []IncompleteItem `json:"items" gorm:"foreignKey:IncompleteOrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for IncompleteOrder.
func (IncompleteOrder) TableName() string { return "incomplete_orders" }

// CustomerPhone returns the phone identifier used for reliability lookups.
func (o IncompleteOrder) CustomerPhone() string { return o.Phone }

// IncompleteItem is a cart line captured with an incomplete order.
type IncompleteItem struct {
	ID                string `json:"id"                  gorm:"type:char(36);primaryKey"`
	IncompleteOrderID string `json:"incomplete_order_id" gorm:"type:char(36);not null;index:idx_incomplete_items_order"`
	ProductID         string `json:"product_id"          gorm:"type:char(36);not null"`
	Name              string `json:"name"                gorm:"type:varchar(255);not null"`
	SKU               string `json:"sku"                 gorm:"type:varchar(64)"`
	ImageURL          string `json:"image_url"           gorm:"type:varchar(512)"`
	Quantity          int    `json:"quantity"            gorm:"not null;default:1"`
}

// TableName returns the database table name for IncompleteItem.
func (IncompleteItem) TableName() string { return "incomplete_items" }
