// Package domain defines the persistence models for the back-office
// application. This file enumerates order statuses and their display labels.
package domain

// Status is the lifecycle slug of an order.
type Status string

// Order status slugs, grouped by the back-office tab they belong to.
const (
	// Not confirmed.
	StatusProcessing Status = "processing"
	StatusOnHold     Status = "on-hold"
	StatusNoResponse Status = "no-response"
	StatusCancelled  Status = "cancelled"
	StatusPending    Status = "pending"

	// Confirmed.
	StatusCompleted   Status = "completed"
	StatusReadyToShip Status = "ready-to-ship"
	StatusShipped     Status = "shipped"

	// Shipped (with the courier).
	StatusDelivered     Status = "delivered"
	StatusReturned      Status = "returned"
	StatusPartialReturn Status = "partial-return"
)

// statusLabels maps each status slug to its human-readable name.
var statusLabels = map[Status]string{
	StatusProcessing:    "Processing",
	StatusOnHold:        "On Hold",
	StatusNoResponse:    "No Response",
	StatusCancelled:     "Cancelled",
	StatusPending:       "Pending",
	StatusCompleted:     "Completed",
	StatusReadyToShip:   "Ready to Ship",
	StatusShipped:       "Shipped",
	StatusDelivered:     "Delivered",
	StatusReturned:      "Returned",
	StatusPartialReturn: "Partial Return",
}

// Label returns the human-readable name for the status, or the raw slug when
// the status is not a known one.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Known reports whether s is one of the enumerated order statuses.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusLabels returns a copy of the slug-to-label mapping for all known
// statuses. Callers may mutate the returned map freely.
func StatusLabels() map[Status]string {
	out := make(map[Status]string, len(statusLabels))
	for k, v := range statusLabels {
		out[k] = v
	}
	return out
}
