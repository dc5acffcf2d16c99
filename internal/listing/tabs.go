// Package listing implements the order-list query core: tab and status
// filtering, free-text search, pagination, status counting, and composition
// of page rows with courier reliability tiers. Rendering is out of scope;
// the HTTP layer serializes the composed rows as-is.
package listing

import (
	"fmt"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// Tab is a named, statically configured grouping of order statuses shown as
// a navigation facet in the back office.
type Tab string

// The four navigation tabs. TabAllOrders is the union of the other three.
const (
	TabAllOrders    Tab = "all_orders"
	TabNotConfirmed Tab = "not-confirmed"
	TabConfirmed    Tab = "confirmed"
	TabShipped      Tab = "shipped"
)

// DefaultTab is used when a request omits the tab parameter or names an
// unknown one.
const DefaultTab = TabAllOrders

// tabStatuses is the tab-to-statuses table. It is data, not code: fixed at
// startup and validated by ValidateTabs. Statuses within a tab are mutually
// exclusive by business convention, but nothing here enforces exclusivity.
var tabStatuses = map[Tab][]domain.Status{
	TabNotConfirmed: {
		domain.StatusProcessing,
		domain.StatusOnHold,
		domain.StatusNoResponse,
		domain.StatusCancelled,
		domain.StatusPending,
	},
	TabConfirmed: {
		domain.StatusCompleted,
		domain.StatusReadyToShip,
		domain.StatusShipped,
	},
	TabShipped: {
		domain.StatusDelivered,
		domain.StatusReturned,
		domain.StatusPartialReturn,
	},
}

func init() {
	all := make([]domain.Status, 0,
		len(tabStatuses[TabNotConfirmed])+len(tabStatuses[TabConfirmed])+len(tabStatuses[TabShipped]))
	all = append(all, tabStatuses[TabNotConfirmed]...)
	all = append(all, tabStatuses[TabConfirmed]...)
	all = append(all, tabStatuses[TabShipped]...)
	tabStatuses[TabAllOrders] = all
}

// Tabs returns the navigation tabs in display order.
func Tabs() []Tab {
	return []Tab{TabAllOrders, TabNotConfirmed, TabConfirmed, TabShipped}
}

// ParseTab resolves a raw tab parameter; unknown or empty values fall back
// to DefaultTab.
func ParseTab(raw string) Tab {
	t := Tab(raw)
	if _, ok := tabStatuses[t]; ok {
		return t
	}
	return DefaultTab
}

// Statuses returns the tab's status set. The returned slice must not be
// mutated by callers.
func (t Tab) Statuses() []domain.Status {
	return tabStatuses[t]
}

// ValidateTabs checks the tab table at startup: every tab must carry a
// non-empty set of known statuses.
func ValidateTabs() error {
	for tab, statuses := range tabStatuses {
		if len(statuses) == 0 {
			return fmt.Errorf("tab %q has an empty status set", tab)
		}
		for _, s := range statuses {
			if !s.Known() {
				return fmt.Errorf("tab %q references unknown status %q", tab, s)
			}
		}
	}
	return nil
}
