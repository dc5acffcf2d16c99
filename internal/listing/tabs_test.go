package listing

import (
	"testing"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

func TestParseTab(t *testing.T) {
	cases := []struct {
		in   string
		want Tab
	}{
		{"all_orders", TabAllOrders},
		{"not-confirmed", TabNotConfirmed},
		{"confirmed", TabConfirmed},
		{"shipped", TabShipped},
		{"", DefaultTab},
		{"bogus", DefaultTab},
	}
	for _, tc := range cases {
		if got := ParseTab(tc.in); got != tc.want {
			t.Errorf("ParseTab(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAllOrdersIsUnionOfOtherTabs(t *testing.T) {
	all := make(map[domain.Status]struct{})
	for _, tab := range []Tab{TabNotConfirmed, TabConfirmed, TabShipped} {
		for _, s := range tab.Statuses() {
			all[s] = struct{}{}
		}
	}
	got := TabAllOrders.Statuses()
	if len(got) != len(all) {
		t.Fatalf("all_orders has %d statuses, want %d", len(got), len(all))
	}
	for _, s := range got {
		if _, ok := all[s]; !ok {
			t.Fatalf("all_orders contains %q which no tab declares", s)
		}
	}
}

func TestValidateTabs(t *testing.T) {
	if err := ValidateTabs(); err != nil {
		t.Fatalf("ValidateTabs: %v", err)
	}
}
