package reliability

import (
	"testing"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		name string
		rate *domain.SuccessRate
		want Tier
	}{
		{"nil statistic", nil, TierUnknown},
		{"no recorded orders", &domain.SuccessRate{SuccessRate: 100, SuccessOrders: 0, TotalOrders: 0}, TierUnknown},
		{"rate 70 is green", &domain.SuccessRate{SuccessRate: 70, SuccessOrders: 7, TotalOrders: 10}, TierGreen},
		{"rate 100 is green", &domain.SuccessRate{SuccessRate: 100, SuccessOrders: 10, TotalOrders: 10}, TierGreen},
		{"rate 69 is orange", &domain.SuccessRate{SuccessRate: 69, SuccessOrders: 69, TotalOrders: 100}, TierOrange},
		{"rate 45 is orange", &domain.SuccessRate{SuccessRate: 45, SuccessOrders: 45, TotalOrders: 100}, TierOrange},
		{"rate 44 is red", &domain.SuccessRate{SuccessRate: 44, SuccessOrders: 44, TotalOrders: 100}, TierRed},
		{"rate 0 with history is red", &domain.SuccessRate{SuccessRate: 0, SuccessOrders: 0, TotalOrders: 5}, TierRed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.rate); got != tc.want {
				t.Fatalf("Classify(%+v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}
