// Package reliability implements the courier-reliability cache: batched,
// deduplicated lookups of per-customer delivery statistics against an
// external courier history service, fronted by a TTL-bound store.
//
// The package is organized as:
//   - Store: expiring key/value cache contract (memory and Redis backends)
//   - Gateway: the external courier history service contract (HTTP backend)
//   - Cache: cache-aside batch resolution across a page of orders
//   - Tier/Classify: mapping a statistic to its display bucket
package reliability

import "github.com/oms-labs/go-order-backoffice/internal/domain"

// Tier is the qualitative display bucket derived from a success-rate
// statistic.
type Tier string

// Display tiers, from best to worst. TierUnknown covers customers with no
// statistic at all or with zero recorded orders.
const (
	TierGreen   Tier = "green"
	TierOrange  Tier = "orange"
	TierRed     Tier = "red"
	TierUnknown Tier = "unknown"
)

// Success-rate thresholds (percent) separating the colored tiers.
const (
	greenMinRate  = 70
	orangeMinRate = 45
)

// Classify maps a success-rate statistic to its display tier.
//
// Rules:
//   - nil statistic, or TotalOrders == 0: TierUnknown (a customer with no
//     history must never render as zero success)
//   - rate >= 70: TierGreen
//   - 45 <= rate < 70: TierOrange
//   - otherwise: TierRed
//
// Classify is a pure function and total over its input domain.
func Classify(rate *domain.SuccessRate) Tier {
	if rate == nil || rate.TotalOrders == 0 {
		return TierUnknown
	}
	switch {
	case rate.SuccessRate >= greenMinRate:
		return TierGreen
	case rate.SuccessRate >= orangeMinRate:
		return TierOrange
	default:
		return TierRed
	}
}
