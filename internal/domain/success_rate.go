package domain

// SuccessRate is the aggregate courier-delivery statistic for one customer
// phone number, as reported by the external courier history service.
//
// SuccessRate is a percentage in [0,100] computed upstream from
// SuccessOrders/TotalOrders; it is carried as given and never recomputed
// here. Invariant: SuccessOrders <= TotalOrders. Values are immutable once
// produced.
//
// The JSON field names match the courier history API payload, which is also
// the shape persisted in the reliability store.
type SuccessRate struct {
	SuccessRate   int `json:"successRate"`
	SuccessOrders int `json:"successOrders"`
	TotalOrders   int `json:"totalOrders"`
}

// Valid reports whether the statistic satisfies its shape invariant:
// non-negative counts, successes not exceeding totals, and a percentage
// within [0,100].
func (r SuccessRate) Valid() bool {
	if r.SuccessOrders < 0 || r.TotalOrders < 0 {
		return false
	}
	if r.SuccessOrders > r.TotalOrders {
		return false
	}
	return r.SuccessRate >= 0 && r.SuccessRate <= 100
}
