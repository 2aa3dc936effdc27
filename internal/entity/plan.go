package entity

import "strings"

// PlanState holds the membership plan flags as Pike13 reports them.
type PlanState struct {
	Available bool
	OnHold    bool
	Canceled  bool
	Ended     bool
	Exhausted bool
}

// IsEligible: the plan is usable for outreach purposes. A paused, canceled,
// ended or exhausted plan disqualifies itself even when marked available.
func (p PlanState) IsEligible() bool {
	return p.Available && !p.OnHold && !p.Canceled && !p.Ended && !p.Exhausted
}

// EligibleAny applies OR semantics across plans: one good plan is enough.
// A client with zero plans is never eligible.
func EligibleAny(plans []PlanState) bool {
	for _, p := range plans {
		if p.IsEligible() {
			return true
		}
	}
	return false
}

// TruthyFlag normalizes the plan flags coming off the wire. The reporting
// API is inconsistent: the same column arrives as a real boolean on some
// tenants and as a single-character token ("Y", "T", "1") on others.
func TruthyFlag(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToUpper(strings.TrimSpace(val)) {
		case "Y", "T", "1", "TRUE", "YES":
			return true
		}
		return false
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}
