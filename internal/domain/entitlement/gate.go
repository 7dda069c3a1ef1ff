// Package entitlement decides whether a caller may run a generation.
package entitlement

import "github.com/creatorkit/server/internal/model"

// FreeLimit is the number of accepted generations a free user gets per period.
const FreeLimit = 15

// DenyReason explains a negative decision.
type DenyReason string

const (
	DenyNone            DenyReason = ""
	DenyPremiumRequired DenyReason = "premium_required"
	DenyQuotaExceeded   DenyReason = "quota_exceeded"
)

// Message returns the user-facing text for the reason.
func (r DenyReason) Message() string {
	switch r {
	case DenyPremiumRequired:
		return "This feature is only available for premium users."
	case DenyQuotaExceeded:
		return "You have reached your free usage limit. Please upgrade to premium."
	}
	return ""
}

// Decision is the outcome of the quota gate.
type Decision struct {
	Allowed bool
	// NextUsageCount is the count to commit after the generation succeeds.
	// Nil when no usage change applies (premium callers, denials).
	NextUsageCount *int
	Reason         DenyReason
}

// Gate evaluates entitlement against a free-tier limit.
type Gate struct {
	limit int
}

// NewGate returns a gate with the given free limit. A non-positive limit
// falls back to FreeLimit.
func NewGate(limit int) Gate {
	if limit <= 0 {
		limit = FreeLimit
	}
	return Gate{limit: limit}
}

// Limit returns the configured free limit.
func (g Gate) Limit() int {
	return g.limit
}

// Decide is pure: it reads its arguments and nothing else.
func (g Gate) Decide(plan model.Plan, freeUsageCount int, requiresPremium bool) Decision {
	if requiresPremium && !plan.IsPremium() {
		return Decision{Reason: DenyPremiumRequired}
	}
	if plan.IsPremium() {
		return Decision{Allowed: true}
	}
	if freeUsageCount >= g.limit {
		return Decision{Reason: DenyQuotaExceeded}
	}
	next := freeUsageCount + 1
	return Decision{Allowed: true, NextUsageCount: &next}
}

// Decide applies the default FreeLimit.
func Decide(plan model.Plan, freeUsageCount int, requiresPremium bool) Decision {
	return NewGate(FreeLimit).Decide(plan, freeUsageCount, requiresPremium)
}
