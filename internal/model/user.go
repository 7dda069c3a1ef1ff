package model

import (
	"strconv"
	"strings"
	"time"
)

// Plan is the entitlement tier issued by the identity provider.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// String returns the string representation of the plan.
func (p Plan) String() string {
	return string(p)
}

// IsPremium reports whether the plan lifts the free quota and unlocks premium kinds.
func (p Plan) IsPremium() bool {
	return p == PlanPremium
}

// ParsePlan maps a claim value to a Plan. Anything but "premium" is free.
func ParsePlan(s string) Plan {
	if strings.EqualFold(strings.TrimSpace(s), string(PlanPremium)) {
		return PlanPremium
	}
	return PlanFree
}

// Caller is the resolved identity behind a request.
type Caller struct {
	UserID         string
	Plan           Plan
	FreeUsageCount int
	Period         string
	IsAdmin        bool
}

// UserUsage is the per-user metadata row that backs the free quota.
type UserUsage struct {
	UserID         string    `gorm:"primaryKey;type:text"`
	Period         string    `gorm:"type:text;not null"`
	FreeUsageCount int       `gorm:"not null;default:0"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for UserUsage.
func (UserUsage) TableName() string {
	return "user_usages"
}

// UsagePeriod returns the calendar-month bucket (UTC) that t falls in.
func UsagePeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// CountIn returns the stored count if it belongs to period, otherwise 0.
// A row from an earlier month reads as a fresh quota.
func (u *UserUsage) CountIn(period string) int {
	if u == nil || u.Period != period {
		return 0
	}
	return u.FreeUsageCount
}

// NormalizeUserID renders an identity in the canonical string form used for
// ownership and like-set membership. Numeric ids from JSON claims arrive as
// float64 and are printed without exponent or fraction.
func NormalizeUserID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case nil:
		return ""
	default:
		return ""
	}
}
