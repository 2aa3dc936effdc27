package entity

import (
	"strings"
	"time"
)

// ClientRecord is one row from the Pike13 client report. DaysSinceLastVisit
// is a pointer because the report can return null for clients who never
// visited; a nil value makes the record unusable for reconciliation.
type ClientRecord struct {
	PersonID           string
	Email              string
	FullName           string
	LastVisitDate      *time.Time
	DaysSinceLastVisit *int
	Plans              []PlanState
}

// Inactive reports whether the client is past the inactivity threshold.
// Records without a days count are neither active nor inactive.
func (c *ClientRecord) Inactive(thresholdDays int) bool {
	if c.DaysSinceLastVisit == nil {
		return false
	}
	return *c.DaysSinceLastVisit > thresholdDays
}

// SplitName splits the full name into first/last on the first whitespace
// run, matching what GoHighLevel expects on contact creation.
func (c *ClientRecord) SplitName() (first, last string) {
	fields := strings.Fields(c.FullName)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
