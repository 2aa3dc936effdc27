package entity

import "time"

// SyncRun is the outcome of one reconciliation pass. Persisted for audit
// only; the reconciled state itself lives in Pike13 and GoHighLevel.
type SyncRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DryRun     bool      `json:"dry_run"`

	RowsFetched int `json:"rows_fetched"` // raw report rows across all pages
	PagesRead   int `json:"pages_read"`
	Tagged      int `json:"tagged"`          // contacts created or newly tagged
	Untagged    int `json:"untagged"`        // inactive tags removed on reactivation
	AlreadySync int `json:"already_in_sync"` // idempotent no-ops (tag already present/absent)
	Ineligible  int `json:"ineligible"`      // past threshold but no eligible plan (incl. fail-closed)
	Skipped     int `json:"skipped"`         // malformed rows (bad email, missing days/name)
	Failed      int `json:"failed"`          // writes that exhausted their retries
}
