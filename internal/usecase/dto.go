package usecase

// SyncInput identifies who triggered the run. Everything else (threshold,
// dry-run, test filter) comes from the config the use case was built with.
type SyncInput struct {
	Origin string // "HTTP", "CRON"
}

type SyncOutput struct {
	RunID       string `json:"run_id"`
	DryRun      bool   `json:"dry_run"`
	RowsFetched int    `json:"rows_fetched"`
	PagesRead   int    `json:"pages_read"`
	Tagged      int    `json:"tagged"`
	Untagged    int    `json:"untagged"`
	AlreadySync int    `json:"already_in_sync"`
	Ineligible  int    `json:"ineligible"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
	Msg         string `json:"msg"`
}
