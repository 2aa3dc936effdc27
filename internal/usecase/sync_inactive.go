package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/method3fitness/pike13-ghl-sync/internal/config"
	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/http/middleware"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/integration/gohighlevel"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/integration/pike13"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/queue"
)

// SyncInactiveClientsUseCase reconciles inactive-client status between the
// Pike13 client report and GoHighLevel. Clients past the inactivity
// threshold that still hold an eligible plan get the inactive tag; clients
// back under the threshold get it removed.
type SyncInactiveClientsUseCase struct {
	Report ReportSourceInterface
	CRM    CRMGatewayInterface
	Queue  QueueProducerInterface
	Runs   SyncRunRepositoryInterface
	Config config.SyncConfig

	limiter *rate.Limiter
	running sync.Mutex
}

func NewSyncInactiveClientsUseCase(
	report ReportSourceInterface,
	crm CRMGatewayInterface,
	producer QueueProducerInterface,
	runs SyncRunRepositoryInterface,
	cfg config.SyncConfig,
) *SyncInactiveClientsUseCase {
	limit := rate.Inf
	if cfg.WriteDelay > 0 {
		limit = rate.Every(cfg.WriteDelay)
	}
	return &SyncInactiveClientsUseCase{
		Report:  report,
		CRM:     crm,
		Queue:   producer,
		Runs:    runs,
		Config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (uc *SyncInactiveClientsUseCase) Execute(ctx context.Context, input SyncInput) (*SyncOutput, error) {
	// Overlapping runs race create-vs-update on the same contact, so a
	// second trigger is refused instead of queued.
	if !uc.running.TryLock() {
		return nil, ErrSyncAlreadyRunning
	}
	defer uc.running.Unlock()

	run := &entity.SyncRun{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		DryRun:    uc.Config.DryRun,
	}

	log.Printf("🔄 [SYNC] Run %s started (origin=%s threshold=%dd dry_run=%v)",
		run.ID, input.Origin, uc.Config.ThresholdDays, run.DryRun)

	// 1. Fetch the full report before touching the CRM. Any fetch failure
	// is fatal here: without the report there is nothing to reconcile
	// against, and no writes have happened yet.
	records, err := uc.fetchReport(ctx, run)
	if err != nil {
		middleware.RecordIntegrationError("pike13")
		return nil, &TechnicalError{
			Code:    "REPORT_FETCH_FAILED",
			Message: "pike13 client report fetch failed: " + err.Error(),
		}
	}

	// 2. Partition the raw rows. Malformed rows are counted and excluded
	// from both passes.
	var inactive, active []*entity.ClientRecord
	for _, record := range records {
		if uc.Config.TestEmail != "" && !strings.EqualFold(record.Email, uc.Config.TestEmail) {
			continue
		}
		if errs := ValidateClientRecord(record); len(errs) > 0 {
			run.Skipped++
			log.Printf("⏭️ [SYNC] Skipping row person=%s: %v", record.PersonID, errs[0])
			continue
		}
		if record.Inactive(uc.Config.ThresholdDays) {
			inactive = append(inactive, record)
		} else {
			active = append(active, record)
		}
	}

	// 3. Deactivation pass: recently-seen clients lose the tag. Driven
	// purely by recency; plan state is irrelevant on the way out.
	for _, record := range active {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		uc.removeTagIfPresent(ctx, record, run)
	}

	// 4. Activation pass: threshold-crossers with an eligible plan get
	// created/tagged. Per-client failures are counted, never propagated.
	for _, record := range inactive {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		uc.tagIfEligible(ctx, record, run)
	}

	run.FinishedAt = time.Now()
	uc.saveRun(ctx, run)

	log.Printf("✅ [SYNC] Run %s done: fetched=%d tagged=%d untagged=%d in_sync=%d ineligible=%d skipped=%d failed=%d",
		run.ID, run.RowsFetched, run.Tagged, run.Untagged, run.AlreadySync, run.Ineligible, run.Skipped, run.Failed)

	msg := "sync completed"
	if run.DryRun {
		msg = "dry run completed, no writes performed"
	}

	return &SyncOutput{
		RunID:       run.ID,
		DryRun:      run.DryRun,
		RowsFetched: run.RowsFetched,
		PagesRead:   run.PagesRead,
		Tagged:      run.Tagged,
		Untagged:    run.Untagged,
		AlreadySync: run.AlreadySync,
		Ineligible:  run.Ineligible,
		Skipped:     run.Skipped,
		Failed:      run.Failed,
		Msg:         msg,
	}, nil
}

// fetchReport walks the cursor-paginated client report to the end. The page
// cap guards against a source that never clears has_more.
func (uc *SyncInactiveClientsUseCase) fetchReport(ctx context.Context, run *entity.SyncRun) ([]*entity.ClientRecord, error) {
	var records []*entity.ClientRecord
	cursor := ""

	for page := 0; page < uc.Config.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		reportPage, err := uc.Report.FetchClientReportPage(ctx, pike13.ReportQuery{
			Fields:        pike13.ClientReportFields,
			Limit:         uc.Config.PageSize,
			StartingAfter: cursor,
		})
		if err != nil {
			return nil, err
		}
		run.PagesRead++

		for _, row := range reportPage.Rows {
			run.RowsFetched++
			record, err := pike13.DecodeClientRow(row)
			if err != nil {
				run.Skipped++
				log.Printf("⏭️ [SYNC] Undecodable report row: %v", err)
				continue
			}
			records = append(records, record)
		}

		if !reportPage.HasMore {
			return records, nil
		}
		cursor = reportPage.LastKey
	}

	log.Printf("⚠️ [SYNC] Report still has_more after %d pages, stopping early", uc.Config.MaxPages)
	return records, nil
}

// removeTagIfPresent handles one recently-active client: if their CRM
// contact carries the inactive tag, take it off. Contact-not-found and
// tag-absent are normal no-ops.
func (uc *SyncInactiveClientsUseCase) removeTagIfPresent(ctx context.Context, record *entity.ClientRecord, run *entity.SyncRun) {
	contact, err := uc.lookupContact(ctx, record.Email)
	if err != nil {
		run.Failed++
		middleware.RecordIntegrationError("gohighlevel")
		log.Printf("❌ [SYNC] Lookup failed for %s: %v", record.Email, err)
		return
	}

	if contact == nil || !contact.HasTag(uc.Config.InactiveTag) {
		run.AlreadySync++
		return
	}

	if uc.Config.DryRun {
		run.Untagged++
		log.Printf("🧪 [DRY RUN] Would remove tag %q from %s (%s)", uc.Config.InactiveTag, record.FullName, record.Email)
		return
	}

	if err := uc.limiter.Wait(ctx); err != nil {
		return
	}

	err = uc.retry(ctx, "ghl remove tags", func() error {
		return uc.CRM.RemoveTags(ctx, contact.ID, []string{uc.Config.InactiveTag})
	})
	if err != nil {
		run.Failed++
		middleware.RecordIntegrationError("gohighlevel")
		log.Printf("❌ [SYNC] Failed to untag %s: %v", record.Email, err)
		return
	}

	run.Untagged++
	log.Printf("🔁 [SYNC] Removed %q from %s (%s)", uc.Config.InactiveTag, record.FullName, record.Email)
}

// tagIfEligible handles one past-threshold client: check plan eligibility,
// then create or tag the CRM contact.
func (uc *SyncInactiveClientsUseCase) tagIfEligible(ctx context.Context, record *entity.ClientRecord, run *entity.SyncRun) {
	days := *record.DaysSinceLastVisit

	if !uc.isEligible(ctx, record) {
		run.Ineligible++
		return
	}

	contact, err := uc.lookupContact(ctx, record.Email)
	if err != nil {
		run.Failed++
		middleware.RecordIntegrationError("gohighlevel")
		log.Printf("❌ [SYNC] Lookup failed for %s: %v", record.Email, err)
		return
	}

	// Idempotent short-circuit: already tagged means nothing to send.
	if contact != nil && contact.HasTag(uc.Config.InactiveTag) {
		run.AlreadySync++
		return
	}

	firstName, lastName := record.SplitName()

	if uc.Config.DryRun {
		run.Tagged++
		log.Printf("🧪 [DRY RUN] Would tag %s %s (%s) with %q, days=%d",
			firstName, lastName, record.Email, uc.Config.InactiveTag, days)
		return
	}

	if err := uc.limiter.Wait(ctx); err != nil {
		return
	}

	if contact != nil {
		err = uc.retry(ctx, "ghl add tags", func() error {
			return uc.CRM.AddTags(ctx, contact.ID, []string{uc.Config.InactiveTag})
		})
		if err == nil {
			// The custom field refresh is best-effort: the tag is the
			// business-critical write.
			if ferr := uc.CRM.UpdateDaysSinceVisit(ctx, contact.ID, days); ferr != nil {
				log.Printf("⚠️ [SYNC] Tagged %s but custom field refresh failed: %v", record.Email, ferr)
			}
		}
	} else {
		err = uc.retry(ctx, "ghl create contact", func() error {
			_, cerr := uc.CRM.CreateContact(ctx, gohighlevel.CreateContactInput{
				Email:              record.Email,
				FirstName:          firstName,
				LastName:           lastName,
				Tags:               []string{uc.Config.InactiveTag},
				DaysSinceLastVisit: days,
			})
			return cerr
		})
	}

	if err != nil {
		run.Failed++
		middleware.RecordIntegrationError("gohighlevel")
		log.Printf("❌ [SYNC] Failed to tag %s: %v", record.Email, err)
		return
	}

	run.Tagged++
	log.Printf("📬 [SYNC] Tagged %s %s (%s), %d days since last visit", firstName, lastName, record.Email, days)

	uc.publishWinback(ctx, record, days)
}

// isEligible applies OR semantics across the client's plans: one available,
// non-paused plan is enough. A plan lookup failure fails closed.
func (uc *SyncInactiveClientsUseCase) isEligible(ctx context.Context, record *entity.ClientRecord) bool {
	plans := record.Plans
	if len(plans) == 0 {
		fetched, err := uc.Report.FetchPlanStates(ctx, record.PersonID)
		if err != nil {
			middleware.RecordIntegrationError("pike13")
			log.Printf("⚠️ [SYNC] Plan lookup failed for %s, treating as ineligible: %v", record.Email, err)
			return false
		}
		plans = fetched
	}
	return entity.EligibleAny(plans)
}

func (uc *SyncInactiveClientsUseCase) lookupContact(ctx context.Context, email string) (*entity.Contact, error) {
	var contact *entity.Contact
	err := uc.retry(ctx, "ghl lookup", func() error {
		found, lerr := uc.CRM.LookupContactByEmail(ctx, email)
		if lerr != nil {
			return lerr
		}
		contact = found
		return nil
	})
	return contact, err
}

// publishWinback hands a freshly-tagged client to the outreach worker.
// Best-effort: a broker hiccup must not fail the client that was already
// tagged successfully.
func (uc *SyncInactiveClientsUseCase) publishWinback(ctx context.Context, record *entity.ClientRecord, days int) {
	if uc.Queue == nil {
		return
	}
	err := uc.Queue.PublishWinback(ctx, queue.WinbackPayload{
		Email:              record.Email,
		Name:               record.FullName,
		DaysSinceLastVisit: days,
	})
	if err != nil {
		middleware.RecordIntegrationError("rabbitmq")
		log.Printf("⚠️ [SYNC] Tagged %s but winback publish failed: %v", record.Email, err)
	}
}

func (uc *SyncInactiveClientsUseCase) saveRun(ctx context.Context, run *entity.SyncRun) {
	if uc.Runs == nil || run.DryRun {
		return
	}
	if err := uc.Runs.Create(ctx, run); err != nil {
		log.Printf("⚠️ [SYNC] Could not persist run %s: %v", run.ID, err)
	}
}

func (uc *SyncInactiveClientsUseCase) retry(ctx context.Context, name string, fn func() error) error {
	return withRetry(ctx, name, uc.Config.RetryAttempts, uc.Config.RetryBaseDelay, fn)
}
