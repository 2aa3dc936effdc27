package worker

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/method3fitness/pike13-ghl-sync/internal/infra/http/middleware"
	"github.com/method3fitness/pike13-ghl-sync/internal/usecase"
)

// SyncScheduler runs the reconciliation on a daily cadence. The studio is
// in Austin but the marketing team works Eastern hours, so the schedule is
// evaluated in America/New_York.
type SyncScheduler struct {
	SyncUseCase *usecase.SyncInactiveClientsUseCase
	Schedule    string
	cron        *cron.Cron
}

func NewSyncScheduler(uc *usecase.SyncInactiveClientsUseCase, schedule string) *SyncScheduler {
	return &SyncScheduler{
		SyncUseCase: uc,
		Schedule:    schedule,
	}
}

func (s *SyncScheduler) Start() error {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return err
	}

	s.cron = cron.New(cron.WithLocation(loc))

	_, err = s.cron.AddFunc(s.Schedule, func() {
		log.Printf("🕗 [CRON] Scheduled inactive client sync starting...")

		output, err := s.SyncUseCase.Execute(context.Background(), usecase.SyncInput{Origin: "CRON"})
		if err != nil {
			middleware.RecordSyncRun("CRON", "failed")
			log.Printf("❌ [CRON] Sync failed: %v", err)
			return
		}

		middleware.RecordSyncRun("CRON", "ok")
		middleware.RecordSyncCounts(output.Tagged, output.Untagged, output.Skipped, output.Failed)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("✅ Scheduler initialized: '%s' (America/New_York)", s.Schedule)
	return nil
}

func (s *SyncScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
