package usecase

import (
	"context"

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/integration/gohighlevel"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/integration/pike13"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/queue"
)

type ReportSourceInterface interface {
	FetchClientReportPage(ctx context.Context, query pike13.ReportQuery) (*pike13.ReportPage, error)
	FetchPlanStates(ctx context.Context, personID string) ([]entity.PlanState, error)
}

type CRMGatewayInterface interface {
	LookupContactByEmail(ctx context.Context, email string) (*entity.Contact, error)
	CreateContact(ctx context.Context, input gohighlevel.CreateContactInput) (string, error)
	UpdateDaysSinceVisit(ctx context.Context, contactID string, days int) error
	AddTags(ctx context.Context, contactID string, tags []string) error
	RemoveTags(ctx context.Context, contactID string, tags []string) error
}

type QueueProducerInterface interface {
	PublishWinback(ctx context.Context, payload queue.WinbackPayload) error
}

type SyncRunRepositoryInterface interface {
	Create(ctx context.Context, run *entity.SyncRun) error
}
