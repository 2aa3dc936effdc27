package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/http/middleware"
	"github.com/method3fitness/pike13-ghl-sync/internal/usecase"
)

// RunHistory reads back the audit trail of past runs.
type RunHistory interface {
	FindLast(ctx context.Context) (*entity.SyncRun, error)
}

// SyncHandler exposes the manual trigger. The scheduled trigger calls the
// same use case from the cron wiring.
type SyncHandler struct {
	SyncUseCase *usecase.SyncInactiveClientsUseCase
	History     RunHistory
}

func NewSyncHandler(uc *usecase.SyncInactiveClientsUseCase, history RunHistory) *SyncHandler {
	return &SyncHandler{SyncUseCase: uc, History: history}
}

func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	output, err := h.SyncUseCase.Execute(r.Context(), usecase.SyncInput{Origin: "HTTP"})
	if err != nil {
		if errors.Is(err, usecase.ErrSyncAlreadyRunning) {
			middleware.RecordSyncRun("HTTP", "rejected")
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if usecase.IsDomainError(err) {
			middleware.RecordSyncRun("HTTP", "rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		middleware.RecordSyncRun("HTTP", "failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	middleware.RecordSyncRun("HTTP", "ok")
	middleware.RecordSyncCounts(output.Tagged, output.Untagged, output.Skipped, output.Failed)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(output)
}

// HandleLastRun reports what the most recent persisted run did.
func (h *SyncHandler) HandleLastRun(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		http.Error(w, "run history not configured", http.StatusNotFound)
		return
	}

	run, err := h.History.FindLast(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "no runs recorded yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(run)
}
