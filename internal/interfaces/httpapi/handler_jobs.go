package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

func (h *Handler) RunReconcileTotalsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileTotalsJob")
	defer span.End()

	if h.reconcileService == nil {
		writeError(ctx, w, fmt.Errorf("%w: reconcile service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.reconcileService.ReconcileTotals(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile totals job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reconcileResultDTO{
		PlayersChecked: result.PlayersChecked,
		PlayersFixed:   result.PlayersFixed,
		TeamsChecked:   result.TeamsChecked,
		TeamsFixed:     result.TeamsFixed,
		DurationMS:     result.Duration.Milliseconds(),
	})
}
