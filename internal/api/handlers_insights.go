package api

import (
	"net/http"
	"time"

	respond "github.com/daybook-app/daybook/internal/api/respond"
	"github.com/daybook-app/daybook/internal/insight"
	"github.com/daybook-app/daybook/internal/services"
)

type InsightHandler struct {
	svc *services.InsightService
}

func NewInsightHandler(svc *services.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

// GetInsights GET /api/insights
// Returns the cached snapshot; never blocks on an analysis in flight.
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	weekDates := insight.WeekDates(time.Now())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":    snap,
		"weeklyChart": h.svc.WeeklyChart(snap, weekDates),
	})
}

// RefreshInsights POST /api/insights/refresh?force=true
func (h *InsightHandler) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	snap, err := h.svc.Refresh(r.Context(), force)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, snap)
}

// GetDailyMessage GET /api/insights/daily-message
func (h *InsightHandler) GetDailyMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.DailyMessage(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": msg})
}
