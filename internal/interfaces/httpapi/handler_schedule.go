package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.GetSchedule")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	entries, err := h.scheduleService.Preview(ctx, seasonID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "preview schedule failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekEntriesToDTO(entries))
}

// GetScheduleCalendar serves the schedule as text/calendar rather than the
// JSON envelope so calendar clients can subscribe to the URL directly.
func (h *Handler) GetScheduleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.GetScheduleCalendar")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	body, err := h.scheduleService.Calendar(ctx, seasonID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "render schedule calendar failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+seasonID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) ApplySchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.ApplySchedule")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	applied, err := h.scheduleService.Apply(ctx, seasonID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "apply schedule failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.log(ctx).InfoContext(ctx, "schedule applied",
		"season_id", seasonID,
		"created", len(applied.Created),
		"kept", applied.Kept,
	)
	writeSuccess(ctx, w, http.StatusOK, appliedScheduleDTO{
		Entries: weekEntriesToDTO(applied.Entries),
		Created: matchesToDTO(applied.Created),
		Kept:    applied.Kept,
	})
}
