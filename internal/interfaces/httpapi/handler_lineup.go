package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/pool-league/internal/usecase"
)

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.GetLineup")
	defer span.End()

	matchID, teamID := lineupPath(r)
	view, err := h.lineupService.View(ctx, matchID, teamID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "get lineup failed", "match_id", matchID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupViewToDTO(view))
}

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.SubmitLineup")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID, teamID := lineupPath(r)
	var req submitLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slots := make([]usecase.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, usecase.SlotInput{Position: s.Position, PlayerID: strings.TrimSpace(s.PlayerID)})
	}
	view, err := h.lineupService.Submit(ctx, actor, usecase.SubmitLineupInput{
		MatchID: matchID,
		TeamID:  teamID,
		Slots:   slots,
	})
	if err != nil {
		h.log(ctx).WarnContext(ctx, "submit lineup failed", "match_id", matchID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupViewToDTO(view))
}

func (h *Handler) LockLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.LockLineup")
	defer span.End()

	h.transitionLineup(ctx, w, r, "lock", h.lineupService.Lock)
}

func (h *Handler) UnlockLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.UnlockLineup")
	defer span.End()

	h.transitionLineup(ctx, w, r, "unlock", h.lineupService.Unlock)
}

type lineupTransition func(ctx context.Context, actor usecase.Actor, matchID, teamID string) (usecase.LineupView, error)

func (h *Handler) transitionLineup(ctx context.Context, w http.ResponseWriter, r *http.Request, action string, fn lineupTransition) {
	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID, teamID := lineupPath(r)
	view, err := fn(ctx, actor, matchID, teamID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, action+" lineup failed", "match_id", matchID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupViewToDTO(view))
}

func lineupPath(r *http.Request) (string, string) {
	return strings.TrimSpace(r.PathValue("matchID")), strings.TrimSpace(r.PathValue("teamID"))
}
