package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/pool-league/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasonService.List(ctx)
	if err != nil {
		h.log(ctx).ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	holidays := make([]usecase.HolidayInput, 0, len(req.Holidays))
	for _, hol := range req.Holidays {
		holidays = append(holidays, usecase.HolidayInput{Date: hol.Date, Name: hol.Name})
	}
	item, err := h.seasonService.Create(ctx, usecase.CreateSeasonInput{
		Name:          req.Name,
		Format:        req.Format,
		StartDate:     req.StartDate,
		SeasonLength:  req.SeasonLength,
		EndBreakWeeks: req.EndBreakWeeks,
		Blackouts:     req.Blackouts,
		Holidays:      holidays,
	})
	if err != nil {
		h.log(ctx).WarnContext(ctx, "create season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.log(ctx).InfoContext(ctx, "season created", "season_id", item.ID, "format", item.Format)
	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) ListTeamsBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.ListTeamsBySeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	items, err := h.teamService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "list teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.CreateTeam")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		SeasonID:         seasonID,
		Name:             req.Name,
		CaptainID:        req.CaptainID,
		SchedulePosition: req.SchedulePosition,
		PlayerIDs:        req.PlayerIDs,
	})
	if err != nil {
		h.log(ctx).WarnContext(ctx, "create team failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.ListStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	rows, err := h.standingService.List(ctx, seasonID)
	if err != nil {
		h.log(ctx).WarnContext(ctx, "list standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.ListMembers")
	defer span.End()

	items, err := h.memberService.List(ctx)
	if err != nil {
		h.log(ctx).ErrorContext(ctx, "list members failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]memberDTO, 0, len(items))
	for _, item := range items {
		out = append(out, memberToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.CreateMember")
	defer span.End()

	var req createMemberRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.memberService.Create(ctx, usecase.CreateMemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Handicap:  req.Handicap,
	})
	if err != nil {
		h.log(ctx).WarnContext(ctx, "create member failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, memberToDTO(item))
}
