package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/pool-league/internal/platform/logging"
	"github.com/riskibarqy/pool-league/internal/usecase"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

type Handler struct {
	seasonService   *usecase.SeasonService
	teamService     *usecase.TeamService
	memberService   *usecase.MemberService
	scheduleService *usecase.ScheduleService
	matchService    *usecase.MatchService
	handicapService *usecase.HandicapService
	lineupService   *usecase.LineupService
	scoringService  *usecase.ScoringService
	standingService *usecase.StandingService
	logger          *logging.Logger
	validator       *validator.Validate
	upgrader        websocket.Upgrader
}

func NewHandler(
	seasonService *usecase.SeasonService,
	teamService *usecase.TeamService,
	memberService *usecase.MemberService,
	scheduleService *usecase.ScheduleService,
	matchService *usecase.MatchService,
	handicapService *usecase.HandicapService,
	lineupService *usecase.LineupService,
	scoringService *usecase.ScoringService,
	standingService *usecase.StandingService,
	corsAllowedOrigins []string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	origins := newOriginPolicy(corsAllowedOrigins)
	return &Handler{
		seasonService:   seasonService,
		teamService:     teamService,
		memberService:   memberService,
		scheduleService: scheduleService,
		matchService:    matchService,
		handicapService: handicapService,
		lineupService:   lineupService,
		scoringService:  scoringService,
		standingService: standingService,
		logger:          logger,
		validator:       validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins.allows(origin)
			},
		},
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

// log prefers the request-scoped logger so entries carry the request id.
func (h *Handler) log(ctx context.Context) *logging.Logger {
	return logging.FromContext(ctx, h.logger)
}

func requireActor(ctx context.Context) (usecase.Actor, error) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return usecase.Actor{}, fmt.Errorf("%w: actor is missing from request context", usecase.ErrUnauthorized)
	}
	return actor, nil
}
