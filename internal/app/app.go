package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/pool-league/internal/config"
	"github.com/riskibarqy/pool-league/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/pool-league/internal/infrastructure/realtime"
	"github.com/riskibarqy/pool-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pool-league/internal/observability"
	idgen "github.com/riskibarqy/pool-league/internal/platform/id"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
	"github.com/riskibarqy/pool-league/internal/usecase"
)

// App owns the HTTP server and the resources it needs released on shutdown.
type App struct {
	Server *http.Server
	feed   *realtime.Feed
	close  func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var metrics *observability.Metrics
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		metricsHandler = metrics.Handler()
	}

	feed := realtime.NewFeed(cfg.FeedBufferSize, logger)
	if metrics != nil {
		feed.SetObserver(metrics)
	}

	ids := idgen.NewUUIDGenerator()
	guard := usecase.NewMatchGuard()

	seasonSvc := usecase.NewSeasonService(repos.seasons, ids)
	teamSvc := usecase.NewTeamService(repos.seasons, repos.teams, repos.members, ids)
	memberSvc := usecase.NewMemberService(repos.members, ids)
	scheduleSvc := usecase.NewScheduleService(repos.seasons, repos.teams, repos.matches, repos.matchups, ids, guard)
	matchSvc := usecase.NewMatchService(repos.seasons, repos.matches, feed)
	handicapSvc := usecase.NewHandicapService(repos.seasons, repos.matches, repos.lineups, repos.records, repos.tables, logger)
	lineupSvc := usecase.NewLineupService(repos.seasons, repos.teams, repos.members, repos.matches, repos.lineups, feed, guard, ids, logger)
	scoringSvc := usecase.NewScoringService(repos.seasons, repos.teams, repos.matches, repos.lineups, handicapSvc, feed, guard, ids, logger)
	standingSvc := usecase.NewStandingService(repos.seasons, repos.teams, repos.records, cfg.StandingsWorkers)
	if metrics != nil {
		handicapSvc.SetRecorder(metrics)
		lineupSvc.SetRecorder(metrics)
		scoringSvc.SetRecorder(metrics)
	}

	handler := httpapi.NewHandler(
		seasonSvc,
		teamSvc,
		memberSvc,
		scheduleSvc,
		matchSvc,
		handicapSvc,
		lineupSvc,
		scoringSvc,
		standingSvc,
		cfg.CORSAllowedOrigins,
		logger,
	)
	verifier := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
	router := httpapi.NewRouter(handler, verifier, metricsHandler, logger, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		feed:  feed,
		close: repos.close,
	}, nil
}

// Shutdown drains HTTP first so no handler publishes into a closed feed.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.feed.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close match feed: %w", err))
	}
	if err := a.close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
