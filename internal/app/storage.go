package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/pool-league/internal/config"
	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/member"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/resilient"
	"github.com/riskibarqy/pool-league/internal/infrastructure/staticdata"
	basecache "github.com/riskibarqy/pool-league/internal/platform/cache"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
	"github.com/riskibarqy/pool-league/internal/platform/resilience"
)

type repositories struct {
	seasons  season.Repository
	members  member.Repository
	teams    team.Repository
	matches  match.Repository
	lineups  lineup.Repository
	records  standing.RecordRepository
	tables   handicap.TableRepository
	matchups schedule.MatchupRepository
	close    func() error
}

// openRepositories picks the storage driver and layers the cache and the
// record circuit breaker on top.
func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	thresholds, err := staticdata.LoadThresholds()
	if err != nil {
		return repositories{}, fmt.Errorf("load threshold tables: %w", err)
	}
	matchups, err := staticdata.LoadMatchups()
	if err != nil {
		return repositories{}, fmt.Errorf("load matchup tables: %w", err)
	}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db, thresholds); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("bootstrap seed data: %w", err)
		}
		repos = repositories{
			seasons: postgres.NewSeasonRepository(db),
			members: postgres.NewMemberRepository(db),
			teams:   postgres.NewTeamRepository(db),
			matches: postgres.NewMatchRepository(db),
			lineups: postgres.NewLineupRepository(db),
			records: postgres.NewRecordRepository(db),
			tables:  postgres.NewThresholdRepository(db),
			close:   db.Close,
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", databaseName(cfg.DBURL))
	default:
		matches := memory.NewMatchRepository(memory.SeedMatches())
		repos = repositories{
			seasons: memory.NewSeasonRepository(memory.SeedSeasons()),
			members: memory.NewMemberRepository(memory.SeedMembers()),
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			matches: matches,
			lineups: memory.NewLineupRepository(),
			records: memory.NewRecordRepository(matches),
			tables:  thresholds,
			close:   func() error { return nil },
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}
	repos.matchups = matchups

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.seasons = cache.NewSeasonRepository(repos.seasons, store)
		repos.tables = cache.NewTableRepository(repos.tables, store)
		repos.matchups = cache.NewMatchupRepository(repos.matchups, store)
	}

	var breaker *resilience.Breaker
	if cfg.RecordCircuitEnabled {
		breaker = resilience.NewBreaker(resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.RecordCircuitFailures,
			OpenTimeout:      cfg.RecordCircuitOpenFor,
			HalfOpenProbes:   1,
		})
	}
	repos.records = resilient.NewRecordRepository(repos.records, resilience.RetryConfig{
		MaxTries: uint(cfg.FetchRetryMaxTries),
		Interval: cfg.FetchRetryInterval,
	}, breaker)

	return repos, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := PostgresDSN(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)
	return db, nil
}
