package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tuantran92/spelling-bee/internal/adapter/postgres"
	profilerepo "github.com/tuantran92/spelling-bee/internal/adapter/postgres/profile"
	vocabrepo "github.com/tuantran92/spelling-bee/internal/adapter/postgres/vocab"
	"github.com/tuantran92/spelling-bee/internal/config"
	"github.com/tuantran92/spelling-bee/internal/domain"
	"github.com/tuantran92/spelling-bee/internal/service/progress"
	"github.com/tuantran92/spelling-bee/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// engine against PostgreSQL, and serves the REST API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	profiles := profilerepo.New(pool, txm)
	vocab := vocabrepo.New(pool, txm)

	engine, err := progress.NewService(
		logger,
		profiles,
		vocab,
		logNotifier{log: logger},
		clockwork.NewRealClock(),
		rand.NewSource(time.Now().UnixNano()),
		progress.Config{
			Intervals:          domain.IntervalTable(cfg.SRS.Intervals),
			SuggestionListSize: cfg.SRS.SuggestionListSize,
			DailyGoalWords:     cfg.SRS.DailyGoalWords,
			DailyGoalMinutes:   cfg.SRS.DailyGoalMinutes,
		},
	)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	router := rest.NewRouter(
		logger,
		cfg.CORS,
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.NewProgressHandler(engine, logger),
		rest.NewVocabHandler(vocab, engine, logger),
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// logNotifier is the default achievement notification port: unlocks go to the
// log, the client discovers them on its next stats fetch.
type logNotifier struct {
	log *slog.Logger
}

func (n logNotifier) AchievementUnlocked(ctx context.Context, profileID uuid.UUID, id domain.AchievementID) {
	n.log.InfoContext(ctx, "achievement unlocked",
		slog.String("profile_id", profileID.String()),
		slog.String("achievement", id.String()),
	)
}
