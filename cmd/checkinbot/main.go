package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch/static builds

	"github.com/sspanel-tools/checkin-bot/internal/adapter/driven/sqlite"
	"github.com/sspanel-tools/checkin-bot/internal/adapter/driven/sspanel"
	"github.com/sspanel-tools/checkin-bot/internal/adapter/driving/actions"
	"github.com/sspanel-tools/checkin-bot/internal/application"
	"github.com/sspanel-tools/checkin-bot/internal/config"
	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
	"github.com/sspanel-tools/checkin-bot/internal/domain/port/driven"
)

const banner = "=================================================="

func main() {
	if err := run(); err != nil {
		actions.Error(err.Error())
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Local .env is best effort; CI runs get their environment from the workflow.
	_ = godotenv.Load()

	// 2. Load configuration (fail fast on missing or malformed env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"base_url", cfg.BaseURL,
		"accounts", len(cfg.Accounts),
		"history_enabled", cfg.HistoryDBPath != "",
	)

	ctx := context.Background()

	// 3. Open run history when configured; the core flow works without it.
	var history driven.RunStore
	if cfg.HistoryDBPath != "" {
		db, err := sqlite.NewDB(cfg.HistoryDBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing history database", "error", closeErr)
			}
		}()

		if err := sqlite.RunMigrations(db.Conn); err != nil {
			return err
		}

		repo := sqlite.NewRunRepo(db)
		history = repo

		if last, err := repo.LastRun(ctx); err != nil {
			slog.Warn("could not read last run", "error", err)
		} else if last != nil {
			slog.Info("previous run",
				"started_at", last.StartedAt,
				"total", last.Total,
				"succeeded", last.Succeeded,
			)
		}
	}

	// 4. Wire adapters and services.
	checkinSvc := application.NewCheckinService(sspanel.NewFactory(cfg.BaseURL))
	reportSvc := application.NewReportService()
	out := actions.NewWriter(cfg.OutputPath)

	// 5. Run the batch and render the report.
	startedAt := time.Now()
	outcomes := checkinSvc.Run(ctx, cfg.Accounts)
	report := reportSvc.Format(outcomes, startedAt)

	fmt.Println(banner)
	fmt.Println("checkin summary:")
	fmt.Println(banner)
	fmt.Println(report)

	// 6. Publish outputs for the downstream notification job.
	failed := 0
	for _, o := range outcomes {
		if !o.Succeeded {
			failed++
		}
	}

	if err := out.Set("result", report); err != nil {
		return err
	}
	if err := out.Set("failed", strconv.Itoa(failed)); err != nil {
		return err
	}

	// 7. Partial failure is not fatal: the notification job still needs the
	// report, so the process exits zero either way.
	if failed > 0 {
		actions.Warning(fmt.Sprintf("%d accounts failed to check in, %d succeeded", failed, len(outcomes)-failed))
	} else {
		actions.Notice("all accounts checked in")
	}

	// 8. Record the run when history is enabled; a history failure only warns.
	if history != nil {
		record := model.Run{
			ID:        uuid.NewString(),
			StartedAt: startedAt,
			Total:     len(outcomes),
			Succeeded: len(outcomes) - failed,
		}
		if err := history.SaveRun(ctx, record, outcomes); err != nil {
			slog.Warn("could not save run history", "error", err)
		}
	}

	return nil
}
