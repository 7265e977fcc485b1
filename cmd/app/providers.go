package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/primalpath/report-engine/internal/bootstrap"
	"github.com/primalpath/report-engine/internal/domain/report"
	"github.com/primalpath/report-engine/internal/infra/config"
	"github.com/primalpath/report-engine/internal/infra/llm/anthropic"
	"github.com/primalpath/report-engine/internal/infra/mailer"
	"github.com/primalpath/report-engine/internal/infra/queue"
	"github.com/primalpath/report-engine/internal/infra/reportcache"
	"github.com/primalpath/report-engine/internal/infra/reportrepo"
	"github.com/primalpath/report-engine/internal/infra/reportstore"
	httpiface "github.com/primalpath/report-engine/internal/interface/http"
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideReportConfig(cfg *config.Config) report.Config {
	return report.Config{
		Temperature:       cfg.LLM.Temperature,
		SummaryMaxTokens:  cfg.Report.SummaryMaxTokens,
		ObstacleMaxTokens: cfg.Report.ObstacleMaxTokens,
		TokenSecret:       cfg.Report.TokenSecret,
		TokenTTL:          cfg.Report.TokenTTL,
		CacheTTL:          cfg.Report.CacheTTL,
		PublicBaseURL:     cfg.Report.PublicBaseURL,
	}
}

func provideCompletionClient(cfg *config.Config) (report.CompletionClient, error) {
	return anthropic.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
}

func provideRepository(cfg *config.Config, logger *slog.Logger) report.Repository {
	fallback := reportrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres repository enabled")
	return reportrepo.NewPostgresRepository(pool)
}

func provideObjectStorage(cfg *config.Config, logger *slog.Logger) report.ObjectStorage {
	if strings.TrimSpace(cfg.Storage.Endpoint) == "" {
		logger.Info("storage endpoint not set, using memory storage")
		return reportstore.NewMemoryStorage()
	}
	store, err := reportstore.NewS3Storage(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.Region,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize s3 storage, using memory storage", "error", err)
		return reportstore.NewMemoryStorage()
	}
	logger.Info("s3 storage enabled", "bucket", cfg.Storage.Bucket)
	return store
}

func provideHTMLCache(cfg *config.Config, logger *slog.Logger) report.HTMLCache {
	client := valkeyClient(cfg, logger)
	if client == nil {
		return reportcache.NewMemoryCache()
	}
	logger.Info("valkey report cache enabled", "addr", cfg.Valkey.Addr)
	return reportcache.NewValkeyCache(client, "reports:html")
}

func provideMailer(cfg *config.Config, logger *slog.Logger) report.Mailer {
	if strings.TrimSpace(cfg.Mail.APIKey) == "" {
		logger.Info("mail api key not set, using memory mailer")
		return mailer.NewMemoryMailer(logger)
	}
	m, err := mailer.NewResendMailer(cfg.Mail.APIKey, cfg.Mail.BaseURL, cfg.Mail.From)
	if err != nil {
		logger.Error("failed to initialize resend mailer, using memory mailer", "error", err)
		return mailer.NewMemoryMailer(logger)
	}
	logger.Info("resend mailer enabled", "from", cfg.Mail.From)
	return m
}

func provideReportService(
	cfg report.Config,
	completions report.CompletionClient,
	repo report.Repository,
	storage report.ObjectStorage,
	cache report.HTMLCache,
	m report.Mailer,
	logger *slog.Logger,
) *report.Service {
	return report.NewService(cfg, completions, repo, storage, cache, m, logger)
}

func provideJobQueue(cfg *config.Config, svc *report.Service, logger *slog.Logger) report.JobQueue {
	handler := generateJobHandler(svc, logger)
	if cfg.Valkey.Enabled {
		if client := valkeyClient(cfg, logger); client != nil {
			q := queue.NewValkeyQueue(client, cfg.Valkey.QueueKey, logger)
			q.SetHandler(handler)
			logger.Info("valkey job queue enabled", "key", cfg.Valkey.QueueKey)
			return q
		}
	}
	return queue.NewImmediateQueue(handler)
}

func generateJobHandler(svc *report.Service, logger *slog.Logger) queue.Handler {
	return func(ctx context.Context, name string, payload map[string]any) {
		if name != report.JobGenerate {
			logger.Warn("unknown job", "name", name)
			return
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			logger.Error("job payload encode failed", "error", err)
			return
		}
		var q report.Questionnaire
		if err := json.Unmarshal(encoded, &q); err != nil {
			logger.Error("job payload decode failed", "error", err)
			return
		}
		if _, err := svc.Generate(ctx, q); err != nil {
			logger.Error("queued report generation failed", "email", q.Email, "error", err)
		}
	}
}

func provideHandler(cfg *config.Config, svc *report.Service, jobs report.JobQueue, logger *slog.Logger) *httpiface.Handler {
	return httpiface.NewHandler(svc, jobs, cfg.Report.Async, logger)
}

func provideApp(cfg *config.Config, logger *slog.Logger, server *http.Server, jobs report.JobQueue) *bootstrap.App {
	var cleanup func()
	if closer, ok := jobs.(interface{ Close() }); ok {
		cleanup = closer.Close
	}
	return bootstrap.NewApp(cfg, logger, server, cleanup)
}

func valkeyClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.Valkey.Enabled {
		return nil
	}
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		logger.Error("invalid valkey configuration", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed", "error", err)
		client.Close()
		return nil
	}
	return client
}
