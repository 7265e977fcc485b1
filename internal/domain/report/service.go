package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/primalpath/report-engine/internal/domain/markdown"
	"github.com/primalpath/report-engine/internal/domain/mealplan"
	apperrors "github.com/primalpath/report-engine/pkg/errors"
	"github.com/primalpath/report-engine/pkg/util"
)

// Config drives the report service.
type Config struct {
	Temperature       float64
	SummaryMaxTokens  int
	ObstacleMaxTokens int
	TokenSecret       string
	TokenTTL          time.Duration
	CacheTTL          time.Duration
	PublicBaseURL     string
}

// Service runs the report assembly pipeline: filter, plan, template, two
// completion calls, combine, render, persist, email. Execution is
// request-scoped and synchronous; the only shared state is the read-only
// food catalog.
type Service struct {
	cfg         Config
	completions CompletionClient
	repo        Repository
	storage     ObjectStorage
	cache       HTMLCache
	mailer      Mailer
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs the report service.
func NewService(cfg Config, completions CompletionClient, repo Repository, storage ObjectStorage, cache HTMLCache, mailer Mailer, logger *slog.Logger) *Service {
	return &Service{
		cfg:         cfg,
		completions: completions,
		repo:        repo,
		storage:     storage,
		cache:       cache,
		mailer:      mailer,
		logger:      logger.With("component", "report.service"),
		now:         util.NowUTC,
	}
}

// Generate runs the whole pipeline for one questionnaire. The outcome is
// binary from the caller's view: a complete persisted report with an access
// token, or an error. Filter exhaustion is not an error; it surfaces as a
// warning inside the response.
func (s *Service) Generate(ctx context.Context, q Questionnaire) (GenerateResponse, error) {
	if err := q.Validate(); err != nil {
		return GenerateResponse{}, err
	}
	if s.cfg.TokenSecret == "" {
		return GenerateResponse{}, apperrors.Wrap("config_error", "report token secret is not configured", nil)
	}

	start := s.now()
	diet := q.SelectedProtocol
	avoid := q.AvoidText()

	plan := mealplan.Generate(diet, q.Budget, q.Allergies, avoid)
	groceries := mealplan.Groceries(diet, q.Budget, q.Allergies, avoid)
	if plan.Warning != "" {
		s.logger.Warn("meal plan degraded", "diet", diet, "warning", plan.Warning)
	}

	values := buildValues(q, plan, groceries, start)
	sections, err := renderTemplateSections(values)
	if err != nil {
		return GenerateResponse{}, apperrors.Wrap("template_error", "failed to render report sections", err)
	}

	ai, usage, err := s.generateAIContent(ctx, q)
	if err != nil {
		return GenerateResponse{}, err
	}
	sections[sectionSummary] = ai.Summary
	sections[sectionObstacle] = ai.Obstacle

	combined := Combine(sections)
	html := markdown.Document(combined, start)

	id := uuid.New()
	token, expiresAt, err := s.issueToken(id, q.Email)
	if err != nil {
		return GenerateResponse{}, apperrors.Wrap("token_error", "failed to issue access token", err)
	}
	tokenDigest := digest(token)
	storageKey := "reports/" + id.String() + ".html"

	if err := s.storage.Put(ctx, storageKey, []byte(html), "text/html"); err != nil {
		return GenerateResponse{}, apperrors.Wrap("storage_error", "failed to store report document", err)
	}
	if err := s.repo.Create(ctx, Record{
		ID:            id,
		Email:         q.Email,
		StorageKey:    storageKey,
		TokenDigest:   tokenDigest,
		ExpiresAt:     expiresAt,
		CreatedAt:     start,
		Questionnaire: q,
	}); err != nil {
		return GenerateResponse{}, apperrors.Wrap("storage_error", "failed to persist report record", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tokenDigest, html, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("report cache set failed", "error", err)
		}
	}

	link := s.accessLink(token)
	if err := s.mailer.SendAccessLink(ctx, q.Email, q.FirstName, link, expiresAt); err != nil {
		return GenerateResponse{}, apperrors.Wrap("mail_error", "failed to send report email", err)
	}

	s.logger.Info("report generated",
		"report_id", id,
		"diet", diet,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"duration_ms", s.now().Sub(start).Milliseconds())

	return GenerateResponse{
		ReportID:  id,
		Token:     token,
		URL:       link,
		ExpiresAt: expiresAt,
		Warning:   plan.Warning,
	}, nil
}

// Fetch resolves a signed access token to the stored HTML document.
func (s *Service) Fetch(ctx context.Context, token string) (string, error) {
	if _, _, err := s.verifyToken(token); err != nil {
		return "", apperrors.Wrap("not_found", "report not found", err)
	}
	key := digest(token)

	if s.cache != nil {
		if html, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return html, nil
		} else if err != nil {
			s.logger.Warn("report cache get failed", "error", err)
		}
	}

	rec, found, err := s.repo.FindByTokenDigest(ctx, key)
	if err != nil {
		return "", apperrors.Wrap("storage_error", "failed to look up report", err)
	}
	if !found || s.now().After(rec.ExpiresAt) {
		return "", apperrors.Wrap("not_found", "report not found or expired", nil)
	}

	data, err := s.storage.Get(ctx, rec.StorageKey)
	if err != nil {
		return "", apperrors.Wrap("storage_error", "failed to read report document", err)
	}
	html := string(data)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, html, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("report cache set failed", "error", err)
		}
	}
	return html, nil
}

type accessClaims struct {
	ReportID string `json:"rid"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(id uuid.UUID, email string) (string, time.Time, error) {
	now := s.now()
	ttl := s.cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	expiresAt := now.Add(ttl)
	claims := accessClaims{
		ReportID: id.String(),
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *Service) verifyToken(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, "", err
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, "", errors.New("invalid token claims")
	}
	id, err := uuid.Parse(claims.ReportID)
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, claims.Email, nil
}

func (s *Service) accessLink(token string) string {
	if s.cfg.PublicBaseURL == "" {
		return token
	}
	return s.cfg.PublicBaseURL + "/api/v1/reports/" + token
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
