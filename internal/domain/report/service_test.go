package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/primalpath/report-engine/internal/domain/catalog"
	apperrors "github.com/primalpath/report-engine/pkg/errors"
)

type stubCompletions struct {
	mu        sync.Mutex
	responses []string
	requests  []CompletionRequest
	err       error
}

func (s *stubCompletions) Complete(_ context.Context, req CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	if len(s.requests) > len(s.responses) {
		return "", errors.New("unexpected call")
	}
	return s.responses[len(s.requests)-1], nil
}

type stubRepo struct {
	records map[string]Record
	err     error
}

func newStubRepo() *stubRepo { return &stubRepo{records: make(map[string]Record)} }

func (r *stubRepo) Create(_ context.Context, rec Record) error {
	if r.err != nil {
		return r.err
	}
	r.records[rec.TokenDigest] = rec
	return nil
}

func (r *stubRepo) FindByTokenDigest(_ context.Context, digest string) (Record, bool, error) {
	rec, ok := r.records[digest]
	return rec, ok, r.err
}

type stubStorage struct {
	objects map[string][]byte
	err     error
}

func newStubStorage() *stubStorage { return &stubStorage{objects: make(map[string][]byte)} }

func (s *stubStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.objects[key] = data
	return nil
}

func (s *stubStorage) Get(_ context.Context, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) SendAccessLink(_ context.Context, email, _, _ string, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type stubCache struct {
	entries map[string]string
}

func newStubCache() *stubCache { return &stubCache{entries: make(map[string]string)} }

func (c *stubCache) Get(_ context.Context, key string) (string, bool, error) {
	html, ok := c.entries[key]
	return html, ok, nil
}

func (c *stubCache) Set(_ context.Context, key, html string, _ time.Duration) error {
	c.entries[key] = html
	return nil
}

func testService(completions CompletionClient, repo Repository, storage ObjectStorage, cache HTMLCache, mailer Mailer) *Service {
	return NewService(Config{
		TokenSecret: "test-secret",
		TokenTTL:    time.Hour,
		CacheTTL:    time.Minute,
	}, completions, repo, storage, cache, mailer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGenerateProducesFullReport(t *testing.T) {
	completions := &stubCompletions{responses: []string{
		"## Executive Summary\n\nWelcome Sam.",
		"## Obstacle Override\n\nPlan for travel weeks.",
	}}
	repo := newStubRepo()
	storage := newStubStorage()
	cache := newStubCache()
	mailer := &stubMailer{}
	svc := testService(completions, repo, storage, cache, mailer)

	resp, err := svc.Generate(context.Background(), testQuestionnaire())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.True(t, resp.ExpiresAt.After(time.Now()))

	// Two sequential completion calls with distinct budgets.
	require.Len(t, completions.requests, 2)
	require.Equal(t, 2000, completions.requests[0].MaxTokens)
	require.Equal(t, 2500, completions.requests[1].MaxTokens)
	require.Contains(t, completions.requests[0].Prompt, "Sam")

	// Persisted, stored, cached, and emailed.
	require.Len(t, repo.records, 1)
	require.Len(t, storage.objects, 1)
	require.Equal(t, []string{"sam@example.com"}, mailer.sent)

	for _, data := range storage.objects {
		html := string(data)
		require.Contains(t, html, "Executive Summary")
		require.Contains(t, html, "Obstacle Override")
		require.NotContains(t, html, "{{")
	}
}

func TestGenerateCompletionFailureAbortsEverything(t *testing.T) {
	completions := &stubCompletions{err: errors.New("status=500")}
	repo := newStubRepo()
	storage := newStubStorage()
	mailer := &stubMailer{}
	svc := testService(completions, repo, storage, newStubCache(), mailer)

	_, err := svc.Generate(context.Background(), testQuestionnaire())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
	require.Empty(t, repo.records)
	require.Empty(t, storage.objects)
	require.Empty(t, mailer.sent)
}

func TestGenerateRejectsInvalidQuestionnaire(t *testing.T) {
	svc := testService(&stubCompletions{}, newStubRepo(), newStubStorage(), newStubCache(), &stubMailer{})
	_, err := svc.Generate(context.Background(), Questionnaire{Email: "x@y.z"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestGenerateRequiresTokenSecret(t *testing.T) {
	svc := NewService(Config{}, &stubCompletions{}, newStubRepo(), newStubStorage(), newStubCache(), &stubMailer{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.Generate(context.Background(), testQuestionnaire())
	require.True(t, apperrors.IsCode(err, "config_error"))
}

func TestGenerateMailFailureFailsRequest(t *testing.T) {
	completions := &stubCompletions{responses: []string{"s", "o"}}
	svc := testService(completions, newStubRepo(), newStubStorage(), newStubCache(), &stubMailer{err: errors.New("resend down")})
	_, err := svc.Generate(context.Background(), testQuestionnaire())
	require.True(t, apperrors.IsCode(err, "mail_error"))
}

func TestGenerateSurfacesPlanWarning(t *testing.T) {
	completions := &stubCompletions{responses: []string{"s", "o"}}
	svc := testService(completions, newStubRepo(), newStubStorage(), newStubCache(), &stubMailer{})

	q := testQuestionnaire()
	q.SelectedProtocol = catalog.DietPescatarian
	q.Budget = catalog.BudgetPremium
	q.Allergies = "shellfish, egg"
	q.AvoidFoods = "salmon"

	resp, err := svc.Generate(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Warning)
}

func TestFetchRoundTrip(t *testing.T) {
	completions := &stubCompletions{responses: []string{"s", "o"}}
	repo := newStubRepo()
	storage := newStubStorage()
	cache := newStubCache()
	svc := testService(completions, repo, storage, cache, &stubMailer{})

	resp, err := svc.Generate(context.Background(), testQuestionnaire())
	require.NoError(t, err)

	html, err := svc.Fetch(context.Background(), resp.Token)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))

	// Served from cache even when the repo is emptied.
	repo.records = map[string]Record{}
	cached, err := svc.Fetch(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, html, cached)
}

func TestFetchUnknownTokenIsNotFound(t *testing.T) {
	svc := testService(&stubCompletions{}, newStubRepo(), newStubStorage(), newStubCache(), &stubMailer{})
	_, err := svc.Fetch(context.Background(), "not-a-jwt")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestFetchExpiredReportIsNotFound(t *testing.T) {
	completions := &stubCompletions{responses: []string{"s", "o"}}
	repo := newStubRepo()
	svc := testService(completions, repo, newStubStorage(), nil, &stubMailer{})

	resp, err := svc.Generate(context.Background(), testQuestionnaire())
	require.NoError(t, err)

	for digestKey, rec := range repo.records {
		rec.ExpiresAt = time.Now().Add(-time.Hour)
		repo.records[digestKey] = rec
	}
	_, err = svc.Fetch(context.Background(), resp.Token)
	require.True(t, apperrors.IsCode(err, "not_found"))
}
