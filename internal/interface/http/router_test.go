package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/primalpath/report-engine/internal/domain/report"
	"github.com/primalpath/report-engine/internal/infra/config"
	"github.com/primalpath/report-engine/internal/infra/mailer"
	"github.com/primalpath/report-engine/internal/infra/queue"
	"github.com/primalpath/report-engine/internal/infra/reportcache"
	"github.com/primalpath/report-engine/internal/infra/reportrepo"
	"github.com/primalpath/report-engine/internal/infra/reportstore"
)

const validBody = `{"email":"sam@example.com","firstName":"Sam","selectedProtocol":"Carnivore","budget":"moderate"}`

func TestRouter_GenerateReportSuccess(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	recorder := performRequest(http.MethodPost, "/api/v1/reports", validBody, env.server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got report.GenerateResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.NotEmpty(t, got.Token)
	require.Contains(t, got.URL, "/api/v1/reports/")
}

func TestRouter_GenerateReportInvalidJSON(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	recorder := performRequest(http.MethodPost, "/api/v1/reports", `{"email":123}`, env.server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_GenerateReportMissingFields(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	recorder := performRequest(http.MethodPost, "/api/v1/reports", `{"email":"sam@example.com"}`, env.server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "firstName")
}

func TestRouter_GenerateReportLLMFailure(t *testing.T) {
	env := newRouterUnderTest(t, errors.New("model overloaded"))

	recorder := performRequest(http.MethodPost, "/api/v1/reports", validBody, env.server)
	require.Equal(t, http.StatusBadGateway, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "llm_error", errBody["error"]["code"])
}

func TestRouter_FetchReportRoundTrip(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	recorder := performRequest(http.MethodPost, "/api/v1/reports", validBody, env.server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var generated report.GenerateResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &generated))

	fetched := performRequest(http.MethodGet, "/api/v1/reports/"+generated.Token, "", env.server)
	require.Equal(t, http.StatusOK, fetched.Code)
	require.Contains(t, fetched.Header().Get("Content-Type"), "text/html")
	require.Contains(t, fetched.Body.String(), "<!DOCTYPE html>")
}

func TestRouter_FetchReportUnknownToken(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	recorder := performRequest(http.MethodGet, "/api/v1/reports/not-a-token", "", env.server)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_Healthz(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	recorder := performRequest(http.MethodGet, "/healthz", "", env.server)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_AsyncGenerateQueues(t *testing.T) {
	env := newRouterUnderTest(t, nil)
	queue := &stubQueue{}
	env.handler.jobs = queue
	env.handler.async = true

	recorder := performRequest(http.MethodPost, "/api/v1/reports", validBody, env.server)
	require.Equal(t, http.StatusAccepted, recorder.Code)
	require.Len(t, queue.enqueued, 1)
	require.Equal(t, report.JobGenerate, queue.enqueued[0].name)
	require.Equal(t, "sam@example.com", queue.enqueued[0].payload["email"])
}

func TestRouter_AsyncJobSurvivesRequestCompletion(t *testing.T) {
	env := newRouterUnderTest(t, nil)
	done := make(chan error, 1)
	env.handler.jobs = queue.NewImmediateQueue(func(ctx context.Context, _ string, _ map[string]any) {
		time.Sleep(100 * time.Millisecond)
		done <- ctx.Err()
	})
	env.handler.async = true

	srv := httptest.NewServer(env.server.Handler)
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/api/v1/reports", "application/json", strings.NewReader(validBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case ctxErr := <-done:
		require.NoError(t, ctxErr)
	case <-time.After(2 * time.Second):
		t.Fatal("queued job did not run")
	}
}

type routerEnv struct {
	server  *http.Server
	handler *Handler
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, completionErr error) *routerEnv {
	t.Helper()
	logger := newTestLogger()

	svc := report.NewService(report.Config{
		Temperature:       0.7,
		SummaryMaxTokens:  2000,
		ObstacleMaxTokens: 2500,
		TokenSecret:       "test-secret",
		TokenTTL:          time.Hour,
		PublicBaseURL:     "https://reports.test",
	},
		&stubCompletions{err: completionErr},
		reportrepo.NewMemoryRepository(),
		reportstore.NewMemoryStorage(),
		reportcache.NewMemoryCache(),
		mailer.NewMemoryMailer(logger),
		logger,
	)

	handler := NewHandler(svc, nil, false, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return &routerEnv{server: NewRouter(cfg, handler, logger), handler: handler}
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubCompletions struct {
	err error
}

func (s *stubCompletions) Complete(_ context.Context, req report.CompletionRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(req.System, "summary") || req.MaxTokens == 2000 {
		return "## Your Personalized Summary\n\nStub summary.", nil
	}
	return "## Overcoming Your Biggest Obstacle\n\nStub advice.", nil
}

type enqueuedJob struct {
	name    string
	payload map[string]any
}

type stubQueue struct {
	enqueued []enqueuedJob
}

func (q *stubQueue) Enqueue(_ context.Context, name string, payload any) error {
	typed, _ := payload.(map[string]any)
	q.enqueued = append(q.enqueued, enqueuedJob{name: name, payload: typed})
	return nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
