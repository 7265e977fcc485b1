package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResendMailerSendsEmail(t *testing.T) {
	var captured resendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"id":"mail-1"}`))
	}))
	defer server.Close()

	m, err := NewResendMailer("secret", server.URL, "reports@primalpath.co")
	require.NoError(t, err)

	expires := time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC)
	err = m.SendAccessLink(context.Background(), "sam@example.com", "Sam", "https://example.com/api/v1/reports/tok", expires)
	require.NoError(t, err)

	require.Equal(t, "reports@primalpath.co", captured.From)
	require.Equal(t, []string{"sam@example.com"}, captured.To)
	require.Contains(t, captured.HTML, "Hi Sam,")
	require.Contains(t, captured.HTML, "https://example.com/api/v1/reports/tok")
	require.Contains(t, captured.HTML, "September 27, 2026")
}

func TestResendMailerSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	m, err := NewResendMailer("secret", server.URL, "reports@primalpath.co")
	require.NoError(t, err)

	err = m.SendAccessLink(context.Background(), "sam@example.com", "Sam", "link", time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=403")
}

func TestMemoryMailerRecordsDeliveries(t *testing.T) {
	m := NewMemoryMailer(nil)
	require.NoError(t, m.SendAccessLink(context.Background(), "sam@example.com", "Sam", "link", time.Now()))
	sent := m.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "sam@example.com", sent[0].Email)
}
