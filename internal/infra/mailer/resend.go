package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/primalpath/report-engine/internal/domain/report"
)

const defaultResendBaseURL = "https://api.resend.com"

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ResendMailer delivers access links through the Resend API.
type ResendMailer struct {
	apiKey     string
	baseURL    string
	from       string
	httpClient *http.Client
}

// NewResendMailer constructs the mailer.
func NewResendMailer(apiKey, baseURL, from string) (*ResendMailer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("resend api key cannot be empty")
	}
	if strings.TrimSpace(from) == "" {
		return nil, errors.New("resend from address cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendMailer{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		from:    from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// SendAccessLink emails the secure report link.
func (m *ResendMailer) SendAccessLink(ctx context.Context, email, firstName, link string, expiresAt time.Time) error {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your personalized protocol is ready. Open it with your secure link:</p>
<p><a href="%s">View your report</a></p>
<p>The link expires on %s. Keep it private; anyone with the link can read your report.</p>
<p>Primal Path</p>`,
		name, link, expiresAt.Format("January 2, 2006"),
	)

	payload, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Your personalized protocol is ready",
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request mail send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("resend request failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}

var _ report.Mailer = (*ResendMailer)(nil)
