// Package client holds thin HTTP clients for external services.
//
// The Resend client below is used only for best-effort booking
// confirmations; the backend never blocks on delivery outcomes beyond
// the single request/response.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

type EmailClient struct {
	apiKey     string
	from       string
	httpClient *http.Client
}

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func NewEmailClient(apiKey, from string) *EmailClient {
	return &EmailClient{
		apiKey: apiKey,
		from:   from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *EmailClient) SendBookingConfirmation(ctx context.Context, email, name string) error {
	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
			<p>Dear %s,</p>
			<p>Thank you for your booking request. We've received your message and will be in touch within 24-48 hours to discuss your vision and confirm availability.</p>
			<p>In the meantime, feel free to share any additional reference images or ideas via email or Instagram.</p>
			<p>Warm regards,<br/>The Studio Team</p>
		</div>
	`, name)

	payload, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      email,
		Subject: "Your booking request has been received",
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
