package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const resendEndpoint = "https://api.resend.com/emails"

// resendChannel implements Channel against the Resend HTTP API.
type resendChannel struct {
	client  *http.Client
	apiKey  string
	from    string
	baseURL string
	logger  zerolog.Logger
}

// NewResendChannel creates a Resend-backed delivery channel.
func NewResendChannel(apiKey, from string, logger zerolog.Logger) Channel {
	return &resendChannel{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		from:    from,
		baseURL: resendEndpoint,
		logger:  logger.With().Str("component", "resend-channel").Logger(),
	}
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers one message through the Resend API.
func (c *resendChannel) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(resendPayload{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("to", msg.To).
			Str("body", string(body)).
			Msg("email delivery rejected")
		return fmt.Errorf("email delivery rejected with status %d", resp.StatusCode)
	}

	c.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")

	return nil
}

// NopChannel returns a channel that drops every message. Used when
// notifications are disabled.
func NopChannel(logger zerolog.Logger) Channel {
	return nopChannel{logger: logger.With().Str("component", "nop-channel").Logger()}
}

type nopChannel struct {
	logger zerolog.Logger
}

func (c nopChannel) Send(ctx context.Context, msg Message) error {
	c.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("notifications disabled, message dropped")
	return nil
}
