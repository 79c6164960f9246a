package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResendTestChannel(serverURL string) *resendChannel {
	return &resendChannel{
		client:  &http.Client{Timeout: 5 * time.Second},
		apiKey:  "re_test_key",
		from:    "shop@example.com",
		baseURL: serverURL,
		logger:  zerolog.Nop(),
	}
}

func TestResendChannel_Send(t *testing.T) {
	var got resendPayload
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newResendTestChannel(srv.URL)

	err := c.Send(context.Background(), Message{
		To:      "ziad@example.com",
		Subject: "Order Confirmation",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", authHeader)
	assert.Equal(t, "shop@example.com", got.From)
	assert.Equal(t, "ziad@example.com", got.To)
	assert.Equal(t, "Order Confirmation", got.Subject)
	assert.Equal(t, "<p>hello</p>", got.HTML)
}

func TestResendChannel_Send_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newResendTestChannel(srv.URL)

	err := c.Send(context.Background(), Message{To: "ziad@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNopChannel_Send(t *testing.T) {
	c := NopChannel(zerolog.Nop())
	assert.NoError(t, c.Send(context.Background(), Message{To: "anyone@example.com"}))
}
