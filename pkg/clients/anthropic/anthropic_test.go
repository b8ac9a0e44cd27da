package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, text string) (*httptest.Server, *messageRequest) {
	t.Helper()
	received := &messageRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, received
}

func TestTranslateToCommand(t *testing.T) {
	srv, received := newTestServer(t, http.StatusOK, " /add 5 20 Elixir of the Mongoose\n")
	client := NewClient("secret", "test-model", WithBaseURL(srv.URL))

	cmd, err := client.TranslateToCommand(context.Background(), "we got an elixir, 5 days, quality 20")
	require.NoError(t, err)
	assert.Equal(t, "/add 5 20 Elixir of the Mongoose", cmd)
	assert.Equal(t, "test-model", received.Model)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, "user", received.Messages[0].Role)
}

func TestTranslateToCommandNone(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "NONE")
	client := NewClient("secret", "test-model", WithBaseURL(srv.URL))

	_, err := client.TranslateToCommand(context.Background(), "lovely weather")
	assert.True(t, errors.Is(err, ErrNoCommand))
}

func TestTranslateToCommandAPIError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusTooManyRequests, "")
	client := NewClient("secret", "test-model", WithBaseURL(srv.URL))

	_, err := client.TranslateToCommand(context.Background(), "stock please")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
}
