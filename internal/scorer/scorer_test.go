package scorer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
)

func TestStatic(t *testing.T) {
	score, err := Static{Value: 0.7}.Score(context.Background(), "x = 1")
	require.NoError(t, err)
	assert.Equal(t, 0.7, score)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Static{}.Score(ctx, "x = 1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	s, err := New(config.ScorerConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Equal(t, Static{}, s)

	s, err = New(config.ScorerConfig{Provider: "static", StaticScore: 0.9})
	require.NoError(t, err)
	assert.Equal(t, Static{Value: 0.9}, s)

	_, err = New(config.ScorerConfig{Provider: "codebert"})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeConfigError))
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	t.Setenv("PYREVIEW_TEST_EMPTY_KEY", "")

	_, err := New(config.ScorerConfig{Provider: "anthropic", APIKeyEnv: "PYREVIEW_TEST_EMPTY_KEY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PYREVIEW_TEST_EMPTY_KEY")
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		reply   string
		want    float64
		wantErr bool
	}{
		{"0.82", 0.82, false},
		{"  0.1\n", 0.1, false},
		{"Score: .5", 0.5, false},
		{"1", 1, false},
		{"0", 0, false},
		{"1.5", 0, true},
		{"-0.2", 0, true},
		{"no idea", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			got, err := parseScore(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func newTestServer(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		_ = json.Unmarshal(body, &req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
			return
		}
		resp := map[string]any{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"model":         req["model"],
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content":       []map[string]any{{"type": "text", "text": reply}},
			"usage":         map[string]any{"input_tokens": 10, "output_tokens": 2},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAnthropicScore(t *testing.T) {
	server := newTestServer(t, http.StatusOK, "0.83")

	s, err := NewAnthropic(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL}, option.WithMaxRetries(0))
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "def f():\n    pass\n")
	require.NoError(t, err)
	assert.InDelta(t, 0.83, score, 1e-9)
}

func TestAnthropicScoreFailure(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError, "")

	s, err := NewAnthropic(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL}, option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "x = 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrClassifierUnavailable)
}

func TestAnthropicUnparseableReply(t *testing.T) {
	server := newTestServer(t, http.StatusOK, "I cannot say")

	s, err := NewAnthropic(AnthropicConfig{APIKey: "test-key", BaseURL: server.URL}, option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "x = 1")
	assert.ErrorIs(t, err, domain.ErrClassifierUnavailable)
}
