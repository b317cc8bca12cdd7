package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			json.Unmarshal(b, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okBody = `{
	"id": "cmpl-1",
	"object": "chat.completion",
	"created": 1760000000,
	"model": "deepseek-chat",
	"choices": [{
		"index": 0,
		"finish_reason": "stop",
		"message": {"role": "assistant", "content": "  <think>hmm</think>喵～今天天气很好  "}
	}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestGenerate(t *testing.T) {
	var req map[string]any
	srv := newTestServer(t, http.StatusOK, okBody, &req)

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Logger: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	reply, err := c.Generate(context.Background(), "你是一只猫", "今天天气怎么样")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "喵～今天天气很好" {
		t.Errorf("unexpected reply %q", reply)
	}

	if req["model"] != DefaultModel {
		t.Errorf("expected default model, got %v", req["model"])
	}
	msgs, _ := req["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	first, _ := msgs[0].(map[string]any)
	second, _ := msgs[1].(map[string]any)
	if first["role"] != "system" || first["content"] != "你是一只猫" {
		t.Errorf("unexpected system message %v", first)
	}
	if second["role"] != "user" || second["content"] != "今天天气怎么样" {
		t.Errorf("unexpected user message %v", second)
	}
}

func TestGenerateProviderError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"error":{"message":"bad request","type":"invalid_request_error"}}`, nil)

	c, _ := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/", MaxRetries: 0})
	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`, nil)

	c, _ := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestCleanReply(t *testing.T) {
	for in, want := range map[string]string{
		"  喵  ":                         "喵",
		"<think>\nplan\n</think>\n汪！": "汪！",
		"":                              "",
	} {
		if got := cleanReply(in); got != want {
			t.Errorf("cleanReply(%q) = %q, want %q", in, got, want)
		}
	}
}
