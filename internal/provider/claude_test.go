package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func claudeToolResponse(t *testing.T, result string, refused bool) string {
	t.Helper()
	outer := map[string]any{
		"content": []map[string]any{
			{"type": "tool_use", "input": structuredReply{Result: result, Error: refused}},
		},
	}
	b, err := json.Marshal(outer)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func newClaudeTestServer(t *testing.T, handler http.HandlerFunc) *Claude {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClaude("sk-ant-test", "claude-sonnet-4-5-20250929", srv.Client())
	c.BaseURL = srv.URL
	return c
}

func TestClaudeGenerate(t *testing.T) {
	c := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "sk-ant-test" {
			t.Errorf("unexpected api key header: %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicVersion {
			t.Errorf("unexpected version header: %q", got)
		}
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req claudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.System == "" {
			t.Error("expected system framing")
		}
		if req.ToolChoice.Name != claudeResponseToolName {
			t.Errorf("expected forced tool choice, got %+v", req.ToolChoice)
		}
		fmt.Fprint(w, claudeToolResponse(t, "du -sh *", false))
	})

	reply, err := c.Generate(context.Background(), "generate a zsh command", "disk usage per entry")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply.Refused {
		t.Fatal("unexpected refusal")
	}
	if reply.Text != "du -sh *" {
		t.Fatalf("unexpected text: %q", reply.Text)
	}
}

func TestClaudeGenerateRefusal(t *testing.T) {
	c := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, claudeToolResponse(t, "cannot safely generate a destructive command", true))
	})

	reply, err := c.Generate(context.Background(), "sys", "wipe the disk")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reply.Refused {
		t.Fatal("expected refusal")
	}
	if reply.Text != "cannot safely generate a destructive command" {
		t.Fatalf("unexpected text: %q", reply.Text)
	}
}

func TestClaudeGenerateEmptyBody(t *testing.T) {
	c := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.Generate(context.Background(), "sys", "query")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestClaudeGenerateNoContent(t *testing.T) {
	c := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":[]}`)
	})

	_, err := c.Generate(context.Background(), "sys", "query")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestClaudeGenerateAPIError(t *testing.T) {
	c := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	})

	_, err := c.Generate(context.Background(), "sys", "query")
	if !errors.Is(err, ErrAPIFailure) {
		t.Fatalf("expected ErrAPIFailure, got %v", err)
	}
}

func TestClaudeGenerateMalformedBody(t *testing.T) {
	c := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>bad gateway</html>")
	})

	_, err := c.Generate(context.Background(), "sys", "query")
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestClaudeGenerateTransportError(t *testing.T) {
	c := NewClaude("sk-ant-test", "claude-sonnet-4-5-20250929", nil)
	c.BaseURL = "http://127.0.0.1:1"

	_, err := c.Generate(context.Background(), "sys", "query")
	if !errors.Is(err, ErrAPIFailure) {
		t.Fatalf("expected ErrAPIFailure, got %v", err)
	}
}
