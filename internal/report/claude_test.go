package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// startClaudeStub points claudeAPIURL at a stub server for the duration
// of the test.
func startClaudeStub(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	orig := claudeAPIURL
	claudeAPIURL = server.URL
	t.Cleanup(func() {
		claudeAPIURL = orig
		server.Close()
	})
}

func TestClaudeBackendGenerate(t *testing.T) {
	var gotRequest claudeRequest
	startClaudeStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(claudeResponse{
			Content: []claudeContent{
				{Type: "text", Text: "## Phenotype\n"},
				{Type: "text", Text: "Findings."},
			},
		})
	})

	backend := NewClaudeBackend(types.AIConfig{APIKey: "test-key", Model: "test-model"})
	text, err := backend.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "## Phenotype\nFindings." {
		t.Errorf("text = %q", text)
	}
	if gotRequest.Model != "test-model" {
		t.Errorf("request model = %q", gotRequest.Model)
	}
	if len(gotRequest.Messages) != 1 || gotRequest.Messages[0].Content != "the prompt" {
		t.Errorf("request messages = %+v", gotRequest.Messages)
	}
	if gotRequest.System == "" {
		t.Error("request missing system prompt")
	}
}

func TestClaudeBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
			},
			wantMsg: "503",
		},
		{
			name: "malformed response body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			wantMsg: "decoding",
		},
		{
			name: "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(claudeResponse{})
			},
			wantMsg: "empty content",
		},
		{
			name: "no text blocks",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(claudeResponse{
					Content: []claudeContent{{Type: "thinking", Text: "hmm"}},
				})
			},
			wantMsg: "empty content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startClaudeStub(t, tt.handler)

			backend := NewClaudeBackend(types.AIConfig{APIKey: "k"})
			_, err := backend.Generate(context.Background(), "p")
			if err == nil {
				t.Fatal("want error")
			}

			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("got %T, want *ServiceError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNewClaudeBackendDefaults(t *testing.T) {
	backend := NewClaudeBackend(types.AIConfig{APIKey: "k"})
	if backend.Model != defaultModel {
		t.Errorf("Model = %q, want default", backend.Model)
	}
	if backend.Client.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", backend.Client.Timeout, defaultTimeout)
	}
}
