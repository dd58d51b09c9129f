package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/config"
)

func newTestClient(baseURL, apiKey string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{
		GeminiBaseURL: baseURL,
		GeminiAPIKey:  apiKey,
		GeminiModel:   "gemini-flash-latest",
	}, logger)
}

func TestGenerateWithoutKeyMakesNoCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.Generate(context.Background(), "recommend something")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if called {
		t.Error("no network call should be attempted without an API key")
	}
}

func TestGenerateReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-goog-api-key"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"1. Inception (2010)"}]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	text, err := client.Generate(context.Background(), "recommend something")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text != "1. Inception (2010)" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestGenerateSurfacesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	_, err := client.Generate(context.Background(), "prompt")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", statusErr.Code)
	}
	if statusErr.Body == "" {
		t.Error("expected body to be carried on the error")
	}
}

func TestGenerateRejectsMalformedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}
