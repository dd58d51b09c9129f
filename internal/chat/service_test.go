package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/services/gemini"
	"github.com/cineverse/cineverse/internal/store"
)

type stubGenerator struct {
	configured bool
	text       string
	err        error
	calls      int
}

func (g *stubGenerator) Configured() bool { return g.configured }

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.text, g.err
}

type stubResolver struct {
	items []models.CatalogItem
}

func (r *stubResolver) Resolve(ctx context.Context, text string) []models.CatalogItem {
	return r.items
}

func newTestService(gen *stubGenerator, res *stubResolver) (*Service, *store.Store) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	st := store.New(store.NewMemKV(), "en-US", logger)
	return NewService(st, gen, res, logger), st
}

func TestSendWithoutKeyProducesLocalizedError(t *testing.T) {
	gen := &stubGenerator{configured: false}
	svc, st := newTestService(gen, &stubResolver{})

	if err := st.SetLanguage("pt-BR"); err != nil {
		t.Fatalf("set language failed: %v", err)
	}

	msg, err := svc.Send(context.Background(), "me recomenda algo")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.Role != models.RoleAssistant {
		t.Errorf("expected assistant message, got %s", msg.Role)
	}
	if !strings.Contains(msg.Content, "Chave da API do Gemini não configurada") {
		t.Errorf("expected Portuguese missing-key message, got %q", msg.Content)
	}
	if gen.calls != 0 {
		t.Error("no provider call may be attempted without a key")
	}
}

func TestSendAppendsTranscriptAndAttachesRecommendations(t *testing.T) {
	resolved := []models.CatalogItem{
		{ID: 1, Kind: models.KindMovie, Title: "Inception"},
	}
	gen := &stubGenerator{configured: true, text: "Sure!\n\n1. Inception (2010)\nReason: dreams."}
	svc, st := newTestService(gen, &stubResolver{items: resolved})

	msg, err := svc.Send(context.Background(), "something mind-bending")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(msg.Recommendations) != 1 || msg.Recommendations[0].ID != 1 {
		t.Errorf("expected resolved recommendation attached, got %+v", msg.Recommendations)
	}

	transcript := svc.Messages()
	if len(transcript) != 2 {
		t.Fatalf("expected user+assistant in transcript, got %d messages", len(transcript))
	}
	if transcript[0].Role != models.RoleUser || transcript[1].Role != models.RoleAssistant {
		t.Errorf("unexpected transcript roles: %s, %s", transcript[0].Role, transcript[1].Role)
	}

	if got := st.Recommendations(); len(got) != 1 {
		t.Errorf("expected recommendation merged into session set, got %d", len(got))
	}
}

func TestSendSurfacesProviderStatusInChat(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		err:        &gemini.StatusError{Code: 429, Body: "quota exceeded"},
	}
	svc, _ := newTestService(gen, &stubResolver{})

	msg, err := svc.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("provider failure must not propagate as error: %v", err)
	}
	if !strings.Contains(msg.Content, "429") || !strings.Contains(msg.Content, "quota exceeded") {
		t.Errorf("expected status and body surfaced, got %q", msg.Content)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one attempt (no retry), got %d", gen.calls)
	}
}

func TestSendHandlesMalformedResponse(t *testing.T) {
	gen := &stubGenerator{configured: true, err: gemini.ErrMalformedResponse}
	svc, _ := newTestService(gen, &stubResolver{})

	msg, err := svc.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !strings.Contains(msg.Content, "unexpected response format") {
		t.Errorf("expected parse-error message, got %q", msg.Content)
	}
}

func TestBuildPromptIncludesSelectedContext(t *testing.T) {
	selected := []models.CatalogItem{
		{ID: 1, Kind: models.KindMovie, Title: "Interstellar"},
		{ID: 2, Kind: models.KindSeries, Title: "Dark"},
	}
	prompt := BuildPrompt("en-US", selected, "more like these")

	if !strings.Contains(prompt, "Interstellar, Dark") {
		t.Errorf("expected selected titles in prompt context")
	}
	if !strings.Contains(prompt, "USER QUESTION: more like these") {
		t.Errorf("expected user question in prompt")
	}
	if !strings.Contains(prompt, "EXACTLY 5 recommendations") {
		t.Errorf("expected the five-entry format contract")
	}
}
