package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/models"
	"github.com/cineverse/cineverse/internal/services/gemini"
	"github.com/cineverse/cineverse/internal/store"
)

// Generator is the generative-text provider surface the chat needs.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Resolver matches assistant text against the catalog.
type Resolver interface {
	Resolve(ctx context.Context, text string) []models.CatalogItem
}

// Service runs the AI recommendation chat: it persists the transcript,
// calls the generative provider and reconciles replies against the catalog.
// Provider failures become visible, localized in-chat messages; they never
// propagate as errors to the transport layer.
type Service struct {
	store     *store.Store
	generator Generator
	resolver  Resolver
	logger    *logrus.Logger
}

// NewService creates a new chat service.
func NewService(st *store.Store, generator Generator, resolver Resolver, logger *logrus.Logger) *Service {
	return &Service{
		store:     st,
		generator: generator,
		resolver:  resolver,
		logger:    logger,
	}
}

// Messages returns the persisted transcript.
func (s *Service) Messages() []models.ChatMessage {
	return s.store.Messages()
}

// Clear discards the transcript.
func (s *Service) Clear() error {
	return s.store.ClearMessages()
}

// Send appends the user's message, obtains the assistant reply and returns
// it. Newly resolved recommendations are merged into the session set and
// attached to the reply.
func (s *Service) Send(ctx context.Context, userText string) (models.ChatMessage, error) {
	lang := s.store.Language()

	// Without a configured key no network call is attempted; the chat
	// answers with a clear localized message instead.
	if !s.generator.Configured() {
		return s.appendAssistant(localize(lang, msgMissingKey), nil)
	}

	userMsg := models.ChatMessage{
		ID:      uuid.NewString(),
		Role:    models.RoleUser,
		Content: userText,
	}
	if err := s.store.AppendMessage(userMsg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to persist user message: %w", err)
	}

	prompt := BuildPrompt(lang, s.store.SelectedMedia(), userText)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return s.appendAssistant(errorText(lang, err), nil)
	}

	resolved := s.resolver.Resolve(ctx, text)
	if _, err := s.store.MergeRecommendations(resolved); err != nil {
		s.logger.WithError(err).Warn("Failed to persist recommendation set")
	}

	return s.appendAssistant(text, resolved)
}

func (s *Service) appendAssistant(content string, recommendations []models.CatalogItem) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:              uuid.NewString(),
		Role:            models.RoleAssistant,
		Content:         content,
		Recommendations: recommendations,
	}
	if err := s.store.AppendMessage(msg); err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to persist assistant message: %w", err)
	}
	return msg, nil
}

// errorText converts a provider failure into the localized message shown in
// the transcript. No retry is attempted.
func errorText(lang string, err error) string {
	var statusErr *gemini.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf(localize(lang, msgProviderStatus), statusErr.Code, statusErr.Body)
	case errors.Is(err, gemini.ErrMalformedResponse):
		return localize(lang, msgMalformed)
	default:
		return localize(lang, msgNetwork)
	}
}

type messageKey int

const (
	msgMissingKey messageKey = iota
	msgProviderStatus
	msgMalformed
	msgNetwork
)

var messages = map[string]map[messageKey]string{
	"en-US": {
		msgMissingKey:     "Error: Gemini API key not configured. Please add GEMINI_API_KEY to your .env file.",
		msgProviderStatus: "Error talking to the AI service (status %d): %s",
		msgMalformed:      "The AI service returned an unexpected response format. Please try again.",
		msgNetwork:        "Could not reach the AI service. Please try again.",
	},
	"pt-BR": {
		msgMissingKey:     "Erro: Chave da API do Gemini não configurada. Por favor, adicione GEMINI_API_KEY no arquivo .env.",
		msgProviderStatus: "Erro ao falar com o serviço de IA (status %d): %s",
		msgMalformed:      "O serviço de IA retornou uma resposta em formato inesperado. Tente novamente.",
		msgNetwork:        "Não foi possível contatar o serviço de IA. Tente novamente.",
	},
}

func localize(lang string, key messageKey) string {
	if m, ok := messages[lang]; ok {
		return m[key]
	}
	return messages["en-US"][key]
}
