package chat

import (
	"fmt"
	"strings"

	"github.com/cineverse/cineverse/internal/models"
)

// BuildPrompt assembles the generative prompt: persona, the user's selected
// titles as taste context, the question, and strict formatting rules that
// force exactly five numbered "Title (Year)" entries the reconciler can
// parse back out.
func BuildPrompt(lang string, selected []models.CatalogItem, userMessage string) string {
	responseLanguage := "English"
	reasonPrefix := "Reason:"
	titleRule := "Use the EXACT English titles as they appear in the movie database"
	if lang == "pt-BR" {
		responseLanguage = "português brasileiro"
		reasonPrefix = "Razão:"
		titleRule = "Use os títulos em PORTUGUÊS como aparecem no Brasil"
	}

	var b strings.Builder
	b.WriteString("You are CineVerse AI, an expert in movie, series and anime recommendations.\n\n")

	if len(selected) > 0 {
		titles := make([]string, 0, len(selected))
		for _, item := range selected {
			titles = append(titles, item.Title)
		}
		fmt.Fprintf(&b, "CONTEXT: The user likes: %s\n\n", strings.Join(titles, ", "))
	}

	fmt.Fprintf(&b, "USER QUESTION: %s\n\n", userMessage)

	fmt.Fprintf(&b, `FORMATTING INSTRUCTIONS (IMPORTANT):

Answer in %s following EXACTLY this format:

[1-2 friendly introduction sentences]

1. [Exact Title] ([Year])
%s [one short sentence explaining why it fits the user]

2. [Exact Title] ([Year])
%s [one short sentence explaining why it fits the user]

3. [Exact Title] ([Year])
%s [one short sentence explaining why it fits the user]

4. [Exact Title] ([Year])
%s [one short sentence explaining why it fits the user]

5. [Exact Title] ([Year])
%s [one short sentence explaining why it fits the user]

IMPORTANT RULES:
- %s
- Year in parentheses right after the title
- Do NOT use asterisks, hashes or markdown
- Do NOT add anything outside the format
- Provide EXACTLY 5 recommendations`,
		responseLanguage, reasonPrefix, reasonPrefix, reasonPrefix, reasonPrefix, reasonPrefix, titleRule)

	return b.String()
}
