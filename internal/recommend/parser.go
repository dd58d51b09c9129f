package recommend

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxCandidates caps how many numbered entries are extracted from one
// assistant reply.
const MaxCandidates = 5

// Candidate is one numbered title mention extracted from free-form text.
type Candidate struct {
	Ordinal int
	Title   string
	Year    int // 0 when the line carries no year
}

// candidateRe matches one numbered recommendation line: an optional
// markdown heading prefix, an integer ordinal, a period, the title, and an
// optional four-digit year in parentheses. Anything else on a line is
// narrative filler and is ignored for extraction purposes.
var candidateRe = regexp.MustCompile(`^\s*(?:#+\s*)?(\d+)\.\s*(.+?)(?:\s*\((\d{4})\))?\s*$`)

// markupReplacer strips the markdown residue models leave on titles.
var markupReplacer = strings.NewReplacer("**", "", "*", "", "_", "", "`", "")

// Extract scans text line by line and returns up to MaxCandidates numbered
// entries. Malformed lines are skipped, never an error.
func Extract(text string) []Candidate {
	var candidates []Candidate
	for _, line := range strings.Split(text, "\n") {
		if len(candidates) >= MaxCandidates {
			break
		}

		match := candidateRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		ordinal, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		title := strings.TrimSpace(markupReplacer.Replace(match[2]))
		if title == "" {
			continue
		}

		year := 0
		if match[3] != "" {
			year, _ = strconv.Atoi(match[3])
		}

		candidates = append(candidates, Candidate{
			Ordinal: ordinal,
			Title:   title,
			Year:    year,
		})
	}
	return candidates
}
