package recommend

import (
	"reflect"
	"testing"
)

func TestExtractWellFormedList(t *testing.T) {
	text := `Here are some picks you'll love!

1. Inception (2010)
Reason: a heist through dreams, perfect for puzzle lovers.
2. Dark (2017)
Reason: time travel done with surgical precision.
3. The Prestige (2006)
4. Severance (2022)
5. Coherence (2013)`

	got := Extract(text)
	want := []Candidate{
		{Ordinal: 1, Title: "Inception", Year: 2010},
		{Ordinal: 2, Title: "Dark", Year: 2017},
		{Ordinal: 3, Title: "The Prestige", Year: 2006},
		{Ordinal: 4, Title: "Severance", Year: 2022},
		{Ordinal: 5, Title: "Coherence", Year: 2013},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extraction mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestExtractSkipsMalformedLines(t *testing.T) {
	text := `1. Alien (1979)
2. Blade Runner (1982)
Sunshine (2007)
4. Moon (2009)
5. Arrival (2016)`

	got := Extract(text)
	if len(got) != 4 {
		t.Fatalf("expected 4 candidates (malformed line skipped), got %d: %+v", len(got), got)
	}
	for _, c := range got {
		if c.Title == "Sunshine" {
			t.Errorf("line without ordinal prefix must not be extracted: %+v", c)
		}
	}
}

func TestExtractCapsAtFive(t *testing.T) {
	text := `1. A (2001)
2. B (2002)
3. C (2003)
4. D (2004)
5. E (2005)
6. F (2006)
7. G (2007)`

	got := Extract(text)
	if len(got) != MaxCandidates {
		t.Errorf("expected cap at %d candidates, got %d", MaxCandidates, len(got))
	}
}

func TestExtractHandlesMarkdownResidue(t *testing.T) {
	text := "### 1. **The Godfather** (1972)\n2. *Chinatown* (1974)"

	got := Extract(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Title != "The Godfather" {
		t.Errorf("expected stripped title, got %q", got[0].Title)
	}
	if got[1].Title != "Chinatown" {
		t.Errorf("expected stripped title, got %q", got[1].Title)
	}
}

func TestExtractYearIsOptional(t *testing.T) {
	got := Extract("1. Twin Peaks")
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Year != 0 {
		t.Errorf("expected zero year, got %d", got[0].Year)
	}
	if got[0].Title != "Twin Peaks" {
		t.Errorf("unexpected title %q", got[0].Title)
	}
}

func TestExtractEmptyAndFillerOnlyText(t *testing.T) {
	if got := Extract(""); len(got) != 0 {
		t.Errorf("expected nothing from empty text, got %+v", got)
	}
	if got := Extract("Enjoy your evening!\nNo list today."); len(got) != 0 {
		t.Errorf("expected nothing from filler text, got %+v", got)
	}
}
