// Package extract pulls shallow entities out of a chat message with regex heuristics
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"cinechat/internal/core/intent"
)

// Bag carries the entities found in one message
// Zero values mean the entity was absent
type Bag struct {
	Title       string   `json:"title,omitempty"`
	Year        int      `json:"year,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	PersonNames []string `json:"person_names,omitempty"`
}

// HasTitle reports whether a title was extracted
func (b Bag) HasTitle() bool { return b.Title != "" }

// FirstGenre returns the preferred genre for catalog lookups
// The synonym scan is richer than the literal scan so it wins when present
func (b Bag) FirstGenre() string {
	if len(b.Genres) > 0 {
		return b.Genres[0]
	}
	return b.Genre
}

var (
	reQuoted       = regexp.MustCompile(`"([^"]+)"`)
	reGenreLiteral = regexp.MustCompile(`(?i)\b(action|comedy|drama|horror|romance|sci-fi|science fiction|thriller|fantasy|documentary|animation|crime|mystery|western|biography|musical|adventure|family|war|history|sport)\b`)
	reLeadPhrase   = regexp.MustCompile(`(?i)(?:tell me about|about|plot of|info on|give me info about|what is|details about|info about)\s+(.+?)(?:\?|$|\.)`)
	reYear         = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	rePersonName   = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z][a-z]+){1,2}`)
	reAnyUpper     = regexp.MustCompile(`[A-Z]`)
)

// genreRule maps a canonical genre to its synonym pattern
type genreRule struct {
	genre   string
	pattern *regexp.Regexp
}

// genreRules runs in order and every matching rule contributes,
// so Genres ends up ordered by this table
var genreRules = []genreRule{
	{"action", regexp.MustCompile(`\b(action|adventure|fight|battle|exciting|adrenaline|fast-paced|intense|superhero|martial arts)\b`)},
	{"comedy", regexp.MustCompile(`\b(comedy|funny|humor|laugh|hilarious|comic|witty|light-hearted|amusing)\b`)},
	{"drama", regexp.MustCompile(`\b(drama|dramatic|emotional|touching|heartbreaking|tear-jerker|serious|sad)\b`)},
	{"horror", regexp.MustCompile(`\b(horror|scary|frightening|terror|creepy|spooky|haunted|zombie|ghost)\b`)},
	{"romance", regexp.MustCompile(`\b(romance|romantic|love|relationship|couple|dating|wedding|valentine)\b`)},
	{"sci-fi", regexp.MustCompile(`\b(sci-fi|science fiction|futuristic|space|alien|robot|technology|cyberpunk|dystopian)\b`)},
	{"thriller", regexp.MustCompile(`\b(thriller|suspense|mystery|psychological|crime|detective|investigation)\b`)},
	{"fantasy", regexp.MustCompile(`\b(fantasy|magical|fairy tale|wizard|dragon|medieval|mythical|supernatural)\b`)},
	{"documentary", regexp.MustCompile(`\b(documentary|real|true story|based on|biography|historical|educational)\b`)},
	{"animation", regexp.MustCompile(`\b(animation|animated|cartoon|pixar|disney|anime|claymation)\b`)},
	{"family", regexp.MustCompile(`\b(family|kids|children|wholesome|all ages|disney|pixar)\b`)},
	{"war", regexp.MustCompile(`\b(war|military|battle|soldier|combat|wwii|vietnam|conflict)\b`)},
	{"western", regexp.MustCompile(`\b(western|cowboy|wild west|frontier|gunfighter|saloon)\b`)},
	{"musical", regexp.MustCompile(`\b(musical|singing|songs|broadway|opera|music|dance)\b`)},
}

// stopWords may stand uncapitalized inside a title
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "and": {}, "or": {},
}

// LeadTitle returns the span following a lead phrase like "tell me about",
// trimmed at the first question mark, period, or end of line
// The dispatch layer uses this to treat such messages as direct lookups
// regardless of the classified intent
func LeadTitle(message string) (string, bool) {
	m := reLeadPhrase.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Extract runs the entity heuristics over one message
// The title decision list is ordered. The first firing step wins and the
// lead-phrase, short-message, and capitalized-phrase steps stop further
// extraction because the whole message was consumed as a title reference
func Extract(message string, it intent.Intent) Bag {
	var bag Bag

	trimmed := strings.TrimSpace(message)
	words := strings.Fields(trimmed)

	// quoted span wins over everything
	if m := reQuoted.FindStringSubmatch(message); m != nil {
		bag.Title = m[1]
	}

	// literal genre scan is independent of the title decision list
	if m := reGenreLiteral.FindStringSubmatch(message); m != nil {
		bag.Genre = strings.ToLower(m[1])
	}

	if !bag.HasTitle() {
		// lead phrase like "tell me about X" captures up to ? . or end of line
		if m := reLeadPhrase.FindStringSubmatch(message); m != nil {
			bag.Title = strings.TrimSpace(m[1])
			return bag
		}

		// short message that is plausibly just a title
		if len(words) <= 5 && (it == intent.Search || len(words) <= 3) && reAnyUpper.MatchString(message) {
			bag.Title = trimmed
			return bag
		}

		// short capitalized phrase like "The Gorge"
		if startsUpper(trimmed) && len(words) >= 1 && len(words) <= 4 {
			bag.Title = trimmed
			return bag
		}

		// every word capitalized or a stop word
		if len(words) >= 1 && len(words) <= 4 && allTitleWords(words) {
			bag.Title = trimmed
		}
	}

	// first plausible release year
	if m := reYear.FindStringSubmatch(message); m != nil {
		bag.Year, _ = strconv.Atoi(m[1])
	}

	// synonym genre scan over the lowercased message
	lower := strings.ToLower(message)
	for _, gr := range genreRules {
		if gr.pattern.MatchString(lower) {
			bag.Genres = append(bag.Genres, gr.genre)
		}
	}

	// capitalized 2-3 word spans read as person names
	bag.PersonNames = rePersonName.FindAllString(message, -1)

	return bag
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func allTitleWords(words []string) bool {
	for _, w := range words {
		if startsUpper(w) {
			continue
		}
		if _, ok := stopWords[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}
