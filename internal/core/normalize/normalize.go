// Package normalize provides deterministic text folding for chat matching
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Recompose to NFC
// 7 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Folder is concurrency safe when used with the pool below
type Folder struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		// NFKD must run before mark removal or precomposed runes keep their accents
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,                           // recompose whatever survived
		)
	},
}

// New constructs a Folder
func New() *Folder { return &Folder{} }

// Fold returns the folded form of s following the pipeline described above
// Used to compare user messages against remembered titles and fixed phrases
// so that casing, accents, and fullwidth input do not break matching
func (f *Folder) Fold(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-6 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 7 collapse whitespace and trim
	ns = collapseSpaces(ns)

	return ns
}

// ContainsFold reports whether either folded string contains the other
// This is how a short reply like "the gorge" is matched back to a
// remembered title like "The Gorge (2025)"
func (f *Folder) ContainsFold(a, b string) bool {
	fa, fb := f.Fold(a), f.Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

var titleCaser = cases.Title(language.English)

// TitleLabel renders a lowercase genre or keyword as a display label
// eg "sci-fi" -> "Sci-Fi" and "science fiction" -> "Science Fiction"
func TitleLabel(s string) string { return titleCaser.String(s) }

// collapseSpaces converts whitespace runs to a single ASCII space, but preserves line breaks.
// Runs that contain any newline are collapsed to a single newline. Leading/trailing spaces/newlines are trimmed
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	out := b.String()
	// Trim both spaces and newlines on edges
	out = strings.Trim(out, " \n\t\r")
	return out
}
