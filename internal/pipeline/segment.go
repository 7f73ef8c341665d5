package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// Pair is the title/body split of one script line.
// Separator holds the colon that ended an inline title in document mode.
type Pair struct {
	Title     string
	Separator string
	Body      string
}

var (
	// "12. " style ordinal prefix used by the per-line rules.
	numberedPrefix = regexp.MustCompile(`^[0-9]+\.\s*`)

	// Inline paragraph title: ordinal, lazy text, then an ASCII or full-width colon.
	inlineTitle = regexp.MustCompile(`^(\d+\.\s*.*?)(：|:)`)
)

// separatorFolder maps full-width colon and comma to their ASCII forms.
// Other full-width characters are left alone.
var separatorFolder = runes.Map(func(r rune) rune {
	p := width.LookupRune(r)
	if p.Kind() != width.EastAsianFullwidth {
		return r
	}
	if n := p.Narrow(); n == ':' || n == ',' {
		return n
	}
	return r
})

// foldSeparators returns line with full-width separators folded to ASCII.
func foldSeparators(line string) string {
	out, _, err := transform.String(separatorFolder, line)
	if err != nil {
		return line
	}
	return out
}

// SegmentLine splits a line for per-line mode. The first line of the script
// is always a title with an empty body.
//
// Rules, first match wins:
//  1. numbered line with a colon: title is prefix plus text up to the colon
//  2. line with a comma: split at the first comma
//  3. line with a colon: split at the first colon
//  4. otherwise the whole line is the body
func SegmentLine(line string, first bool) Pair {
	if first {
		return Pair{Title: line}
	}

	folded := foldSeparators(line)
	colon := strings.Index(folded, ":")
	comma := strings.Index(folded, ",")

	if prefix := numberedPrefix.FindString(folded); prefix != "" && colon >= len(prefix) {
		return Pair{
			Title: prefix + strings.TrimSpace(folded[len(prefix):colon]),
			Body:  strings.TrimSpace(folded[colon+1:]),
		}
	}

	for _, idx := range []int{comma, colon} {
		if idx != -1 {
			return Pair{
				Title: strings.TrimSpace(folded[:idx]),
				Body:  strings.TrimSpace(folded[idx+1:]),
			}
		}
	}

	return Pair{Body: strings.TrimSpace(folded)}
}

// SegmentLines applies SegmentLine to every line, treating index 0 as the cover.
func SegmentLines(lines []string) []Pair {
	pairs := make([]Pair, len(lines))
	for i, line := range lines {
		pairs[i] = SegmentLine(line, i == 0)
	}
	return pairs
}

// SegmentParagraph splits a document-mode line. Only a numbered prefix
// followed by a colon produces a title; the body keeps the rest of the line
// as written.
func SegmentParagraph(line string) Pair {
	m := inlineTitle.FindStringSubmatchIndex(line)
	if m == nil {
		return Pair{Body: line}
	}
	return Pair{
		Title:     line[m[2]:m[3]],
		Separator: line[m[4]:m[5]],
		Body:      line[m[1]:],
	}
}

// SegmentDocument returns the cover title and the paragraph pairs of a
// document-mode script. An empty script yields an empty title and no pairs.
func SegmentDocument(lines []string) (string, []Pair) {
	if len(lines) == 0 {
		return "", nil
	}
	pairs := make([]Pair, 0, len(lines)-1)
	for _, line := range lines[1:] {
		pairs = append(pairs, SegmentParagraph(line))
	}
	return lines[0], pairs
}
