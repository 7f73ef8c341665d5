package pipeline

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They survive Goldmark untouched and become <span class="highlight">
// after rendering, so body text never needs html.WithUnsafe().
const (
	HighlightStartPlaceholder = "\uE000"
	HighlightEndPlaceholder   = "\uE001"
)

// Highlight span markup emitted for each placeholder pair.
const (
	highlightOpen  = `<span class="highlight">`
	highlightClose = `</span>`
)

// explicitMarkup matches **text**, shortest span first.
var explicitMarkup = regexp.MustCompile(`\*\*(.+?)\*\*`)

// phraseStop ends a trigger-captured phrase at Chinese clause punctuation.
const phraseStop = `([^，。；？！]+)`

var highlightReplacer = strings.NewReplacer(
	HighlightStartPlaceholder, highlightOpen,
	HighlightEndPlaceholder, highlightClose,
)

// WrapExplicit turns **text** into highlight placeholders.
// Text without markup is returned unchanged.
func WrapExplicit(body string) string {
	return explicitMarkup.ReplaceAllString(body, HighlightStartPlaceholder+"${1}"+HighlightEndPlaceholder)
}

// ConvertHighlightPlaceholders replaces placeholder pairs with highlight spans.
func ConvertHighlightPlaceholders(content string) string {
	return highlightReplacer.Replace(content)
}

// HighlightOptions configures emphasis synthesis.
type HighlightOptions struct {
	// Heuristic enables keyphrase detection on top of explicit markup.
	Heuristic bool

	// MaxPhrases caps the number of heuristic phrases per paragraph.
	MaxPhrases int

	// ExcludingTriggers capture the text after the trigger, without it.
	ExcludingTriggers []string

	// IncludingTriggers capture the trigger together with the text after it.
	IncludingTriggers []string

	// Phrases are always highlighted when present in the body.
	Phrases []string
}

// DefaultHighlightOptions returns the built-in Chinese keyphrase rules.
func DefaultHighlightOptions() HighlightOptions {
	return HighlightOptions{
		Heuristic:         true,
		MaxPhrases:        3,
		ExcludingTriggers: []string{"可以", "需要"},
		IncludingTriggers: []string{"帮助", "确保", "进行", "分析", "识别", "编写"},
		Phrases:           []string{"不是一成不变的", "更新和改进"},
	}
}

type triggerRule struct {
	trigger string
	re      *regexp.Regexp
	include bool
}

// Highlighter wraps emphasized spans of body text in highlight placeholders.
type Highlighter struct {
	opts   HighlightOptions
	rules  []triggerRule
	tagger Tagger
}

// NewHighlighter compiles the trigger rules in opts.
// A nil tagger disables the verb-noun rule.
func NewHighlighter(opts HighlightOptions, tagger Tagger) *Highlighter {
	h := &Highlighter{opts: opts, tagger: tagger}
	for _, t := range opts.ExcludingTriggers {
		h.rules = append(h.rules, triggerRule{trigger: t, re: regexp.MustCompile(regexp.QuoteMeta(t) + phraseStop)})
	}
	for _, t := range opts.IncludingTriggers {
		h.rules = append(h.rules, triggerRule{trigger: t, re: regexp.MustCompile(regexp.QuoteMeta(t) + phraseStop), include: true})
	}
	return h
}

// KeyPhrases returns the heuristic phrases of body: deduplicated, longest
// first (ties keep discovery order) and capped at MaxPhrases.
func (h *Highlighter) KeyPhrases(body string) []string {
	var found []string

	for _, rule := range h.rules {
		for _, m := range rule.re.FindAllStringSubmatch(body, -1) {
			if rule.include {
				found = append(found, rule.trigger+m[1])
			} else {
				found = append(found, m[1])
			}
		}
	}

	if h.tagger != nil {
		tokens := h.tagger.Tag(body)
		for i := 0; i+1 < len(tokens); i++ {
			if tokens[i].Tag == "v" && tokens[i+1].Tag == "n" {
				found = append(found, tokens[i].Word+tokens[i+1].Word)
			}
		}
	}

	for _, p := range h.opts.Phrases {
		if p != "" && strings.Contains(body, p) {
			found = append(found, p)
		}
	}

	return rankPhrases(found, h.opts.MaxPhrases)
}

// rankPhrases deduplicates and orders phrases by rune length, descending.
// Whitespace-only phrases are dropped since they would wrap every space.
func rankPhrases(found []string, limit int) []string {
	seen := make(map[string]struct{}, len(found))
	ranked := make([]string, 0, len(found))
	for _, p := range found {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ranked = append(ranked, p)
	}

	slices.SortStableFunc(ranked, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Apply wraps explicit markup, then every occurrence of each heuristic
// phrase when heuristics are enabled. Phrases are found on the original body.
// Overlapping phrases nest their placeholders.
func (h *Highlighter) Apply(body string) string {
	out := WrapExplicit(body)
	if !h.opts.Heuristic {
		return out
	}
	for _, p := range h.KeyPhrases(body) {
		out = strings.ReplaceAll(out, p, HighlightStartPlaceholder+p+HighlightEndPlaceholder)
	}
	return out
}
