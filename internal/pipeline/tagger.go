package pipeline

import (
	"errors"
	"fmt"

	"github.com/go-ego/gse"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// ErrTaggerLoad indicates the segmentation dictionary could not be loaded.
var ErrTaggerLoad = errors.New("loading segmentation dictionary failed")

// DefaultTagCacheSize bounds the number of cached tagging results.
const DefaultTagCacheSize = 512

// Token is one word with its part-of-speech tag ("v" verb, "n" noun, ...).
type Token struct {
	Word string
	Tag  string
}

// Tagger segments text into part-of-speech tagged words.
type Tagger interface {
	Tag(text string) []Token
}

// Compile-time interface checks.
var (
	_ Tagger = (*GseTagger)(nil)
	_ Tagger = (*CachedTagger)(nil)
)

// GseTagger tags Chinese text with gse and its embedded dictionary.
type GseTagger struct {
	seg gse.Segmenter
}

// NewGseTagger loads the embedded dictionary. Loading takes a noticeable
// moment, so callers create one tagger and share it.
func NewGseTagger() (*GseTagger, error) {
	t := &GseTagger{}
	t.seg.SkipLog = true
	if err := t.seg.LoadDictEmbed(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTaggerLoad, err)
	}
	return t, nil
}

// Tag returns the tagged words of text in order.
func (t *GseTagger) Tag(text string) []Token {
	segs := t.seg.Pos(text, false)
	tokens := make([]Token, 0, len(segs))
	for _, s := range segs {
		tokens = append(tokens, Token{Word: s.Text, Tag: s.Pos})
	}
	return tokens
}

// CachedTagger memoizes another Tagger, keyed by the xxh3 hash of the text.
// Repeated paragraphs across runs of the same Generator are tagged once.
type CachedTagger struct {
	next  Tagger
	cache *lru.Cache[uint64, []Token]
}

// NewCachedTagger wraps next with an LRU cache of the given size.
func NewCachedTagger(next Tagger, size int) (*CachedTagger, error) {
	cache, err := lru.New[uint64, []Token](size)
	if err != nil {
		return nil, fmt.Errorf("creating tag cache: %w", err)
	}
	return &CachedTagger{next: next, cache: cache}, nil
}

// Tag returns cached tokens for text, tagging it on a miss.
func (c *CachedTagger) Tag(text string) []Token {
	key := xxh3.HashString(text)
	if tokens, ok := c.cache.Get(key); ok {
		return tokens
	}
	tokens := c.next.Tag(text)
	c.cache.Add(key, tokens)
	return tokens
}
