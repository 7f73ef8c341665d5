package carousel

import (
	"fmt"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/alnah/go-carousel/internal/fileutil"
)

// ManifestFile is the name of the manifest written next to the cards.
const ManifestFile = "manifest.json"

// Manifest lists the cards of one run in order.
type Manifest struct {
	Mode  Mode            `json:"mode"`
	Pages []ManifestEntry `json:"pages"`
}

// ManifestEntry describes one card. File is relative to the manifest.
type ManifestEntry struct {
	Ordinal int    `json:"ordinal"`
	File    string `json:"file"`
	Title   string `json:"title,omitempty"`
	First   bool   `json:"first"`
}

// newManifest builds the manifest of res.
func newManifest(res *Result) Manifest {
	m := Manifest{Mode: res.Mode, Pages: make([]ManifestEntry, 0, len(res.Pages))}
	for _, p := range res.Pages {
		m.Pages = append(m.Pages, ManifestEntry{
			Ordinal: p.Ordinal,
			File:    filepath.Base(p.Path),
			Title:   p.Title,
			First:   p.First,
		})
	}
	return m
}

// writeManifest writes the manifest of res into dir and returns its path.
func writeManifest(dir string, res *Result) (string, error) {
	data, err := json.MarshalIndent(newManifest(res), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := fileutil.WriteFileAtomic(path, append(data, '\n')); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return path, nil
}
