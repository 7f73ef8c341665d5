// Package pipeline implements the script-to-card layout pipeline.
//
// This package handles everything between the raw text script and the HTML
// documents handed to the browser:
//   - Line normalization and blank-line removal
//   - Title/body segmentation for per-line and document modes
//   - Emphasis synthesis (explicit **markup** and keyphrase heuristics)
//   - Inline body rendering via Goldmark
//   - Measurement-driven pagination
//   - Template placeholder substitution, CSS and avatar injection
//
// Screenshots are handled separately by the root carousel package using
// headless Chrome (go-rod). The Paginator only talks to a Measurer, so the
// layout decisions can be exercised without a browser.
package pipeline
