// Package carousel turns a plain-text script into PNG carousel cards
// rendered by headless Chrome.
//
// # Quick Start
//
// Create a generator, generate cards, and close when done:
//
//	gen, err := carousel.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, carousel.Input{
//	    Script:    "标题\n1. 第一点：内容\n第二点，内容",
//	    OutputDir: "out",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range result.Pages {
//	    fmt.Println(p.Path)
//	}
//
// Cards are written as output_1.png, output_2.png, ... in the output
// directory, overwriting earlier runs.
//
// # Modes
//
// ModeLines draws one 750x1334 card per non-blank line. The first line is
// the cover title; every other line is split into a title and a body at a
// numbered "1. title:" prefix, the first comma, or the first colon.
//
// ModeDocument treats the first line as the cover title and every other
// line as a paragraph. Paragraphs are packed greedily into 825x1467 pages,
// measuring each candidate page in the browser. The first page carries the
// cover header (random gradient, optional avatar, title).
//
// # Highlighting
//
// **text** is highlighted in both modes. ModeDocument also picks up to three
// key phrases per paragraph from trigger words, curated phrases and
// verb+noun pairs found by a part-of-speech Tagger. Tune or disable this
// with WithHighlight; supply your own tagger with WithTagger.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := carousel.NewGenerator(
//	    carousel.WithTimeout(2 * time.Minute),
//	    carousel.WithStyle("dark"),
//	    carousel.WithAssetPath("/path/to/custom/assets"),
//	    carousel.WithLayout(carousel.Layout{FillRatio: 0.75}),
//	)
//
// Per-run options are passed via Input:
//
//	result, err := gen.Generate(ctx, carousel.Input{
//	    Script:     script,
//	    OutputDir:  "out",
//	    AvatarPath: "avatar.png",
//	    Mode:       carousel.ModeDocument,
//	    Seed:       42,   // reproducible cover gradient
//	    Manifest:   true, // also write manifest.json
//	})
//
// # Custom Assets
//
// Override built-in styles and templates using AssetLoader:
//
//	loader, err := carousel.NewAssetLoader("/path/to/assets")
//	gen, err := carousel.NewGenerator(carousel.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        ├── line.html
//	        ├── first-page.css
//	        ├── document.html
//	        └── page.html
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; the sandbox is
// disabled when it is set, when CI=true or when ROD_NO_SANDBOX=1.
package carousel
