// Package assets provides the CSS styles and HTML templates used to draw cards.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the generator. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when an asset is
// not found, so a user can override one style and keep the built-in templates.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css            # Card theme (e.g., dark.css)
//	└── templates/
//	    └── {name}/
//	        ├── line.html         # Per-line card shell
//	        ├── first-page.css    # Cover card overrides (optional)
//	        ├── document.html     # Document-mode shell
//	        └── page.html         # Document-mode page (html/template)
//
// Shells use {{TOKEN}} placeholders filled by plain substitution; page.html is
// a Go html/template executed once per page.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
