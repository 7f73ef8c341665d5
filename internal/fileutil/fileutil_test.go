package fileutil_test

// Notes:
// - TestWriteTempFile_CreateTempError sets TMPDIR through t.Setenv and
//   therefore cannot run in parallel with other tests.
// - Write and close failures inside WriteTempFile/WriteFileAtomic are not
//   tested: triggering disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-carousel/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp documents for the browser
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		extension string
	}{
		{name: "html card", content: "<html><body>卡片</body></html>", extension: "html"},
		{name: "empty content", content: "", extension: "html"},
		{name: "png bytes as string", content: "\x89PNG\r\n", extension: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, cleanup, err := fileutil.WriteTempFile(tt.content, tt.extension)
			if err != nil {
				t.Fatalf("WriteTempFile() error = %v", err)
			}
			defer cleanup()

			if !strings.Contains(filepath.Base(path), "carousel-") {
				t.Errorf("path %q does not contain prefix 'carousel-'", path)
			}
			if !strings.HasSuffix(path, "."+tt.extension) {
				t.Errorf("path %q does not have extension .%s", path, tt.extension)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read temp file: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("file content = %q, want %q", string(data), tt.content)
			}
		})
	}
}

func TestWriteTempFile_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("x", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup: %v", err)
	}
	cleanup() // second call is harmless
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		wantErr error
	}{
		{"", fileutil.ErrExtensionEmpty},
		{"../html", fileutil.ErrExtensionPathTraversal},
		{`a\b`, fileutil.ErrExtensionPathTraversal},
		{"ht\x00ml", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			_, cleanup, err := fileutil.WriteTempFile("x", tt.ext)
			if cleanup != nil {
				t.Error("cleanup should be nil on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteTempFile(ext %q) error = %v, want %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile_CreateTempError(t *testing.T) {
	t.Setenv("TMPDIR", "/nonexistent/path/that/does/not/exist")
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR is not consulted on Windows")
	}

	_, cleanup, err := fileutil.WriteTempFile("content", "html")
	if cleanup != nil {
		defer cleanup()
	}
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("WriteTempFile() error = %v, want 'creating temp file'", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Output cards
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "output_1.png")

	if err := fileutil.WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the output file", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	err := fileutil.WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "out.png"), []byte("x"))
	if err == nil {
		t.Error("WriteFileAtomic() expected error for missing directory")
	}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestPathHelpers - Classification
// ---------------------------------------------------------------------------

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"avatar.PNG":       "png",
		"dir/photo.jpeg":   "jpeg",
		"archive.tar.gz":   "gz",
		"noext":            "",
		"/tmp/.hidden":     "hidden",
		"image.HeIc":       "heic",
		`C:\pics\face.JPG`: "jpg",
		"trailing.dot.":    "",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.Extension(input); got != want {
				t.Errorf("Extension(%q) = %q, want %q", input, got, want)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "absent")) {
		t.Error("FileExists(absent) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"dark", false},
		{"my-style", false},
		{"brand.css", false},
		{"./brand.css", true},
		{"/abs/brand.yaml", true},
		{`C:\styles\brand.css`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"dark", false},
		{"brand.css", true},
		{"./themes/BRAND.CSS", true},
		{"brand.css.bak", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsCSS(tt.input); got != tt.want {
				t.Errorf("IsCSS(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
