package pipeline

import "testing"

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tmpl   string
		values map[string]string
		want   string
	}{
		{
			name:   "replaces every occurrence",
			tmpl:   "{{COVER_TITLE}} / {{COVER_TITLE}}",
			values: map[string]string{TokenCoverTitle: "T"},
			want:   "T / T",
		},
		{
			name:   "unknown tokens are kept",
			tmpl:   "{{COVER_TITLE}} {{OTHER}}",
			values: map[string]string{TokenCoverTitle: "T"},
			want:   "T {{OTHER}}",
		},
		{
			name:   "values are not re-scanned",
			tmpl:   "{{COVER_TITLE}}|{{TEXT_CONTENT}}",
			values: map[string]string{TokenCoverTitle: "{{TEXT_CONTENT}}", TokenTextContent: "body"},
			want:   "{{TEXT_CONTENT}}|body",
		},
		{
			name:   "empty values clear tokens",
			tmpl:   `<div class="{{PAGE_STYLE_CLASS}}">`,
			values: map[string]string{TokenPageStyleClass: ""},
			want:   `<div class="">`,
		},
		{
			name:   "no values",
			tmpl:   "{{COVER_TITLE}}",
			values: nil,
			want:   "{{COVER_TITLE}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Substitute(tt.tmpl, tt.values); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}
