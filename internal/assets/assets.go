package assets

// defaultLoader serves the built-in assets.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
// Returns ErrStyleNotFound if the style does not exist.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplateSet loads a built-in template set by name.
// Returns ErrTemplateSetNotFound if the set does not exist.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}

// EmbeddedStyles lists the names of the built-in styles.
func EmbeddedStyles() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n := e.Name(); !e.IsDir() && len(n) > len(".css") && n[len(n)-4:] == ".css" {
			names = append(names, n[:len(n)-4])
		}
	}
	return names
}
