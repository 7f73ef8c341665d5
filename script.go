package carousel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ReadScript reads a script file. A missing file yields ErrInputNotFound;
// any other failure yields ErrReadInput.
func ReadScript(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}
