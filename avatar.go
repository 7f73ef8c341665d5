package carousel

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-carousel/internal/fileutil"
)

// MaxAvatarSize caps the avatar file embedded into every card.
const MaxAvatarSize = 10 << 20

// avatarMIMETypes is the lookup used by MIMETable.
var avatarMIMETypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"heic": "image/heic",
}

// AvatarMIMEType returns the media type for path under policy.
// MIMEAuto behaves like MIMETable. MIMEExtension keeps the extension as
// written, so "a.WEBP" gives "image/WEBP".
func AvatarMIMEType(path string, policy MIMEPolicy) string {
	if policy == MIMEExtension {
		return "image/" + strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if mt, ok := avatarMIMETypes[fileutil.Extension(path)]; ok {
		return mt
	}
	return "application/octet-stream"
}

// EncodeAvatar reads the image at path and returns it as a base64 data URI.
// The content is not decoded or checked; the browser decides whether it
// can display it.
func EncodeAvatar(path string, policy MIMEPolicy) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAvatarNotFound, path)
		}
		return "", fmt.Errorf("%w: %w", ErrAvatarEncode, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAvatarNotFound, path)
	}
	if info.Size() > MaxAvatarSize {
		return "", fmt.Errorf("%w: %s is %d bytes (max %d)", ErrAvatarEncode, path, info.Size(), MaxAvatarSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAvatarEncode, err)
	}

	return "data:" + AvatarMIMEType(path, policy) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
