package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrAvatarInject indicates the avatar could not be placed in the template.
var ErrAvatarInject = errors.New("avatar injection failed")

// Element ids the per-line shell uses for the avatar slot.
const (
	AvatarImageID       = "coverAvatarPreview"
	AvatarPlaceholderID = "coverAvatarPlaceholder"
)

// InjectAvatar sets the src of the avatar image element to dataURI and
// removes the upload placeholder element. With an empty dataURI the shell is
// returned unchanged. Template tokens survive the round trip since they only
// appear in text and attribute values.
func InjectAvatar(shell, dataURI string) (string, error) {
	if dataURI == "" {
		return shell, nil
	}

	doc, err := html.Parse(strings.NewReader(shell))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAvatarInject, err)
	}

	var placeholders []*html.Node
	walk(doc, func(n *html.Node) {
		switch attr(n, "id") {
		case AvatarImageID:
			if n.Data == "img" {
				setAttr(n, "src", dataURI)
			}
		case AvatarPlaceholderID:
			placeholders = append(placeholders, n)
		}
	})
	for _, n := range placeholders {
		n.Parent.RemoveChild(n)
	}

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAvatarInject, err)
	}
	return buf.String(), nil
}

// walk visits element nodes depth-first.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
