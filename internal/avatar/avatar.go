// Package avatar derives libravatar image URLs from Fedora account names.
package avatar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
)

const (
	// DefaultSize is the image size, in pixels, requested when none is configured.
	DefaultSize = 64
	// DefaultStyle is the libravatar fallback image style.
	DefaultStyle = "retro"

	baseURL = "https://seccdn.libravatar.org/avatar/"
)

// Resolver builds avatar URLs with a fixed size and fallback style.
type Resolver struct {
	Size  int
	Style string
}

// Default is the resolver used when no configuration applies.
var Default = Resolver{Size: DefaultSize, Style: DefaultStyle}

// New returns a resolver, substituting defaults for a non-positive size or an
// empty style.
func New(size int, style string) Resolver {
	if size <= 0 {
		size = DefaultSize
	}
	if style == "" {
		style = DefaultStyle
	}
	return Resolver{Size: size, Style: style}
}

// URL returns the avatar URL for username. The same username always yields
// the same URL.
func (r Resolver) URL(username string) string {
	openid := fmt.Sprintf("http://%s.id.fedoraproject.org/", username)
	sum := sha256.Sum256([]byte(openid))
	// Query order is s then d; url.Values would sort the keys.
	return fmt.Sprintf("%s%s?s=%d&d=%s", baseURL, hex.EncodeToString(sum[:]), r.Size, url.QueryEscape(r.Style))
}

// URL returns the avatar URL for username using Default.
func URL(username string) string {
	return Default.URL(username)
}
