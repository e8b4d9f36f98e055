package webform

import (
	"net/url"
	"strings"
)

// HeaderOffset is the height of the fixed site header that in-page anchor
// scrolling must clear.
const HeaderOffset = 80

// ScrollOffset returns the window position that brings an element whose top
// edge is at elementTop just below the header.
func ScrollOffset(elementTop float64) float64 {
	return elementTop - HeaderOffset
}

// AnchorID returns the element id an in-page link points at. Fragments are
// percent-decoded; "#" alone and non-fragment links report false.
func AnchorID(href string) (string, bool) {
	if !strings.HasPrefix(href, "#") {
		return "", false
	}
	id := href[1:]
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}
	if id == "" {
		return "", false
	}
	return id, true
}
