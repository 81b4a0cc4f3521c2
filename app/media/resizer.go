package media

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// URLResizer builds the URL of an image resized to the given pixel size.
type URLResizer interface {
	ResizeURL(imageURL string, width, height int, isPrivate, useProxy bool) string
}

const DefaultPhotonHost = "i0.wp.com"

// PhotonResizer routes public images through a resizing CDN and requests
// private images directly with w/h parameters.
type PhotonResizer struct {
	Host string
}

func NewPhotonResizer(host string) *PhotonResizer {
	if host == "" {
		host = DefaultPhotonHost
	}
	return &PhotonResizer{Host: host}
}

func (p *PhotonResizer) ResizeURL(imageURL string, width, height int, isPrivate, useProxy bool) string {
	unescaped := html.UnescapeString(imageURL)
	if unescaped == "" {
		return ""
	}

	if isPrivate && !useProxy {
		return p.direct(unescaped, width, height)
	}
	return p.photon(unescaped, width, height)
}

func (p *PhotonResizer) direct(imageURL string, width, height int) string {
	base := stripQuery(imageURL)
	if strings.HasPrefix(base, "http://") {
		base = "https://" + strings.TrimPrefix(base, "http://")
	}

	switch {
	case width > 0 && height > 0:
		return fmt.Sprintf("%s?w=%d&h=%d", base, width, height)
	case width > 0:
		return fmt.Sprintf("%s?w=%d", base, width)
	case height > 0:
		return fmt.Sprintf("%s?h=%d", base, height)
	default:
		return base
	}
}

func (p *PhotonResizer) photon(imageURL string, width, height int) string {
	u, err := url.Parse(stripQuery(imageURL))
	if err != nil || u.Host == "" {
		return imageURL
	}

	target := u.Host + u.EscapedPath()
	if strings.EqualFold(u.Host, p.Host) {
		target = strings.TrimPrefix(u.EscapedPath(), "/")
	}

	query := "strip=info&quality=65"
	switch {
	case width > 0 && height > 0:
		query += fmt.Sprintf("&resize=%d,%d", width, height)
	case width > 0:
		query += fmt.Sprintf("&w=%d", width)
	case height > 0:
		query += fmt.Sprintf("&h=%d", height)
	}

	return fmt.Sprintf("https://%s/%s?%s", p.Host, target, query)
}

func stripQuery(imageURL string) string {
	if idx := strings.IndexAny(imageURL, "?#"); idx != -1 {
		return imageURL[:idx]
	}
	return imageURL
}
