package media

import (
	"path"
	"strings"
)

// PublicIDFromURL recovers the host identifier of a delivered asset, e.g.
// https://res.cloudinary.com/demo/image/upload/v1712/motivari-scolare/abc.jpg
// becomes motivari-scolare/abc. Unrecognized URLs yield "".
func PublicIDFromURL(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok || rest == "" {
		return ""
	}
	rest, _, _ = strings.Cut(rest, "?")

	segments := strings.Split(rest, "/")
	if first := segments[0]; isVersion(first) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return ""
	}

	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
