package httpds

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// filenameCleaner collapses runs of characters that are awkward in file names.
var filenameCleaner = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// HashString returns a short stable hex digest of s.
func HashString(s string) string {
	return strconv.FormatUint(xxh3.HashString(s), 16)
}

// BaseName derives a file-system-safe stem from a URL: the last path segment
// without its extension. URLs with no usable segment fall back to a hash of
// the whole URL.
func BaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return HashString(rawURL)
	}
	seg := path.Base(u.Path)
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	seg = strings.Trim(filenameCleaner.ReplaceAllString(seg, "_"), "_.")
	if seg == "" {
		return HashString(rawURL)
	}
	return seg
}
