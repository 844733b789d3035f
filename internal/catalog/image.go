package catalog

import (
	"net/url"
	"sort"
	"strings"
)

// IsValidImageUrl accepts absolute URLs and paths rooted at "/", "./" or "../".
// Empty values and the literals "null" and "undefined" are rejected.
func IsValidImageUrl(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "undefined" {
		return false
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// SanitizeImageURL returns the trimmed URL, or "" when it fails screening.
func SanitizeImageURL(raw *string) string {
	if raw == nil || !IsValidImageUrl(*raw) {
		return ""
	}
	return strings.TrimSpace(*raw)
}

// ValidImages orders photo rows by urutan, screens every URL and drops
// duplicates. URLs listed in skip are treated as already seen.
func ValidImages(photos []Photo, skip ...string) []string {
	sorted := make([]Photo, len(photos))
	copy(sorted, photos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return orderOf(sorted[i]) < orderOf(sorted[j])
	})

	seen := make(map[string]struct{}, len(sorted)+len(skip))
	for _, s := range skip {
		if s != "" {
			seen[s] = struct{}{}
		}
	}
	images := make([]string, 0, len(sorted))
	for _, p := range sorted {
		u := SanitizeImageURL(p.URL)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		images = append(images, u)
	}
	return images
}

func orderOf(p Photo) int {
	if p.Order == nil {
		return 0
	}
	return *p.Order
}
