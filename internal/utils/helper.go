package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses an id submitted by a client, ignoring surrounding space.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// SlugSuffix marks every generated project slug.
const SlugSuffix = "-supabase-clone"

var (
	nonSlug      = regexp.MustCompile(`[^a-z0-9]+`)
	slugFinished = regexp.MustCompile(`(^|-)` + regexp.QuoteMeta(strings.TrimPrefix(SlugSuffix, "-")) + `(-\d+)?$`)
)

// GenerateSlug lowercases name, turns every run of characters outside
// [a-z0-9] into a single '-' and appends SlugSuffix, so the result is safe
// as a URL path segment. A slug this function already produced, including a
// disambiguated one such as "shop-supabase-clone-2", is returned unchanged.
func GenerateSlug(name string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slugFinished.MatchString(slug) {
		return slug
	}
	if slug == "" {
		return strings.TrimPrefix(SlugSuffix, "-")
	}
	return slug + SlugSuffix
}

// NthSlug returns the candidate slug tried on the n-th collision; n = 0 is
// the base itself.
func NthSlug(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// GenerateAPIKey returns 32 random bytes hex encoded.
func GenerateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
