package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single word", input: "Shop", expected: "shop-supabase-clone"},
		{name: "spaces", input: "My  Cool\tShop", expected: "my-cool-shop-supabase-clone"},
		{name: "surrounding space", input: "  Shop  ", expected: "shop-supabase-clone"},
		{name: "already a slug", input: "shop-supabase-clone", expected: "shop-supabase-clone"},
		{name: "already suffixed", input: "shop-supabase-clone-3", expected: "shop-supabase-clone-3"},
		{name: "slash", input: "Sales/Ops", expected: "sales-ops-supabase-clone"},
		{name: "punctuation runs", input: "R&D -- Q3 (EU)!", expected: "r-d-q3-eu-supabase-clone"},
		{name: "query characters", input: "a?b#c%d", expected: "a-b-c-d-supabase-clone"},
		{name: "non ascii", input: "Café Crème", expected: "caf-cr-me-supabase-clone"},
		{name: "only symbols", input: "///", expected: "supabase-clone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlug_Idempotent(t *testing.T) {
	for _, name := range []string{"Shop", "Big Data Lake", "a b c", "x", "Sales/Ops", "R&D -- Q3", "///"} {
		base := GenerateSlug(name)
		assert.Equal(t, base, GenerateSlug(base))
		for n := 1; n < 4; n++ {
			suffixed := NthSlug(base, n)
			assert.Equal(t, suffixed, GenerateSlug(suffixed))
		}
	}
}

func TestGenerateSlug_URLSafe(t *testing.T) {
	for _, name := range []string{"Sales/Ops", "a b/c?d#e", "100% <done>", "Ünïcødé", "--x--"} {
		slug := GenerateSlug(name)
		assert.Regexp(t, `^[a-z0-9]+(-[a-z0-9]+)*$`, slug, name)
		assert.Equal(t, slug, url.PathEscape(slug), name)
	}
}

func TestNthSlug(t *testing.T) {
	assert.Equal(t, "shop-supabase-clone", NthSlug("shop-supabase-clone", 0))
	assert.Equal(t, "shop-supabase-clone-1", NthSlug("shop-supabase-clone", 1))
	assert.Equal(t, "shop-supabase-clone-12", NthSlug("shop-supabase-clone", 12))
}

func TestGenerateAPIKey(t *testing.T) {
	a, err := GenerateAPIKey()
	require.NoError(t, err)
	b, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("  6f1c2a3e-8b4d-4f2a-9c1e-0a2b3c4d5e6f ")
	require.NoError(t, err)
	assert.Equal(t, "6f1c2a3e-8b4d-4f2a-9c1e-0a2b3c4d5e6f", id.String())

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}
