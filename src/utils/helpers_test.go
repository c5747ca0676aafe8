package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"The Dark Knight", "the-dark-knight"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Action & Adventure!", "action-adventure"},
		{"snake_case_title", "snake-case-title"},
		{"--already-hyphened--", "already-hyphened"},
		{"Mission: Impossible 7", "mission-impossible-7"},
		{"100% Wolf", "100-wolf"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.title), "slug of %q", tc.title)
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	slug := GenerateSlug("Some Fancy Title!")
	assert.Equal(t, slug, GenerateSlug(slug))
}

func TestPaginate(t *testing.T) {
	p := Paginate(45, 2, 20)
	assert.Equal(t, int64(45), p["total"])
	assert.Equal(t, 2, p["page"])
	assert.Equal(t, 20, p["limit"])
	assert.Equal(t, 3, p["totalPages"])
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(0, 1, 20)
	assert.Equal(t, 0, p["totalPages"])
}

func TestPaginateExactBoundary(t *testing.T) {
	p := Paginate(40, 1, 20)
	assert.Equal(t, 2, p["totalPages"])
}
