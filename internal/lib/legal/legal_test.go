package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsRegisteredDocuments(t *testing.T) {
	for _, slug := range []string{"terms", "privacy"} {
		doc, ok := Get(slug)
		require.True(t, ok, slug)
		assert.Equal(t, slug, doc.Slug)
		assert.NotEmpty(t, doc.Title)
		assert.NotEmpty(t, doc.Version)
		assert.NotEmpty(t, doc.UpdatedAt)
		assert.NotEmpty(t, doc.Sections)

		for _, section := range doc.Sections {
			assert.NotEmpty(t, section.Heading)
			assert.NotEmpty(t, section.Body)
		}
	}
}

func TestGetUnknownSlug(t *testing.T) {
	doc, ok := Get("cookie-policy")
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestSlugsSorted(t *testing.T) {
	assert.Equal(t, []string{"privacy", "terms"}, Slugs())
}
