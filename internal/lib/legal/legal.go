// Package legal holds the versioned legal documents (terms of service,
// privacy policy) served by the public legal endpoint.
//
// Documents are structured as titled sections rather than opaque HTML so
// any front end can render them with its own styling. Content is compiled
// into the binary; publishing a new revision is a code change with a
// version bump.
package legal

import "sort"

// Section is one titled block of a legal document.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Document is a complete legal document identified by its URL slug.
type Document struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Version   string    `json:"version"`
	UpdatedAt string    `json:"updated_at"`
	Sections  []Section `json:"sections"`
}

// Get returns the document registered under slug, if any.
func Get(slug string) (*Document, bool) {
	doc, ok := documents[slug]
	if !ok {
		return nil, false
	}
	return doc, true
}

// Slugs returns the registered document slugs in sorted order.
func Slugs() []string {
	slugs := make([]string, 0, len(documents))
	for slug := range documents {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
