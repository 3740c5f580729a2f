// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-fetcher pipeline.
package types

// RawDocument is the citation XML returned by one EFetch call. It covers
// every requested identifier and is consumed only by the extractor.
type RawDocument []byte

// Absent reports whether no document was retrieved.
func (d RawDocument) Absent() bool {
	return len(d) == 0
}

// Record is the normalized output unit for one article.
//
// Affiliations are pooled across all authors of the article; there is no
// per-author link and duplicates are kept. Authors and Affiliations are
// never nil so the JSON snapshot serializes empty fields as [].
type Record struct {
	// Title is the article title, or "No Title Found" when the citation
	// carries none.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names ("ForeName LastName") in citation order.
	Authors []string `json:"authors" yaml:"authors"`

	// Affiliations lists every affiliation string found across the
	// article's authors, in citation order.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`
}
