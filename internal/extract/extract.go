// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract transforms raw citation XML into normalized Records.
package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// missingTitle is substituted when a citation carries no ArticleTitle.
const missingTitle = "No Title Found"

// Extract parses doc and returns one Record per article, in document order.
// Absent fields degrade per record: a missing title becomes the placeholder
// and missing author data yields empty lists. Only an unparseable document
// is an error; there is no partial result to offer in that case.
func Extract(doc types.RawDocument) ([]types.Record, error) {
	root, err := ParseTree(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing citation document: %w", err)
	}

	articles := root.Child("PubmedArticleSet").ChildList("PubmedArticle")
	records := make([]types.Record, 0, len(articles))
	for _, article := range articles {
		records = append(records, extractArticle(article))
	}
	return records, nil
}

// repeatedChildren returns the children of n named name only when the
// element actually repeats. A lone occurrence is a single object, not a
// one-element list, so a sole Author contributes neither authors nor
// affiliations while the article list above is always normalized. The
// asymmetry is intentional and kept for output compatibility.
func repeatedChildren(n *Node, name string) []*Node {
	kids := n.ChildList(name)
	if len(kids) < 2 {
		return nil
	}
	return kids
}

func extractArticle(article *Node) types.Record {
	info := article.Child("MedlineCitation").Child("Article")

	rec := types.Record{
		Title:        missingTitle,
		Authors:      []string{},
		Affiliations: []string{},
	}

	if t := info.Child("ArticleTitle"); t != nil {
		rec.Title = t.Text
	}

	authorList := info.Child("AuthorList")

	for _, a := range repeatedChildren(authorList, "Author") {
		full := strings.TrimSpace(a.Child("ForeName").Value() + " " + a.Child("LastName").Value())
		if full != "" {
			rec.Authors = append(rec.Authors, full)
		}
	}

	// Affiliations are pooled across the article in a second pass over the
	// same authors; the per-author link is deliberately not kept and
	// duplicates are preserved.
	for _, a := range repeatedChildren(authorList, "Author") {
		for _, ai := range repeatedChildren(a, "AffiliationInfo") {
			if aff := ai.Child("Affiliation"); aff != nil {
				rec.Affiliations = append(rec.Affiliations, aff.Text)
			}
		}
	}

	return rec
}
