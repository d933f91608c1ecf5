// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the claimchat client.
// Implements: prd002-paper-search (Paper, SearchMeta, SearchFilters);
//
//	prd003-claim-verification (Verification, PaperAnalysis);
//	prd001-transcript-store (Message, Transcript).
//
// See docs/ARCHITECTURE § Data Structures.
package types

// PaperSource identifies which index the backend retrieved a paper from.
type PaperSource string

const (
	SourceArxiv   PaperSource = "arxiv"
	SourceNASAADS PaperSource = "nasa-ads"
)

// Paper is a retrieved document used as evidence for or against a claim.
// The backend owns ranking; Relevance is used purely for display tiering
// and carries no ordering guarantee beyond the order sources arrive in.
type Paper struct {
	// Title is the paper title as returned by the backend.
	Title string `json:"title" yaml:"title"`

	// Authors is the author list, pre-formatted by the backend.
	Authors string `json:"authors" yaml:"authors"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Journal is the publication venue; empty for preprints.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Source identifies the originating index ("arxiv", "nasa-ads").
	Source PaperSource `json:"source" yaml:"source"`

	// Relevance is the backend's relevance score on a 0-10 scale.
	Relevance float64 `json:"relevance" yaml:"relevance"`

	// Abstract is the paper abstract or summary, when available.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// URL links to the paper's landing page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// PaperID is the canonical identifier at the source (arXiv ID, bibcode).
	PaperID string `json:"paperId,omitempty" yaml:"paper_id,omitempty"`
}

// SearchMeta carries the classification and performance metadata the
// backend returns alongside a paper search.
type SearchMeta struct {
	// Domain is the broad research domain the claim was classified into.
	Domain string `json:"domain" yaml:"domain"`

	// Topic and Subtopic narrow the classification; free text.
	Topic    string `json:"topic" yaml:"topic"`
	Subtopic string `json:"subtopic" yaml:"subtopic"`

	// TotalSources is the total number of matching papers at the backend.
	TotalSources int `json:"totalSources" yaml:"total_sources"`

	// QueryTime is the backend query duration in milliseconds.
	QueryTime int64 `json:"queryTime" yaml:"query_time"`
}

// SearchFilters narrows a paper search. Zero-valued fields are omitted
// from the request; the backend applies its own defaults. The recognized
// vocabulary comes from GET /api/filters.
type SearchFilters struct {
	YearMin      int         `json:"yearMin,omitempty" yaml:"year_min,omitempty"`
	YearMax      int         `json:"yearMax,omitempty" yaml:"year_max,omitempty"`
	Topic        string      `json:"topic,omitempty" yaml:"topic,omitempty"`
	Subtopic     string      `json:"subtopic,omitempty" yaml:"subtopic,omitempty"`
	Source       PaperSource `json:"source,omitempty" yaml:"source,omitempty"`
	MinRelevance float64     `json:"minRelevance,omitempty" yaml:"min_relevance,omitempty"`
}

// FilterVocabulary is the set of filter options the backend advertises
// via GET /api/filters.
type FilterVocabulary struct {
	Topics    []string            `json:"topics" yaml:"topics"`
	Subtopics map[string][]string `json:"subtopics" yaml:"subtopics"`
	YearMin   int                 `json:"yearMin" yaml:"year_min"`
	YearMax   int                 `json:"yearMax" yaml:"year_max"`
	Sources   []PaperSource       `json:"sources" yaml:"sources"`
}
