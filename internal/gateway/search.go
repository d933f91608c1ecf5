// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"fmt"

	"github.com/pdiddy/claimchat/internal/httputil"
	"github.com/pdiddy/claimchat/pkg/types"
)

// SearchResult is the normalized outcome of a paper search. Exactly one
// of the two variants is populated: OK carries Sources and Meta, a
// failure carries Err.
type SearchResult struct {
	OK      bool
	Sources []types.Paper
	Meta    types.SearchMeta
	Err     string
}

// searchRequest is the POST /api/get-sources body.
type searchRequest struct {
	Claim   string              `json:"claim"`
	Filters types.SearchFilters `json:"filters"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

// searchResponse is the backend's success body: the paper list plus
// classification and timing metadata, flattened at the top level.
type searchResponse struct {
	Sources      []types.Paper `json:"sources"`
	Domain       string        `json:"domain"`
	Topic        string        `json:"topic"`
	Subtopic     string        `json:"subtopic"`
	TotalSources int           `json:"totalSources"`
	QueryTime    int64         `json:"queryTime"`
}

// Search posts the claim to the backend and returns the retrieved papers.
// The backend owns ranking and filtering; the client passes filters
// through untouched.
func (c *Client) Search(ctx context.Context, claim string, filters types.SearchFilters, limit, offset int) SearchResult {
	req := searchRequest{Claim: claim, Filters: filters, Limit: limit, Offset: offset}

	var resp searchResponse
	if err := httputil.PostJSON(ctx, c.httpClient, c.url(sourcesPath), c.userAgent, c.apiKey, req, &resp); err != nil {
		return SearchResult{Err: fmt.Sprintf("paper search failed: %v", err)}
	}

	return SearchResult{
		OK:      true,
		Sources: resp.Sources,
		Meta: types.SearchMeta{
			Domain:       resp.Domain,
			Topic:        resp.Topic,
			Subtopic:     resp.Subtopic,
			TotalSources: resp.TotalSources,
			QueryTime:    resp.QueryTime,
		},
	}
}
