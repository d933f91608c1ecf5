// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"fmt"

	"github.com/pdiddy/claimchat/internal/httputil"
	"github.com/pdiddy/claimchat/pkg/types"
)

// Filters fetches the filter vocabulary the backend advertises (topics,
// subtopics, year range, sources). Unlike Search and Verify this is a
// CLI-surface convenience, so it returns a plain error.
func (c *Client) Filters(ctx context.Context) (types.FilterVocabulary, error) {
	var vocab types.FilterVocabulary
	if err := httputil.GetJSON(ctx, c.httpClient, c.url(filtersPath), c.userAgent, c.apiKey, &vocab); err != nil {
		return types.FilterVocabulary{}, fmt.Errorf("fetching filters: %w", err)
	}
	return vocab, nil
}
