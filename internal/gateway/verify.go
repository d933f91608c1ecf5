// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"fmt"

	"github.com/pdiddy/claimchat/internal/httputil"
	"github.com/pdiddy/claimchat/pkg/types"
)

// VerifyResult is the normalized outcome of a verification pass.
type VerifyResult struct {
	OK           bool
	Verification types.Verification
	Err          string
}

// verifyRequest is the POST /api/verify-claim body. The paper list is
// round-tripped as received from search; the backend selects the actual
// subset it analyzes, up to MaxPapers.
type verifyRequest struct {
	Claim     string        `json:"claim"`
	Papers    []types.Paper `json:"papers"`
	MaxPapers int           `json:"maxPapers"`
}

// Verify asks the backend to score how well papers support the claim.
func (c *Client) Verify(ctx context.Context, claim string, papers []types.Paper, maxPapers int) VerifyResult {
	req := verifyRequest{Claim: claim, Papers: papers, MaxPapers: maxPapers}

	var resp types.Verification
	if err := httputil.PostJSON(ctx, c.httpClient, c.url(verifyPath), c.userAgent, c.apiKey, req, &resp); err != nil {
		return VerifyResult{Err: fmt.Sprintf("claim verification failed: %v", err)}
	}

	return VerifyResult{OK: true, Verification: resp}
}
