// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stance classifies a paper's position relative to a claim.
// Per prd003-claim-verification R2.3.
type Stance string

const (
	StanceSupports    Stance = "supports"
	StanceContradicts Stance = "contradicts"
	StanceNeutral     Stance = "neutral"
)

// PaperAnalysis is the AI's per-paper judgment within a verification pass.
type PaperAnalysis struct {
	// PaperTitle and PaperYear identify the analyzed paper.
	PaperTitle string `json:"paperTitle" yaml:"paper_title"`
	PaperYear  int    `json:"paperYear,omitempty" yaml:"paper_year,omitempty"`

	// RelevanceScore is the paper's relevance to the claim (0-10 scale).
	RelevanceScore float64 `json:"relevanceScore" yaml:"relevance_score"`

	// Stance is the paper's position: supports, contradicts, or neutral.
	Stance Stance `json:"stance" yaml:"stance"`

	// Confidence is the AI's confidence in this analysis (0-100).
	Confidence int `json:"confidence" yaml:"confidence"`

	// Evidence quotes or paraphrases the supporting passage.
	Evidence string `json:"evidence" yaml:"evidence"`

	// Reasoning explains how the evidence bears on the claim.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}

// Verification is the AI-produced scored judgment of how well a set of
// papers supports or contradicts a claim. The backend bounds Analyses to
// the maxPapers requested by the caller.
type Verification struct {
	// VerificationScore is the overall support score (0-100).
	VerificationScore int `json:"verificationScore" yaml:"verification_score"`

	// Verdict is a free-text classification (e.g. "Strongly Supported").
	Verdict string `json:"verdict" yaml:"verdict"`

	// Confidence is a free-text confidence level (e.g. "High").
	Confidence string `json:"confidence" yaml:"confidence"`

	// Summary is a prose summary of the verification outcome.
	Summary string `json:"summary" yaml:"summary"`

	// KeyFindings lists the most important findings, in backend order.
	KeyFindings []string `json:"keyFindings" yaml:"key_findings"`

	// Limitations notes caveats about the analysis, when any.
	Limitations string `json:"limitations,omitempty" yaml:"limitations,omitempty"`

	// Analyses holds the per-paper judgments; len(Analyses) <= maxPapers.
	Analyses []PaperAnalysis `json:"analyses" yaml:"analyses"`

	// PapersAnalyzed is the number of papers the backend actually analyzed.
	PapersAnalyzed int `json:"papersAnalyzed,omitempty" yaml:"papers_analyzed,omitempty"`

	// ProcessingTimeMs is the backend analysis duration in milliseconds.
	ProcessingTimeMs int64 `json:"processingTimeMs,omitempty" yaml:"processing_time_ms,omitempty"`
}
