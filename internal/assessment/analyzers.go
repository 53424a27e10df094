package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samuel/fed-rfq/internal/ai"
	"github.com/samuel/fed-rfq/internal/models"
)

// Completer is the slice of the LLM client the analyzers need. Injected
// explicitly so tests can substitute canned replies.
type Completer interface {
	GenerateCompletion(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

func rfqText(rfq models.RFQ) string {
	return fmt.Sprintf("TITLE: %s\n\nSCOPE OF WORK:\n%s\n\nINSTRUCTIONS TO SUPPLIERS:\n%s", rfq.Title, rfq.Scope, rfq.Instructions)
}

// AnalyzeStructure validates that the RFQ has the sections and structure
// suppliers and automated tooling need.
func AnalyzeStructure(ctx context.Context, client Completer, rfq models.RFQ) (*StructuralValidation, error) {
	prompt := fmt.Sprintf(`You are a federal contracting document reviewer. Validate the STRUCTURE of the following request for quotation.

%s

Check for: a clear title, a scope of work with concrete deliverables, submission instructions, a response deadline reference, and evaluation criteria.

Return a JSON object:
{
  "score": 0-100,
  "passed": boolean,
  "critical_issues": [{"severity": "critical" | "high" | "medium" | "low", "message": "string"}]
}

Mark an issue "critical" only when it would prevent a supplier from quoting at all. RESPOND ONLY WITH JSON.`, rfqText(rfq))

	reply, err := client.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		return nil, fmt.Errorf("structural analysis failed: %w", err)
	}

	var result StructuralValidation
	if err := json.Unmarshal([]byte(ai.CleanJSONReply(reply)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse structural analysis: %w. Response: %s", err, reply)
	}
	return &result, nil
}

// AnalyzeFairness reviews the RFQ for biased, exclusionary or vendor-steering
// language.
func AnalyzeFairness(ctx context.Context, client Completer, rfq models.RFQ) (*FairnessReview, error) {
	prompt := fmt.Sprintf(`You are a federal competition advocate. Review the following request for quotation for FAIRNESS: vendor-specific requirements, brand-name steering, unnecessarily restrictive qualifications, or exclusionary language.

%s

Return a JSON object:
{
  "bias_score": 0-100,
  "potential_issues": [{"severity": "high" | "medium" | "low", "message": "string"}]
}

bias_score is 100 for fully open and neutral language. Use severity "high" only for issues likely to sustain a protest. RESPOND ONLY WITH JSON.`, rfqText(rfq))

	reply, err := client.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		return nil, fmt.Errorf("fairness analysis failed: %w", err)
	}

	var result FairnessReview
	if err := json.Unmarshal([]byte(ai.CleanJSONReply(reply)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse fairness analysis: %w. Response: %s", err, reply)
	}
	return &result, nil
}

// AnalyzeCompliance checks the RFQ against baseline FAR requirements.
func AnalyzeCompliance(ctx context.Context, client Completer, rfq models.RFQ) (*ComplianceCheck, error) {
	prompt := fmt.Sprintf(`You are a federal acquisition regulation (FAR) reviewer. Check the following request for quotation for COMPLIANCE gaps: missing required clauses, set-aside statements, payment terms, or submission requirements.

%s

Return a JSON object:
{
  "compliance_score": 0-100,
  "regulatory_gaps": ["string"]
}

List a gap only when a required element is absent, not merely imperfect. RESPOND ONLY WITH JSON.`, rfqText(rfq))

	reply, err := client.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		return nil, fmt.Errorf("compliance analysis failed: %w", err)
	}

	var result ComplianceCheck
	if err := json.Unmarshal([]byte(ai.CleanJSONReply(reply)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse compliance analysis: %w. Response: %s", err, reply)
	}
	return &result, nil
}

// AnalyzeQuality reviews writing quality: clarity, specificity, completeness.
func AnalyzeQuality(ctx context.Context, client Completer, rfq models.RFQ) (*QualityReview, error) {
	prompt := fmt.Sprintf(`You are a procurement writing coach. Review the CONTENT QUALITY of the following request for quotation: clarity of scope, measurable deliverables, unambiguous evaluation criteria.

%s

Return a JSON object:
{
  "quality_score": 0-100,
  "suggestions": ["string"]
}

Keep suggestions short and actionable. RESPOND ONLY WITH JSON.`, rfqText(rfq))

	reply, err := client.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		return nil, fmt.Errorf("quality analysis failed: %w", err)
	}

	var result QualityReview
	if err := json.Unmarshal([]byte(ai.CleanJSONReply(reply)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse quality analysis: %w. Response: %s", err, reply)
	}
	return &result, nil
}
