package assessment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuel/fed-rfq/internal/models"
)

// stubCompleter returns a canned JSON reply per analysis, keyed on a phrase
// from the prompt.
type stubCompleter struct {
	calls   atomic.Int32
	failOn  string
	replies map[string]string
}

func (s *stubCompleter) GenerateCompletion(_ context.Context, prompt string, _ bool) (string, error) {
	s.calls.Add(1)
	for key, reply := range s.replies {
		if strings.Contains(prompt, key) {
			if s.failOn == key {
				return "", errors.New("model unavailable")
			}
			return reply, nil
		}
	}
	return "", errors.New("unexpected prompt")
}

func newStub() *stubCompleter {
	return &stubCompleter{replies: map[string]string{
		"STRUCTURE":       `{"score": 90, "passed": true, "critical_issues": []}`,
		"FAIRNESS":        `{"bias_score": 85, "potential_issues": []}`,
		"COMPLIANCE":      `{"compliance_score": 85, "regulatory_gaps": []}`,
		"CONTENT QUALITY": `{"quality_score": 85, "suggestions": ["tighten the scope statement"]}`,
	}}
}

func testRFQ() models.RFQ {
	return models.RFQ{
		Title:        "RFQ: Help Desk Support Services",
		Scope:        "Provide tier 1 and tier 2 help desk support for 500 users.",
		Instructions: "Submit quotes by email before the due date.",
	}
}

func TestAssessRFQ_RunsAllFourAndAggregates(t *testing.T) {
	stub := newStub()

	got, err := AssessRFQ(context.Background(), stub, testRFQ())
	require.NoError(t, err)
	require.Equal(t, int32(4), stub.calls.Load())
	require.Equal(t, 87, got.OverallScore)
	require.Equal(t, ReadinessGood, got.ReadinessLevel)
}

func TestAssessRFQ_AnyFailureFailsTheAssessment(t *testing.T) {
	for _, failOn := range []string{"STRUCTURE", "FAIRNESS", "COMPLIANCE", "CONTENT QUALITY"} {
		stub := newStub()
		stub.failOn = failOn

		_, err := AssessRFQ(context.Background(), stub, testRFQ())
		require.ErrorIs(t, err, ErrMissingAssessment, "failing analysis: %s", failOn)
	}
}

func TestAssessRFQ_ToleratesFencedJSON(t *testing.T) {
	stub := newStub()
	stub.replies["STRUCTURE"] = "```json\n{\"score\": 90, \"passed\": true, \"critical_issues\": []}\n```"

	got, err := AssessRFQ(context.Background(), stub, testRFQ())
	require.NoError(t, err)
	require.Equal(t, 87, got.OverallScore)
}
