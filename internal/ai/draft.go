package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samuel/fed-rfq/internal/models"
)

// RFQDraft is the structured output of a drafting call.
type RFQDraft struct {
	Title        string `json:"title"`
	Scope        string `json:"scope"`
	Instructions string `json:"instructions"`
}

// DraftRFQ asks the model to draft RFQ scope and instructions from an
// opportunity notice. The caller reviews and edits before publishing; this is
// a starting point, never a final document.
func (c *OllamaClient) DraftRFQ(ctx context.Context, opp models.Opportunity) (*RFQDraft, error) {
	setAside := opp.SetAside
	if setAside == "" {
		setAside = "none (open competition)"
	}

	prompt := fmt.Sprintf(`You are a federal contracting officer's assistant. Draft a request for quotation (RFQ) from the following procurement opportunity notice.

OPPORTUNITY TITLE: %s
AGENCY: %s
NAICS CODE: %s
SET-ASIDE: %s
CONTRACT TYPE: %s
DESCRIPTION:
%s

Return a JSON object:
{
  "title": "RFQ: <concise title>",
  "scope": "scope of work with numbered deliverables",
  "instructions": "submission instructions for suppliers"
}

Rules:
1. The scope must only contain work supported by the description. Do not invent requirements.
2. Reference the set-aside in the instructions when one applies.
3. RESPOND ONLY WITH JSON.`, opp.Title, opp.AgencyName, opp.NaicsCode, setAside, opp.ContractType, opp.Description)

	reply, err := c.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var draft RFQDraft
	if err := json.Unmarshal([]byte(CleanJSONReply(reply)), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse RFQ draft json: %w. Response: %s", err, reply)
	}

	if draft.Title == "" {
		draft.Title = "RFQ: " + opp.Title
	}

	return &draft, nil
}
