package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// ExtractedNotice represents the structured output the LLM pulls from an
// unstructured procurement notice page.
type ExtractedNotice struct {
	SolicitationNumber string   `json:"solicitation_number"`
	AgencyName         string   `json:"agency_name"`
	NaicsCode          string   `json:"naics_code"`
	SetAside           string   `json:"set_aside"` // SBA, SDVOSB, WOSB, HUBZone, 8A or ""
	ContractType       string   `json:"contract_type"`
	EstimatedValue     float64  `json:"estimated_value"`
	DeadlineISO        string   `json:"deadline_iso"`
	PostedISO          string   `json:"posted_iso"`
	DeadlineCandidates []string `json:"deadline_candidates"`
	Summary            string   `json:"summary"`
}

// ExtractNoticeData uses the LLM to pull structured procurement fields from
// page text. JSON mode first; plain text with robust object extraction as a
// fallback, since some models drift even when asked for JSON.
func (c *OllamaClient) ExtractNoticeData(ctx context.Context, title, url, text string) (*ExtractedNotice, error) {
	prompt := fmt.Sprintf(`You are a federal procurement analyst. Extract key information from the following contract opportunity text into JSON format.

Input:
Title: %s
URL: %s
Text:
%s

Instructions:
1. solicitation_number: the RFQ/RFP/solicitation number exactly as written, or null.
2. naics_code: the 6-digit NAICS code if stated, else null.
3. set_aside: one of "SBA", "SDVOSB", "WOSB", "HUBZone", "8A" when the notice restricts competition, else null.
4. contract_type: one of "FFP", "CPFF", "T&M", "IDIQ" when stated, else null.
5. estimated_value: the estimated contract value in whole US dollars (numeric), 0 if not stated.
6. deadline_iso: the response deadline (ISO 8601 YYYY-MM-DD) if a main deadline is obvious.
7. deadline_candidates: all dates that could be response deadlines (ISO 8601 YYYY-MM-DD).
8. summary: a 1-2 sentence neutral summary of the requirement.

JSON Schema:
{
	"solicitation_number": "string or null",
	"agency_name": "string or null",
	"naics_code": "string or null",
	"set_aside": "SBA" | "SDVOSB" | "WOSB" | "HUBZone" | "8A" | null,
	"contract_type": "FFP" | "CPFF" | "T&M" | "IDIQ" | null,
	"estimated_value": number,
	"deadline_iso": "YYYY-MM-DD or null",
	"posted_iso": "YYYY-MM-DD or null",
	"deadline_candidates": ["YYYY-MM-DD"],
	"summary": "string"
}

Respond ONLY with the JSON object.`, title, url, text)

	// Attempt 1: JSON mode
	reply, err := c.GenerateCompletion(ctx, prompt, true)
	if err == nil {
		if data, parseErr := parseNoticeReply(reply); parseErr == nil {
			return data, nil
		} else {
			log.Printf("JSON mode failed parsing: %v. Retrying with text mode...", parseErr)
		}
	} else {
		log.Printf("JSON mode generation failed: %v. Retrying with text mode...", err)
	}

	// Attempt 2: text mode with robust extraction
	reply, err = c.GenerateCompletion(ctx, prompt, false)
	if err != nil {
		return nil, err
	}

	data, err := parseNoticeReply(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM JSON after retry: %w (response: %s)", err, reply)
	}

	return data, nil
}

func parseNoticeReply(reply string) (*ExtractedNotice, error) {
	var data ExtractedNotice
	if err := json.Unmarshal([]byte(CleanJSONReply(reply)), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
