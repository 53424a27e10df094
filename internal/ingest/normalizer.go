package ingest

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/samuel/fed-rfq/internal/models"
)

var htmlSanitizer = bluemonday.StrictPolicy()

// HTMLToText converts HTML to plain text, collapsing whitespace. Script and
// style bodies are dropped, not flattened into the text.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html // Fallback to original if parsing fails
	}
	doc.Find("script, style, noscript").Remove()
	return cleanText(doc.Text())
}

// cleanText collapses runs of whitespace and trims the string.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// TruncateText cuts a string to max length, appending ellipsis if truncated.
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen > 3 {
		return text[:maxLen-3] + "..."
	}
	return text[:maxLen]
}

// set-aside synonyms as they appear on notices, mapped to canonical codes.
var setAsideAliases = map[string]string{
	"total small business":         models.SetAsideSmallBiz,
	"small business set-aside":     models.SetAsideSmallBiz,
	"sba":                          models.SetAsideSmallBiz,
	"service-disabled veteran":     models.SetAsideVeteranOwned,
	"sdvosb":                       models.SetAsideVeteranOwned,
	"sdvosbc":                      models.SetAsideVeteranOwned,
	"women-owned small business":   models.SetAsideWomanOwned,
	"woman owned":                  models.SetAsideWomanOwned,
	"wosb":                         models.SetAsideWomanOwned,
	"hubzone":                      models.SetAsideHUBZone,
	"8(a)":                         models.SetAside8a,
	"8a":                           models.SetAside8a,
}

// NormalizeSetAside maps a raw set-aside string to a canonical code. Unknown
// values come back empty, which reads as open competition downstream.
func NormalizeSetAside(raw string) string {
	raw = strings.ToLower(cleanText(raw))
	if raw == "" || raw == "none" || raw == "n/a" {
		return models.SetAsideNone
	}
	for alias, code := range setAsideAliases {
		if strings.Contains(raw, alias) {
			return code
		}
	}
	return models.SetAsideNone
}

var contractTypeAliases = map[string]string{
	"firm fixed price":    models.ContractFixedPrice,
	"firm-fixed-price":    models.ContractFixedPrice,
	"ffp":                 models.ContractFixedPrice,
	"cost plus":           models.ContractCostPlus,
	"cost-plus":           models.ContractCostPlus,
	"cpff":                models.ContractCostPlus,
	"time and materials":  models.ContractTimeAndMaterials,
	"time & materials":    models.ContractTimeAndMaterials,
	"t&m":                 models.ContractTimeAndMaterials,
	"idiq":                models.ContractIDIQ,
	"indefinite delivery": models.ContractIDIQ,
}

// NormalizeContractType maps raw contract-type text to a canonical code,
// defaulting to FFP when nothing matches.
func NormalizeContractType(raw string) string {
	raw = strings.ToLower(cleanText(raw))
	for alias, code := range contractTypeAliases {
		if strings.Contains(raw, alias) {
			return code
		}
	}
	return models.ContractFixedPrice
}

// ParseEstimatedValue parses dollar amounts like "$1,200,000", "1.2M" or
// "250k" into whole dollars. Returns 0 when nothing parseable is found.
func ParseEstimatedValue(raw string) float64 {
	raw = strings.ToLower(cleanText(raw))
	if raw == "" {
		return 0
	}

	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, "usd", "")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)

	multiplier := 1.0
	switch {
	case strings.HasSuffix(raw, "m") || strings.HasSuffix(raw, "million"):
		multiplier = 1_000_000
		raw = strings.TrimSuffix(strings.TrimSuffix(raw, "million"), "m")
	case strings.HasSuffix(raw, "k"):
		multiplier = 1_000
		raw = strings.TrimSuffix(raw, "k")
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || val < 0 {
		return 0
	}
	return val * multiplier
}

func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"01/02/2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, raw); err == nil {
			tu := t.UTC()
			return &tu
		}
	}
	return nil
}

// FromRaw converts a RawNotice into a canonical Opportunity. Text fields are
// stripped of HTML and invalid UTF-8; classification fields are normalized to
// canonical codes; the status engine runs last.
func FromRaw(raw RawNotice) models.Opportunity {
	opp := models.Opportunity{
		Title:              sanitizeUTF8(HTMLToText(raw.Title)),
		Description:        HTMLToText(htmlSanitizer.Sanitize(sanitizeUTF8(raw.Description))),
		SolicitationNumber: cleanText(raw.SolicitationNumber),
		AgencyName:         cleanText(raw.AgencyName),
		AgencyCode:         cleanText(raw.AgencyCode),
		NaicsCode:          cleanText(raw.NaicsCode),
		SetAside:           NormalizeSetAside(raw.SetAsideRaw),
		ContractType:       NormalizeContractType(raw.ContractTypeRaw),
		EstimatedValue:     ParseEstimatedValue(raw.EstimatedValueRaw),
		SourceDomain:       raw.SourceDomain,
		SourceID:           raw.SourceID,
		ExternalURL:        raw.ExternalURL,
		AttachmentURLs:     raw.AttachmentURLs,
		ResponseDeadline:   parseTimestamp(raw.DeadlineRaw),
		PostedAt:           parseTimestamp(raw.PostedRaw),
	}

	if opp.ResponseDeadline == nil {
		for _, candidate := range raw.DeadlineCandidates {
			if t := parseTimestamp(candidate); t != nil {
				opp.ResponseDeadline = t
				break
			}
		}
	}

	if opp.SourceDomain == "" {
		opp.SourceDomain = extractDomain(raw.ExternalURL)
	}

	decision := ComputeStatusDecision(opp, raw.SourceStatusRaw, time.Now().UTC())
	opp.Status = decision.Status
	opp.StatusReason = decision.Reason

	return opp
}
