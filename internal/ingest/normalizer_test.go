package ingest

import (
	"testing"
	"time"

	"github.com/samuel/fed-rfq/internal/models"
)

func TestHTMLToText(t *testing.T) {
	in := "<div><p>IT  support\nservices</p><script>alert(1)</script><style>p{color:red}</style></div>"
	if got := HTMLToText(in); got != "IT support services" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestNormalizeSetAside(t *testing.T) {
	cases := map[string]string{
		"Total Small Business Set-Aside":           models.SetAsideSmallBiz,
		"Service-Disabled Veteran-Owned SB":        models.SetAsideVeteranOwned,
		"Women-Owned Small Business (WOSB)":        models.SetAsideWomanOwned,
		"HUBZone Set-Aside":                        models.SetAsideHUBZone,
		"8(a) Sole Source":                         models.SetAside8a,
		"None":                                     models.SetAsideNone,
		"":                                         models.SetAsideNone,
		"Full and Open Competition":                models.SetAsideNone,
	}
	for raw, want := range cases {
		if got := NormalizeSetAside(raw); got != want {
			t.Errorf("NormalizeSetAside(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeContractType(t *testing.T) {
	cases := map[string]string{
		"Firm Fixed Price":   models.ContractFixedPrice,
		"Time and Materials": models.ContractTimeAndMaterials,
		"CPFF":               models.ContractCostPlus,
		"IDIQ vehicle":       models.ContractIDIQ,
		"unspecified":        models.ContractFixedPrice,
	}
	for raw, want := range cases {
		if got := NormalizeContractType(raw); got != want {
			t.Errorf("NormalizeContractType(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseEstimatedValue(t *testing.T) {
	cases := map[string]float64{
		"$1,200,000": 1200000,
		"1.2M":       1200000,
		"250k":       250000,
		"USD 75000":  75000,
		"":           0,
		"TBD":        0,
		"-500":       0,
	}
	for raw, want := range cases {
		if got := ParseEstimatedValue(raw); got != want {
			t.Errorf("ParseEstimatedValue(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestFromRaw(t *testing.T) {
	deadline := time.Now().UTC().Add(30 * 24 * time.Hour).Format("2006-01-02")
	raw := RawNotice{
		Title:           "  <b>Cloud   Migration</b> Services ",
		Description:     "<p>Migrate legacy systems to cloud.</p>",
		ExternalURL:     "https://www.sam.gov/opp/abc123/view",
		SourceID:        "abc123",
		NaicsCode:       "541511",
		SetAsideRaw:     "Total Small Business",
		ContractTypeRaw: "Firm Fixed Price",
		DeadlineRaw:     deadline,
		SourceStatusRaw: "posted",
	}

	opp := FromRaw(raw)

	if opp.Title != "Cloud Migration Services" {
		t.Errorf("title not cleaned: %q", opp.Title)
	}
	if opp.Description != "Migrate legacy systems to cloud." {
		t.Errorf("description not sanitized: %q", opp.Description)
	}
	if opp.SetAside != models.SetAsideSmallBiz {
		t.Errorf("set-aside = %q", opp.SetAside)
	}
	if opp.ContractType != models.ContractFixedPrice {
		t.Errorf("contract type = %q", opp.ContractType)
	}
	if opp.SourceDomain != "sam.gov" {
		t.Errorf("source domain = %q", opp.SourceDomain)
	}
	if opp.ResponseDeadline == nil {
		t.Fatal("deadline not parsed")
	}
	if opp.Status != models.StatusActive {
		t.Errorf("status = %q, want active", opp.Status)
	}
}
