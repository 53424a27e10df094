package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// SAMGovStrategy pulls contract opportunities from the SAM.gov v2 search API.
type SAMGovStrategy struct{}

type samGovResponse struct {
	TotalRecords int            `json:"totalRecords"`
	Records      []samGovNotice `json:"opportunitiesData"`
}

type samGovNotice struct {
	NoticeID          string `json:"noticeId"`
	Title             string `json:"title"`
	SolicitationNum   string `json:"solicitationNumber"`
	FullParentPathNam string `json:"fullParentPathName"`
	Department        string `json:"department"`
	SubTier           string `json:"subTier"`
	PostedDate        string `json:"postedDate"`
	Type              string `json:"type"`
	BaseType          string `json:"baseType"`
	SetAside          string `json:"typeOfSetAsideDescription"`
	SetAsideCode      string `json:"typeOfSetAside"`
	ResponseDeadline  string `json:"responseDeadLine"`
	NaicsCode         string `json:"naicsCode"`
	Active            string `json:"active"`
	Description       string `json:"description"`
	UILink            string `json:"uiLink"`
	Award             *struct {
		Date   string `json:"date"`
		Amount string `json:"amount"`
	} `json:"award"`
	ResourceLinks []string `json:"resourceLinks"`
}

const samGovPageSize = 100

func (s *SAMGovStrategy) Run(ctx context.Context, config SourceConfig, pipeline *Pipeline) (IngestionStats, error) {
	stats := IngestionStats{}

	client := &http.Client{Timeout: time.Duration(config.Fetch.TimeoutSeconds) * time.Second}
	if config.Fetch.TimeoutSeconds == 0 {
		client.Timeout = 60 * time.Second
	}

	maxPages := config.MaxPages
	if maxPages == 0 {
		maxPages = 3
	}

	for page := 0; page < maxPages; page++ {
		records, total, err := s.fetchPage(ctx, client, config, page)
		if err != nil {
			return stats, fmt.Errorf("sam.gov page %d: %w", page, err)
		}

		stats.TotalFound += len(records)

		for _, rec := range records {
			raw := RawNotice{
				Title:              rec.Title,
				Description:        rec.Description,
				ExternalURL:        rec.UILink,
				SourceID:           rec.NoticeID,
				SourceDomain:       "sam.gov",
				SolicitationNumber: rec.SolicitationNum,
				AgencyName:         rec.Department,
				AgencyCode:         rec.SubTier,
				NaicsCode:          rec.NaicsCode,
				SetAsideRaw:        rec.SetAside,
				ContractTypeRaw:    rec.Type,
				DeadlineRaw:        rec.ResponseDeadline,
				PostedRaw:          rec.PostedDate,
				SourceStatusRaw:    rec.BaseType,
				AttachmentURLs:     rec.ResourceLinks,
			}
			if rec.Award != nil {
				raw.SourceStatusRaw = "award notice"
				raw.EstimatedValueRaw = rec.Award.Amount
			}
			if raw.SetAsideRaw == "" {
				raw.SetAsideRaw = rec.SetAsideCode
			}

			if err := pipeline.SaveRaw(ctx, raw); err != nil {
				log.Printf("[SAMGov] Failed to save %q: %v", rec.Title, err)
				stats.Errors++
			} else {
				stats.TotalSaved++
			}
		}

		if (page+1)*samGovPageSize >= total {
			break
		}
	}

	return stats, nil
}

func (s *SAMGovStrategy) fetchPage(ctx context.Context, client *http.Client, config SourceConfig, page int) ([]samGovNotice, int, error) {
	params := url.Values{}
	params.Set("api_key", config.APIKey)
	params.Set("limit", fmt.Sprint(samGovPageSize))
	params.Set("offset", fmt.Sprint(page*samGovPageSize))
	params.Set("ptype", "o,k") // solicitations and combined synopses
	if config.Keyword != "" {
		params.Set("title", config.Keyword)
	}
	// The API requires a posted-date window; default to the trailing year.
	now := time.Now().UTC()
	params.Set("postedFrom", now.AddDate(-1, 0, 0).Format("01/02/2006"))
	params.Set("postedTo", now.Format("01/02/2006"))

	reqURL := config.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("[SAMGov] Fetching page %d", page)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, 0, fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp samGovResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, 0, fmt.Errorf("decoding response: %w", err)
	}

	log.Printf("[SAMGov] Got %d notices (total: %d)", len(apiResp.Records), apiResp.TotalRecords)
	return apiResp.Records, apiResp.TotalRecords, nil
}
