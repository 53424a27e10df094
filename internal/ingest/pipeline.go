package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samuel/fed-rfq/internal/ai"
	"github.com/samuel/fed-rfq/internal/db"
	"github.com/samuel/fed-rfq/internal/models"
)

// Pipeline owns the save path shared by all source strategies: sanitize,
// enrich missing fields with the LLM, compute status, embed, upsert.
type Pipeline struct {
	DB      *pgxpool.Pool
	Store   *db.Store
	Fetcher Fetcher
	AI      *ai.OllamaClient
}

func NewPipeline(pool *pgxpool.Pool, fetcher Fetcher, aiClient *ai.OllamaClient) *Pipeline {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(FetchConfig{
			TimeoutSeconds: 30,
			MaxRetries:     3,
			RateLimitRPS:   2.0,
		})
	}
	return &Pipeline{
		DB:      pool,
		Store:   db.NewStore(pool),
		Fetcher: fetcher,
		AI:      aiClient,
	}
}

// IngestSource runs one source from the registry and records the run.
func (p *Pipeline) IngestSource(ctx context.Context, sourceID string) (IngestionStats, error) {
	registry, err := LoadRegistry("internal/ingest/config/sources.yaml")
	if err != nil {
		return IngestionStats{}, fmt.Errorf("failed to load registry: %w", err)
	}

	var config *SourceConfig
	for i := range registry.Sources {
		if registry.Sources[i].ID == sourceID {
			config = &registry.Sources[i]
			break
		}
	}
	if config == nil {
		return IngestionStats{}, fmt.Errorf("source id %q not found in registry", sourceID)
	}

	strategy, err := GlobalStrategyFactory.Get(config.Strategy)
	if err != nil {
		return IngestionStats{}, fmt.Errorf("strategy %q not found for source %q", config.Strategy, sourceID)
	}

	runID, err := p.Store.StartIngestRun(ctx, sourceID)
	if err != nil {
		log.Printf("[Warn] Failed to create ingest run: %v", err)
		runID = uuid.Nil
	}

	log.Printf("Starting ingestion for source: %s (%s)", config.Name, config.ID)
	stats, runErr := strategy.Run(ctx, *config, p)

	if runID != uuid.Nil {
		status := "completed"
		if runErr != nil || (stats.TotalSaved == 0 && stats.TotalFound > 0) {
			status = "failed"
		}
		if err := p.Store.FinishIngestRun(ctx, runID, status, stats.TotalFound, stats.TotalSaved, stats.Errors); err != nil {
			log.Printf("Failed to update ingest run %s: %v", runID, err)
		}
	}

	return stats, runErr
}

// IngestAll runs every source in the registry, continuing past failures.
func (p *Pipeline) IngestAll(ctx context.Context) (map[string]IngestionStats, error) {
	registry, err := LoadRegistry("internal/ingest/config/sources.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	results := make(map[string]IngestionStats)
	for _, src := range registry.Sources {
		stats, err := p.IngestSource(ctx, src.ID)
		if err != nil {
			log.Printf("Error ingesting source %q: %v", src.ID, err)
			stats.Errors++
		}
		results[src.ID] = stats
	}

	return results, nil
}

// SaveRaw normalizes a raw notice and saves it.
func (p *Pipeline) SaveRaw(ctx context.Context, raw RawNotice) error {
	opp := FromRaw(raw)
	return p.SaveNotice(ctx, opp, raw.SourceStatusRaw)
}

// SaveNotice enriches and persists one opportunity.
func (p *Pipeline) SaveNotice(ctx context.Context, opp models.Opportunity, sourceStatusRaw string) error {
	if opp.Title == "" {
		return fmt.Errorf("notice has no title")
	}

	// LLM extraction when structured fields are missing. Check the DB first:
	// a prior run may already have extracted them.
	needsExtraction := opp.NaicsCode == "" || opp.ResponseDeadline == nil
	if needsExtraction && opp.SourceID != "" {
		existing, err := p.Store.GetOpportunityBySourceID(ctx, opp.SourceDomain, opp.SourceID)
		if err == nil && existing != nil {
			if opp.NaicsCode == "" {
				opp.NaicsCode = existing.NaicsCode
			}
			if opp.ResponseDeadline == nil {
				opp.ResponseDeadline = existing.ResponseDeadline
			}
			needsExtraction = opp.NaicsCode == "" || opp.ResponseDeadline == nil
		}
	}

	if needsExtraction && p.AI != nil && opp.Description != "" {
		extracted, err := p.AI.ExtractNoticeData(ctx, opp.Title, opp.ExternalURL, TruncateText(opp.Description, 6000))
		if err != nil {
			log.Printf("LLM extraction failed for %q: %v", opp.Title, err)
		} else {
			applyExtraction(&opp, extracted)
		}
	}

	// PDF attachments are the last resort for a missing deadline.
	if opp.ResponseDeadline == nil && len(opp.AttachmentURLs) > 0 && p.Fetcher != nil {
		for _, attURL := range opp.AttachmentURLs {
			candidates, err := ExtractDeadlinesFromPDF(ctx, p.Fetcher, attURL)
			if err != nil {
				log.Printf("PDF deadline extraction failed for %s: %v", attURL, err)
				continue
			}
			if len(candidates) > 0 {
				if t := parseTimestamp(candidates[0]); t != nil {
					opp.ResponseDeadline = t
					break
				}
			}
		}
	}

	decision := ComputeStatusDecision(opp, sourceStatusRaw, time.Now().UTC())
	opp.Status = decision.Status
	opp.StatusReason = decision.Reason

	var embedding []float32
	if p.AI != nil {
		text := opp.Title + "\n" + TruncateText(opp.Description, 2000)
		emb, err := p.AI.GenerateEmbedding(ctx, text)
		if err != nil {
			log.Printf("Embedding generation failed for %q: %v", opp.Title, err)
		} else {
			embedding = emb
		}
	}

	if _, err := p.Store.UpsertOpportunity(ctx, opp, embedding); err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}

	log.Printf("Saved: %s [%s]", opp.Title, opp.Status)
	return nil
}

func applyExtraction(opp *models.Opportunity, extracted *ai.ExtractedNotice) {
	if opp.SolicitationNumber == "" {
		opp.SolicitationNumber = extracted.SolicitationNumber
	}
	if opp.AgencyName == "" {
		opp.AgencyName = extracted.AgencyName
	}
	if opp.NaicsCode == "" {
		opp.NaicsCode = extracted.NaicsCode
	}
	if opp.SetAside == models.SetAsideNone {
		opp.SetAside = NormalizeSetAside(extracted.SetAside)
	}
	if extracted.ContractType != "" {
		opp.ContractType = NormalizeContractType(extracted.ContractType)
	}
	if opp.EstimatedValue == 0 && extracted.EstimatedValue > 0 {
		opp.EstimatedValue = extracted.EstimatedValue
	}
	if opp.ResponseDeadline == nil && extracted.DeadlineISO != "" {
		opp.ResponseDeadline = parseTimestamp(extracted.DeadlineISO)
	}
	if opp.ResponseDeadline == nil {
		for _, candidate := range extracted.DeadlineCandidates {
			if t := parseTimestamp(candidate); t != nil {
				opp.ResponseDeadline = t
				break
			}
		}
	}
	if opp.PostedAt == nil && extracted.PostedISO != "" {
		opp.PostedAt = parseTimestamp(extracted.PostedISO)
	}
}

// RecomputeStatuses re-runs the status ladder over stored opportunities.
// Deadlines pass silently in the real world; this keeps statuses honest.
func (p *Pipeline) RecomputeStatuses(ctx context.Context) (int, error) {
	const batchSize = 500
	updated := 0

	for offset := 0; ; offset += batchSize {
		opps, err := p.Store.ListOpportunitiesForStatusRecompute(ctx, batchSize, offset)
		if err != nil {
			return updated, err
		}
		if len(opps) == 0 {
			break
		}

		now := time.Now().UTC()
		for _, opp := range opps {
			decision := ComputeStatusDecision(opp, "", now)
			// Closed is terminal: an award or cancellation never reopens.
			if opp.Status == models.StatusClosed {
				continue
			}
			if decision.Status == opp.Status {
				continue
			}
			if err := p.Store.UpdateOpportunityStatus(ctx, opp.ID, decision.Status, decision.Reason); err != nil {
				log.Printf("Status update failed for %s: %v", opp.ID, err)
				continue
			}
			updated++
		}

		if len(opps) < batchSize {
			break
		}
	}

	return updated, nil
}
