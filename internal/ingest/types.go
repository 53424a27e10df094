package ingest

import (
	"context"
	"fmt"
	"io"
	"time"
)

// RawNotice is the untrusted, unnormalized form of a procurement notice as it
// comes off a source, before any parsing or sanitization.
type RawNotice struct {
	Title              string
	Description        string
	ExternalURL        string
	SourceID           string
	SourceDomain       string
	SolicitationNumber string
	AgencyName         string
	AgencyCode         string
	NaicsCode          string
	SetAsideRaw        string
	ContractTypeRaw    string
	EstimatedValueRaw  string
	DeadlineRaw        string
	PostedRaw          string
	SourceStatusRaw    string
	AttachmentURLs     []string
	DeadlineCandidates []string
	Extra              map[string]string
}

// FetchedDocument is the raw result of a fetch operation.
type FetchedDocument struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
	FetchedAt   time.Time
	Headers     map[string][]string
}

// Fetcher retrieves raw content from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedDocument, error)
}

// IngestionStats holds metrics about a run.
type IngestionStats struct {
	TotalFound int
	TotalSaved int
	Errors     int
}

// FetcherStrategy is the contract for a notice source. It handles fetching and
// parsing, and saves through the pipeline.
type FetcherStrategy interface {
	Run(ctx context.Context, config SourceConfig, pipeline *Pipeline) (IngestionStats, error)
}

// StrategyFactory maps strategy IDs (from sources.yaml) to implementations.
type StrategyFactory struct {
	strategies map[string]FetcherStrategy
}

func NewStrategyFactory() *StrategyFactory {
	return &StrategyFactory{strategies: make(map[string]FetcherStrategy)}
}

func (f *StrategyFactory) Register(id string, strategy FetcherStrategy) {
	f.strategies[id] = strategy
}

func (f *StrategyFactory) Get(id string) (FetcherStrategy, error) {
	strategy, ok := f.strategies[id]
	if !ok {
		return nil, fmt.Errorf("strategy not found: %s", id)
	}
	return strategy, nil
}

var GlobalStrategyFactory = NewStrategyFactory()

func init() {
	GlobalStrategyFactory.Register("api_sam_gov", &SAMGovStrategy{})
	GlobalStrategyFactory.Register("html_generic", &HTMLGenericStrategy{})
}
