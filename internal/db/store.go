package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/samuel/fed-rfq/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type ListParams struct {
	Query          string
	QueryEmbedding []float32
	NaicsCode      string
	SetAside       []string
	ContractType   []string
	AgencyName     []string
	MinValue       float64
	MaxValue       float64
	DeadlineDays   int
	Status         string // "active" (default), "upcoming", "expired", "closed", "needs_review", or "all"
	SortBy         string
	Limit          int
	Offset         int
}

type ListResult struct {
	Opportunities []models.Opportunity `json:"opportunities"`
	Total         int                  `json:"total"`
	Limit         int                  `json:"limit"`
	Offset        int                  `json:"offset"`
}

// oppCols is the comprehensive column list for opportunity queries.
const oppCols = `id, title, description, solicitation_number, agency_name, agency_code,
	naics_code, set_aside, estimated_value, response_deadline, posted_at,
	contract_type, status, status_reason, source_domain, source_id, external_url,
	attachment_urls, created_at, updated_at`

func scanOpportunity(scan func(dest ...interface{}) error) (models.Opportunity, error) {
	var o models.Opportunity
	var solNum, agencyName, agencyCode, naicsCode, sourceID *string

	err := scan(
		&o.ID, &o.Title, &o.Description, &solNum, &agencyName, &agencyCode,
		&naicsCode, &o.SetAside, &o.EstimatedValue, &o.ResponseDeadline, &o.PostedAt,
		&o.ContractType, &o.Status, &o.StatusReason, &o.SourceDomain, &sourceID, &o.ExternalURL,
		&o.AttachmentURLs, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return o, err
	}

	if solNum != nil {
		o.SolicitationNumber = *solNum
	}
	if agencyName != nil {
		o.AgencyName = *agencyName
	}
	if agencyCode != nil {
		o.AgencyCode = *agencyCode
	}
	if naicsCode != nil {
		o.NaicsCode = *naicsCode
	}
	if sourceID != nil {
		o.SourceID = *sourceID
	}

	return o, nil
}

func (s *Store) ListOpportunities(ctx context.Context, params ListParams) (*ListResult, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1

	if params.Query != "" {
		where += fmt.Sprintf(" AND (search_vector @@ plainto_tsquery('english', $%d) OR title ILIKE '%%' || $%d || '%%')", argIdx, argIdx)
		args = append(args, params.Query)
		argIdx++
	}
	if params.NaicsCode != "" {
		where += fmt.Sprintf(" AND naics_code = $%d", argIdx)
		args = append(args, params.NaicsCode)
		argIdx++
	}
	if len(params.SetAside) > 0 {
		where += fmt.Sprintf(" AND set_aside = ANY($%d)", argIdx)
		args = append(args, params.SetAside)
		argIdx++
	}
	if len(params.ContractType) > 0 {
		where += fmt.Sprintf(" AND contract_type = ANY($%d)", argIdx)
		args = append(args, params.ContractType)
		argIdx++
	}
	if len(params.AgencyName) > 0 {
		where += fmt.Sprintf(" AND agency_name = ANY($%d)", argIdx)
		args = append(args, params.AgencyName)
		argIdx++
	}
	if params.MinValue > 0 {
		where += fmt.Sprintf(" AND estimated_value >= $%d", argIdx)
		args = append(args, params.MinValue)
		argIdx++
	}
	if params.MaxValue > 0 {
		where += fmt.Sprintf(" AND estimated_value > 0 AND estimated_value <= $%d", argIdx)
		args = append(args, params.MaxValue)
		argIdx++
	}

	targetStatus := params.Status
	if targetStatus == "" {
		targetStatus = models.StatusActive
	}
	if targetStatus != "all" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, targetStatus)
		argIdx++
	}

	if params.DeadlineDays > 0 {
		where += fmt.Sprintf(" AND response_deadline IS NOT NULL AND response_deadline >= NOW() AND response_deadline <= NOW() + ($%d * INTERVAL '1 day')", argIdx)
		args = append(args, params.DeadlineDays)
		argIdx++
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM opportunities " + where
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count failed: %w", err)
	}

	selectSQL := fmt.Sprintf("SELECT %s FROM opportunities %s", oppCols, where)

	switch params.SortBy {
	case "deadline":
		selectSQL += " ORDER BY response_deadline ASC NULLS LAST"
	case "value_desc":
		selectSQL += " ORDER BY estimated_value DESC NULLS LAST"
	case "newest":
		selectSQL += " ORDER BY posted_at DESC NULLS LAST, created_at DESC"
	default: // "relevance"
		if len(params.QueryEmbedding) > 0 {
			vectorArg := argIdx
			queryArg := argIdx + 1
			args = append(args, pgvector.NewVector(params.QueryEmbedding), params.Query)
			argIdx += 2

			selectSQL += fmt.Sprintf(`
				ORDER BY
					CASE WHEN embedding IS NULL THEN 1 ELSE 0 END ASC,
					COALESCE(1 - (embedding <=> $%d), -1) DESC,
					CASE WHEN NULLIF($%d::text, '') IS NULL THEN 0 ELSE ts_rank(search_vector, plainto_tsquery('english', $%d::text)) END DESC,
					updated_at DESC NULLS LAST,
					created_at DESC
			`, vectorArg, queryArg, queryArg)
		} else if params.Query != "" {
			queryArg := argIdx
			args = append(args, params.Query)
			argIdx++
			selectSQL += fmt.Sprintf(" ORDER BY ts_rank(search_vector, plainto_tsquery('english', $%d::text)) DESC, updated_at DESC NULLS LAST, created_at DESC", queryArg)
		} else {
			selectSQL += " ORDER BY updated_at DESC NULLS LAST, created_at DESC"
		}
	}

	selectSQL += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := s.pool.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		opps = append(opps, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	if opps == nil {
		opps = []models.Opportunity{}
	}

	return &ListResult{
		Opportunities: opps,
		Total:         total,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}, nil
}

func (s *Store) GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error) {
	sql := fmt.Sprintf("SELECT %s FROM opportunities WHERE id = $1", oppCols)
	row := s.pool.QueryRow(ctx, sql, id)

	o, err := scanOpportunity(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("not found: %w", err)
	}

	return &o, nil
}

func (s *Store) GetOpportunityBySourceID(ctx context.Context, sourceDomain, sourceID string) (*models.Opportunity, error) {
	sql := fmt.Sprintf("SELECT %s FROM opportunities WHERE source_domain = $1 AND source_id = $2", oppCols)
	row := s.pool.QueryRow(ctx, sql, sourceDomain, sourceID)

	o, err := scanOpportunity(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("not found: %w", err)
	}

	return &o, nil
}

// UpsertOpportunity inserts or refreshes an ingested notice, keyed by
// (source_domain, source_id). The embedding may be nil when generation failed;
// an existing embedding is then preserved.
func (s *Store) UpsertOpportunity(ctx context.Context, o models.Opportunity, embedding []float32) (uuid.UUID, error) {
	var embeddingArg interface{}
	if len(embedding) > 0 {
		embeddingArg = pgvector.NewVector(embedding)
	}

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO opportunities (
			title, description, solicitation_number, agency_name, agency_code,
			naics_code, set_aside, estimated_value, response_deadline, posted_at,
			contract_type, status, status_reason, source_domain, source_id,
			external_url, attachment_urls, embedding
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (source_domain, source_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			solicitation_number = EXCLUDED.solicitation_number,
			agency_name = EXCLUDED.agency_name,
			agency_code = EXCLUDED.agency_code,
			naics_code = EXCLUDED.naics_code,
			set_aside = EXCLUDED.set_aside,
			estimated_value = EXCLUDED.estimated_value,
			response_deadline = EXCLUDED.response_deadline,
			posted_at = EXCLUDED.posted_at,
			contract_type = EXCLUDED.contract_type,
			status = EXCLUDED.status,
			status_reason = EXCLUDED.status_reason,
			external_url = EXCLUDED.external_url,
			attachment_urls = EXCLUDED.attachment_urls,
			embedding = COALESCE(EXCLUDED.embedding, opportunities.embedding),
			updated_at = NOW()
		RETURNING id
	`, o.Title, o.Description, nullable(o.SolicitationNumber), nullable(o.AgencyName), nullable(o.AgencyCode),
		nullable(o.NaicsCode), o.SetAside, o.EstimatedValue, o.ResponseDeadline, o.PostedAt,
		o.ContractType, o.Status, o.StatusReason, o.SourceDomain, nullable(o.SourceID),
		o.ExternalURL, o.AttachmentURLs, embeddingArg).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert failed: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateOpportunityStatus(ctx context.Context, id uuid.UUID, status, reason string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE opportunities SET status = $2, status_reason = $3, updated_at = NOW() WHERE id = $1
	`, id, status, reason)
	return err
}

// ListOpportunitiesForStatusRecompute streams id+deadline fields in batches.
func (s *Store) ListOpportunitiesForStatusRecompute(ctx context.Context, limit, offset int) ([]models.Opportunity, error) {
	sql := fmt.Sprintf("SELECT %s FROM opportunities ORDER BY created_at LIMIT $1 OFFSET $2", oppCols)
	rows, err := s.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows.Scan)
		if err != nil {
			return nil, err
		}
		opps = append(opps, o)
	}
	return opps, rows.Err()
}

// Suppliers

const supplierCols = `id, name, naics_codes, certifications, capabilities, rating,
	gsa_schedule, active, contact_email, created_at, updated_at`

func scanSupplier(scan func(dest ...interface{}) error) (models.Supplier, error) {
	var sup models.Supplier
	err := scan(
		&sup.ID, &sup.Name, &sup.NaicsCodes, &sup.Certifications, &sup.Capabilities, &sup.Rating,
		&sup.GSASchedule, &sup.Active, &sup.ContactEmail, &sup.CreatedAt, &sup.UpdatedAt,
	)
	return sup, err
}

// ListSuppliers returns suppliers, optionally restricted to active profiles.
// Ordering is stable (creation order) so match rankings are reproducible.
func (s *Store) ListSuppliers(ctx context.Context, activeOnly bool) ([]models.Supplier, error) {
	sql := fmt.Sprintf("SELECT %s FROM suppliers", supplierCols)
	if activeOnly {
		sql += " WHERE active = true"
	}
	sql += " ORDER BY created_at, id"

	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return suppliers, rows.Err()
}

func (s *Store) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	sql := fmt.Sprintf("SELECT %s FROM suppliers WHERE id = $1", supplierCols)
	sup, err := scanSupplier(s.pool.QueryRow(ctx, sql, id).Scan)
	if err != nil {
		return nil, fmt.Errorf("not found: %w", err)
	}
	return &sup, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sup models.Supplier) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, naics_codes, certifications, capabilities, rating, gsa_schedule, active, contact_email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, sup.Name, sup.NaicsCodes, sup.Certifications, sup.Capabilities, sup.Rating, sup.GSASchedule, sup.Active, sup.ContactEmail).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

// RFQs

const rfqCols = `id, opportunity_id, created_by, title, scope, instructions, due_at, status, created_at, updated_at`

func scanRFQ(scan func(dest ...interface{}) error) (models.RFQ, error) {
	var r models.RFQ
	err := scan(&r.ID, &r.OpportunityID, &r.CreatedBy, &r.Title, &r.Scope, &r.Instructions, &r.DueAt, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (s *Store) CreateRFQ(ctx context.Context, r models.RFQ) (*models.RFQ, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO rfqs (opportunity_id, created_by, title, scope, instructions, due_at, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING %s
	`, rfqCols), r.OpportunityID, r.CreatedBy, r.Title, r.Scope, r.Instructions, r.DueAt, models.RFQDraft)

	created, err := scanRFQ(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}
	return &created, nil
}

func (s *Store) GetRFQ(ctx context.Context, id string) (*models.RFQ, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM rfqs WHERE id = $1", rfqCols), id)
	r, err := scanRFQ(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("not found: %w", err)
	}
	return &r, nil
}

func (s *Store) ListRFQsByUser(ctx context.Context, userID uuid.UUID) ([]models.RFQ, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM rfqs WHERE created_by = $1 ORDER BY created_at DESC", rfqCols), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfqs []models.RFQ
	for rows.Next() {
		r, err := scanRFQ(rows.Scan)
		if err != nil {
			return nil, err
		}
		rfqs = append(rfqs, r)
	}
	if rfqs == nil {
		rfqs = []models.RFQ{}
	}
	return rfqs, rows.Err()
}

func (s *Store) UpdateRFQStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE rfqs SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) InviteSupplier(ctx context.Context, rfqID, supplierID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rfq_invitations (rfq_id, supplier_id)
		VALUES ($1, $2)
		ON CONFLICT (rfq_id, supplier_id) DO NOTHING
	`, rfqID, supplierID)
	return err
}

func (s *Store) ListInvitedSuppliers(ctx context.Context, rfqID uuid.UUID) ([]models.Supplier, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM suppliers s
		JOIN rfq_invitations i ON s.id = i.supplier_id
		WHERE i.rfq_id = $1
		ORDER BY i.invited_at
	`, strings.ReplaceAll(supplierCols, "id,", "s.id,")), rfqID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows.Scan)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, sup)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return suppliers, rows.Err()
}

func (s *Store) CreateQuote(ctx context.Context, q models.Quote) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO quotes (rfq_id, supplier_id, price, delivery_days, notes)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, q.RFQID, q.SupplierID, q.Price, q.DeliveryDays, q.Notes).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

func (s *Store) ListQuotes(ctx context.Context, rfqID uuid.UUID) ([]models.Quote, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT q.id, q.rfq_id, q.supplier_id, s.name, q.price, q.delivery_days, q.notes, q.submitted_at
		FROM quotes q
		JOIN suppliers s ON s.id = q.supplier_id
		WHERE q.rfq_id = $1
		ORDER BY q.price ASC
	`, rfqID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.ID, &q.RFQID, &q.SupplierID, &q.SupplierName, &q.Price, &q.DeliveryDays, &q.Notes, &q.SubmittedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}
	return quotes, rows.Err()
}

// Assessment snapshots

func (s *Store) SaveAssessment(ctx context.Context, rfqID uuid.UUID, overallScore int, readiness string, criticalCount int, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO rfq_assessments (rfq_id, overall_score, readiness_level, critical_issue_count, payload)
		VALUES ($1,$2,$3,$4,$5)
	`, rfqID, overallScore, readiness, criticalCount, raw)
	return err
}

func (s *Store) GetLatestAssessment(ctx context.Context, rfqID uuid.UUID) (json.RawMessage, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM rfq_assessments WHERE rfq_id = $1 ORDER BY created_at DESC LIMIT 1
	`, rfqID).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// Ingest runs

func (s *Store) StartIngestRun(ctx context.Context, sourceID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ingest_runs (source_id) VALUES ($1) RETURNING run_id
	`, sourceID).Scan(&id)
	return id, err
}

func (s *Store) FinishIngestRun(ctx context.Context, runID uuid.UUID, status string, found, saved, errCount int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE ingest_runs SET status = $2, items_found = $3, items_saved = $4, errors = $5, completed_at = NOW()
		WHERE run_id = $1
	`, runID, status, found, saved, errCount)
	return err
}

// Stats

func (s *Store) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int
	s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM opportunities").Scan(&total)
	stats["opportunities"] = total

	var suppliers int
	s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM suppliers WHERE active = true").Scan(&suppliers)
	stats["active_suppliers"] = suppliers

	var rfqs int
	s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM rfqs").Scan(&rfqs)
	stats["rfqs"] = rfqs

	var closingSoon int
	s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM opportunities
		WHERE status = 'active' AND response_deadline IS NOT NULL
		  AND response_deadline BETWEEN NOW() AND NOW() + INTERVAL '14 days'
	`).Scan(&closingSoon)
	stats["closing_within_14_days"] = closingSoon

	statusCounts := map[string]int{}
	rows, err := s.pool.Query(ctx, "SELECT status, COUNT(*) FROM opportunities GROUP BY status")
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var status string
			var count int
			if scanErr := rows.Scan(&status, &count); scanErr == nil {
				statusCounts[status] = count
			}
		}
	}
	stats["status_counts"] = statusCounts

	return stats, nil
}

// nullable maps "" to NULL so empty strings do not pollute unique indexes.
func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
