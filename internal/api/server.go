package api

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/samuel/fed-rfq/internal/ai"
	"github.com/samuel/fed-rfq/internal/assessment"
	"github.com/samuel/fed-rfq/internal/auth"
	"github.com/samuel/fed-rfq/internal/db"
	"github.com/samuel/fed-rfq/internal/ingest"
	"github.com/samuel/fed-rfq/internal/matching"
	"github.com/samuel/fed-rfq/internal/models"
)

type Server struct {
	Store       *db.Store
	AuthService *auth.Service
	Echo        *echo.Echo
	DB          *pgxpool.Pool
	AI          *ai.OllamaClient
	Estimator   *matching.Estimator
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func NewServer(pool *pgxpool.Pool) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:4200"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Admin-Secret"},
	}))

	ollamaHost := os.Getenv("OLLAMA_HOST")
	if ollamaHost == "" {
		ollamaHost = "http://localhost:11434"
	}
	aiClient := ai.NewOllamaClient(ollamaHost, "", os.Getenv("OLLAMA_GEN_MODEL"))

	s := &Server{
		DB:          pool,
		Store:       db.NewStore(pool),
		AuthService: auth.NewService(pool),
		Echo:        e,
		AI:          aiClient,
		Estimator:   matching.NewEstimator(),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")

	api.GET("/opportunities", s.handleListOpportunities)
	api.GET("/opportunities/:id", s.handleGetOpportunity)
	api.GET("/opportunities/:id/matches", s.handleGetMatches)
	api.GET("/suppliers", s.handleListSuppliers)
	api.GET("/suppliers/:id", s.handleGetSupplier)
	api.GET("/stats", s.handleGetStats)

	// Auth Routes
	api.POST("/auth/signup", s.handleSignup)
	api.POST("/auth/login", s.handleLogin)

	// Protected Routes
	watched := api.Group("/watched")
	watched.Use(auth.Middleware)
	watched.POST("/:id", s.handleWatchOpportunity)
	watched.DELETE("/:id", s.handleUnwatchOpportunity)
	watched.GET("", s.handleGetWatchedOpportunities)

	rfqs := api.Group("/rfqs")
	rfqs.Use(auth.Middleware)
	rfqs.POST("", s.handleCreateRFQ)
	rfqs.GET("", s.handleListRFQs)
	rfqs.GET("/:id", s.handleGetRFQ)
	rfqs.POST("/:id/publish", s.handlePublishRFQ)
	rfqs.POST("/:id/close", s.handleCloseRFQ)
	rfqs.POST("/:id/invitations", s.handleInviteSupplier)
	rfqs.GET("/:id/invitations", s.handleListInvitations)
	rfqs.POST("/:id/quotes", s.handleSubmitQuote)
	rfqs.GET("/:id/quotes", s.handleListQuotes)
	rfqs.POST("/:id/assess", s.handleAssessRFQ)
	rfqs.GET("/:id/assessment", s.handleGetAssessment)

	// Admin Routes (Ingest & Seed)
	admin := api.Group("")
	admin.Use(s.adminMiddleware)
	admin.POST("/ingest/source/:id", s.handleIngestSourceByID)
	admin.POST("/ingest/all", s.handleIngestAll)
	admin.POST("/admin/recompute-status", s.handleRecomputeStatus)
	admin.POST("/seed/suppliers", s.handleSeedSuppliers)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Auth

func (s *Server) handleSignup(c echo.Context) error {
	var req auth.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Signup(c.Request().Context(), req)
	if err != nil {
		if err == auth.ErrUserExists {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		if err == auth.ErrInvalidCreds {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

// Opportunities

func (s *Server) handleListOpportunities(c echo.Context) error {
	q := c.QueryParam("q")

	limit := 20
	offset := 0
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := strconv.Atoi(c.QueryParam("offset")); err == nil && o >= 0 {
		offset = o
	}

	params := db.ListParams{
		Query:     q,
		NaicsCode: c.QueryParam("naics"),
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sort"),
		Limit:     limit,
		Offset:    offset,
	}
	if v := c.QueryParam("set_aside"); v != "" {
		params.SetAside = splitCSV(v)
	}
	if v := c.QueryParam("contract_type"); v != "" {
		params.ContractType = splitCSV(v)
	}
	if v := c.QueryParam("agency_name"); v != "" {
		params.AgencyName = splitCSV(v)
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_value"), 64); err == nil && v > 0 {
		params.MinValue = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_value"), 64); err == nil && v > 0 {
		params.MaxValue = v
	}
	if v, err := strconv.Atoi(c.QueryParam("deadline_days")); err == nil && v > 0 {
		params.DeadlineDays = v
	}

	// Generate embedding for semantic search
	if q != "" {
		aiCtx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		vec, err := s.AI.GenerateEmbedding(aiCtx, q)
		if err != nil {
			c.Logger().Errorf("Failed to generate query embedding: %v", err)
			// Fall back to keyword search
		} else {
			params.QueryEmbedding = vec
		}
	}

	result, err := s.Store.ListOpportunities(c.Request().Context(), params)
	if err != nil {
		c.Logger().Errorf("Failed to list opportunities: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetOpportunity(c echo.Context) error {
	opp, err := s.Store.GetOpportunity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, opp)
}

// handleGetMatches ranks active suppliers against one opportunity.
func (s *Server) handleGetMatches(c echo.Context) error {
	ctx := c.Request().Context()

	opp, err := s.Store.GetOpportunity(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	limit := 5
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 25 {
		limit = l
	}

	suppliers, err := s.Store.ListSuppliers(ctx, true)
	if err != nil {
		c.Logger().Errorf("Failed to list suppliers: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	matches := matching.RankSuppliers(*opp, suppliers, s.Estimator, limit)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"opportunity_id": opp.ID,
		"matches":        matches,
		"total_scored":   len(suppliers),
	})
}

// Suppliers

func (s *Server) handleListSuppliers(c echo.Context) error {
	activeOnly := !strings.EqualFold(c.QueryParam("include_inactive"), "true")
	suppliers, err := s.Store.ListSuppliers(c.Request().Context(), activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suppliers": suppliers, "total": len(suppliers)})
}

func (s *Server) handleGetSupplier(c echo.Context) error {
	supplier, err := s.Store.GetSupplier(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, supplier)
}

func (s *Server) handleGetStats(c echo.Context) error {
	stats, err := s.Store.GetStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// Watched Opportunities

func (s *Server) handleWatchOpportunity(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	oppID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	if err := s.AuthService.WatchOpportunity(ctx, userID, oppID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to watch opportunity"})
	}

	return c.NoContent(http.StatusOK)
}

func (s *Server) handleUnwatchOpportunity(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	oppID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	if err := s.AuthService.UnwatchOpportunity(ctx, userID, oppID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to unwatch opportunity"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "unwatched"})
}

func (s *Server) handleGetWatchedOpportunities(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	opps, err := s.AuthService.GetWatchedOpportunities(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch watched opportunities"})
	}
	if opps == nil {
		opps = []models.Opportunity{}
	}

	return c.JSON(http.StatusOK, opps)
}

// RFQs

type createRFQRequest struct {
	OpportunityID string     `json:"opportunity_id"`
	Title         string     `json:"title"`
	Scope         string     `json:"scope"`
	Instructions  string     `json:"instructions"`
	DueAt         *time.Time `json:"due_at"`
}

func (s *Server) handleCreateRFQ(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req createRFQRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	oppID, err := uuid.Parse(req.OpportunityID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid opportunity ID"})
	}

	opp, err := s.Store.GetOpportunity(ctx, oppID.String())
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Opportunity not found"})
	}

	rfq := models.RFQ{
		OpportunityID: oppID,
		CreatedBy:     userID,
		Title:         strings.TrimSpace(req.Title),
		Scope:         req.Scope,
		Instructions:  req.Instructions,
		DueAt:         req.DueAt,
	}

	// Optional AI drafting: fill empty fields from the notice text.
	if strings.EqualFold(c.QueryParam("draft"), "true") {
		draftCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		draft, err := s.AI.DraftRFQ(draftCtx, *opp)
		if err != nil {
			c.Logger().Errorf("RFQ drafting failed: %v", err)
		} else {
			if rfq.Title == "" {
				rfq.Title = draft.Title
			}
			if rfq.Scope == "" {
				rfq.Scope = draft.Scope
			}
			if rfq.Instructions == "" {
				rfq.Instructions = draft.Instructions
			}
		}
	}

	if rfq.Title == "" {
		rfq.Title = "RFQ: " + opp.Title
	}

	created, err := s.Store.CreateRFQ(ctx, rfq)
	if err != nil {
		c.Logger().Errorf("Failed to create RFQ: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create RFQ"})
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListRFQs(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	rfqs, err := s.Store.ListRFQsByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list RFQs"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"rfqs": rfqs, "total": len(rfqs)})
}

// getOwnedRFQ loads an RFQ and verifies the caller created it.
func (s *Server) getOwnedRFQ(c echo.Context) (*models.RFQ, error) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	rfq, err := s.Store.GetRFQ(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "RFQ not found")
	}
	if rfq.CreatedBy != userID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Not your RFQ")
	}
	return rfq, nil
}

func (s *Server) handleGetRFQ(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rfq)
}

func (s *Server) handlePublishRFQ(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}
	if rfq.Status != models.RFQDraft {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Only draft RFQs can be published"})
	}

	if err := s.Store.UpdateRFQStatus(c.Request().Context(), rfq.ID, models.RFQPublished); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to publish RFQ"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.RFQPublished})
}

func (s *Server) handleCloseRFQ(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}
	if rfq.Status != models.RFQPublished {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Only published RFQs can be closed"})
	}

	if err := s.Store.UpdateRFQStatus(c.Request().Context(), rfq.ID, models.RFQClosed); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to close RFQ"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.RFQClosed})
}

type inviteRequest struct {
	SupplierID string `json:"supplier_id"`
}

func (s *Server) handleInviteSupplier(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}

	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid supplier ID"})
	}

	if _, err := s.Store.GetSupplier(c.Request().Context(), supplierID.String()); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Supplier not found"})
	}

	if err := s.Store.InviteSupplier(c.Request().Context(), rfq.ID, supplierID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to invite supplier"})
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) handleListInvitations(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}

	suppliers, err := s.Store.ListInvitedSuppliers(c.Request().Context(), rfq.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list invitations"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suppliers": suppliers, "total": len(suppliers)})
}

type submitQuoteRequest struct {
	SupplierID   string  `json:"supplier_id"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_days"`
	Notes        string  `json:"notes"`
}

func (s *Server) handleSubmitQuote(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}
	if rfq.Status != models.RFQPublished {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Quotes can only be recorded on published RFQs"})
	}

	var req submitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid supplier ID"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Price must be positive"})
	}

	id, err := s.Store.CreateQuote(c.Request().Context(), models.Quote{
		RFQID:        rfq.ID,
		SupplierID:   supplierID,
		Price:        req.Price,
		DeliveryDays: req.DeliveryDays,
		Notes:        req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Quote already recorded for this supplier"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListQuotes(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}

	quotes, err := s.Store.ListQuotes(c.Request().Context(), rfq.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list quotes"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"quotes": quotes, "total": len(quotes)})
}

// handleAssessRFQ runs the four concurrent LLM reviews and persists the
// aggregated result.
func (s *Server) handleAssessRFQ(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Minute)
	defer cancel()

	overall, err := assessment.AssessRFQ(ctx, s.AI, *rfq)
	if err != nil {
		c.Logger().Errorf("Assessment failed for RFQ %s: %v", rfq.ID, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Assessment failed: " + err.Error()})
	}

	if err := s.Store.SaveAssessment(ctx, rfq.ID, overall.OverallScore, overall.ReadinessLevel, overall.CriticalIssueCount, overall); err != nil {
		c.Logger().Errorf("Failed to persist assessment for RFQ %s: %v", rfq.ID, err)
	}

	return c.JSON(http.StatusOK, overall)
}

func (s *Server) handleGetAssessment(c echo.Context) error {
	rfq, err := s.getOwnedRFQ(c)
	if err != nil {
		return err
	}

	payload, err := s.Store.GetLatestAssessment(c.Request().Context(), rfq.ID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No assessment yet"})
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// Admin

func (s *Server) handleIngestSourceByID(c echo.Context) error {
	pipeline := ingest.NewPipeline(s.DB, nil, s.AI)

	sourceID := c.Param("id")
	stats, err := pipeline.IngestSource(c.Request().Context(), sourceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("%s ingestion complete", sourceID),
		"stats":   stats,
	})
}

func (s *Server) handleIngestAll(c echo.Context) error {
	pipeline := ingest.NewPipeline(s.DB, nil, s.AI)

	results, err := pipeline.IngestAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All registry sources ingestion complete",
		"results": results,
	})
}

func (s *Server) handleRecomputeStatus(c echo.Context) error {
	pipeline := ingest.NewPipeline(s.DB, nil, s.AI)

	updated, err := pipeline.RecomputeStatuses(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Status recompute complete",
		"updated": updated,
	})
}

func (s *Server) handleSeedSuppliers(c echo.Context) error {
	created, err := ingest.SeedSuppliers(c.Request().Context(), s.Store)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Supplier seed complete",
		"created": created,
	})
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

// splitCSV splits a comma-separated query parameter into trimmed non-empty strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			if authHeader[7:] == secret {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
