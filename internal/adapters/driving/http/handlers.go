package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and redis connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// handleRegister godoc
// @Summary      Register account
// @Description  Create a new account with email and password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      registerRequest  true  "Account details"
// @Success      201      {object}  registerResponse
// @Failure      400      {object}  ErrorResponse  "Invalid email or password"
// @Failure      409      {object}  ErrorResponse  "Email already registered"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Email: user.Email})
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Synthesis endpoint

type synthesizeRequest struct {
	Prompt         string                 `json:"prompt"`
	FieldLabel     string                 `json:"field_label,omitempty"`
	WordLimit      int                    `json:"word_limit,omitempty"`
	StyleOverrides *domain.StyleOverrides `json:"style_overrides,omitempty"`
}

// handleSynthesize godoc
// @Summary      Synthesize an answer
// @Description  Draft an answer to an essay prompt or application field in the user's voice, citing their past essays
// @Tags         Synthesis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      synthesizeRequest  true  "Prompt or field to answer"
// @Success      200      {object}  domain.SynthesisResult
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing prompt"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      502      {object}  ErrorResponse  "AI provider failed"
// @Failure      503      {object}  ErrorResponse  "AI provider not configured"
// @Router       /synthesize [post]
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.synthesisService.Synthesize(r.Context(), domain.SynthesisRequest{
		UserID:         authCtx.UserID,
		Prompt:         req.Prompt,
		FieldLabel:     req.FieldLabel,
		WordLimit:      req.WordLimit,
		StyleOverrides: req.StyleOverrides,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "ai provider not configured")
		case errors.Is(err, domain.ErrProviderUnavailable):
			writeError(w, http.StatusBadGateway, "ai provider failed")
		default:
			writeError(w, http.StatusInternalServerError, "synthesis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Retrieval endpoint

type retrieveRequest struct {
	Query   string                  `json:"query"`
	TopK    int                     `json:"top_k,omitempty"`
	Filters domain.RetrievalFilters `json:"filters,omitempty"`
}

type retrieveResponse struct {
	Results []*domain.QueryResult `json:"results"`
	Count   int                   `json:"count"`
}

// handleRetrieve godoc
// @Summary      Retrieve relevant chunks
// @Description  Search the user's past essays for chunks relevant to a query, numbered 1..K in rank order
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      retrieveRequest  true  "Query and filters"
// @Success      200      {object}  retrieveResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing query"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      502      {object}  ErrorResponse  "Embedding provider failed"
// @Failure      503      {object}  ErrorResponse  "Embedding provider not configured"
// @Router       /retrieve [post]
func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := s.retrievalService.Retrieve(r.Context(), authCtx.UserID, req.Query, req.Filters, req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "embedding provider not configured")
		case errors.Is(err, domain.ErrProviderUnavailable):
			writeError(w, http.StatusBadGateway, "embedding provider failed")
		default:
			writeError(w, http.StatusInternalServerError, "retrieval failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, retrieveResponse{Results: results, Count: len(results)})
}

// Document endpoints

type ingestRequest struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Awarded   bool      `json:"awarded,omitempty"`
	WrittenAt time.Time `json:"written_at,omitempty"`
}

type ingestResponse struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

func (s *Server) decodeIngestRequest(w http.ResponseWriter, r *http.Request) (*domain.Document, bool) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	return &domain.Document{
		UserID:    authCtx.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Awarded:   req.Awarded,
		WrittenAt: req.WrittenAt,
	}, true
}

// handleIngestDocument godoc
// @Summary      Ingest document
// @Description  Chunk, embed and index an essay synchronously. Re-submitting the same document replaces its chunks.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ingestRequest  true  "Essay to ingest"
// @Success      201      {object}  ingestResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      409      {object}  ErrorResponse  "Ingest already in progress"
// @Failure      502      {object}  ErrorResponse  "Embedding provider failed"
// @Failure      503      {object}  ErrorResponse  "Embedding provider not configured"
// @Router       /documents [post]
func (s *Server) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeIngestRequest(w, r)
	if !ok {
		return
	}

	count, err := s.ingestionService.Ingest(r.Context(), doc)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrIngestInProgress):
			writeError(w, http.StatusConflict, "ingest already in progress")
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "embedding provider not configured")
		case errors.Is(err, domain.ErrProviderUnavailable), errors.Is(err, domain.ErrDimensionMismatch):
			writeError(w, http.StatusBadGateway, "embedding failed")
		default:
			writeError(w, http.StatusInternalServerError, "ingest failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{DocumentID: doc.ID, ChunkCount: count})
}

type ingestAsyncResponse struct {
	DocumentID string `json:"document_id"`
	TaskID     string `json:"task_id"`
}

// handleIngestDocumentAsync godoc
// @Summary      Ingest document asynchronously
// @Description  Save an essay and enqueue it for background chunking and indexing
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ingestRequest  true  "Essay to ingest"
// @Success      202      {object}  ingestAsyncResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "Task queue not configured"
// @Router       /documents/async [post]
func (s *Server) handleIngestDocumentAsync(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeIngestRequest(w, r)
	if !ok {
		return
	}

	task, err := s.ingestionService.IngestAsync(r.Context(), doc)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "task queue not configured")
		default:
			writeError(w, http.StatusInternalServerError, "enqueue failed")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, ingestAsyncResponse{DocumentID: doc.ID, TaskID: task.ID})
}

type listDocumentsResponse struct {
	Documents []*domain.Document `json:"documents"`
	Total     int                `json:"total"`
}

// handleListDocuments godoc
// @Summary      List documents
// @Description  List the authenticated user's documents, newest first
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 50, max 500)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  listDocumentsResponse
// @Failure      401     {object}  ErrorResponse  "Unauthorized"
// @Failure      500     {object}  ErrorResponse  "Internal server error"
// @Router       /documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	docs, err := s.documentService.GetByUser(r.Context(), authCtx.UserID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	total, err := s.documentService.CountByUser(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}

	writeJSON(w, http.StatusOK, listDocumentsResponse{Documents: docs, Total: total})
}

// handleGetDocument godoc
// @Summary      Get document
// @Description  Get one of the authenticated user's documents by ID
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      400  {object}  ErrorResponse  "Missing document ID"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	doc, err := s.documentService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get document")
		}
		return
	}

	// Documents are private to their owner
	if doc.UserID != authCtx.UserID {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
