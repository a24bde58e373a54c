package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status"`
}

// TokenRequest carries the API key for token issuance
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// SearchRequest is the POST body for search queries
type SearchRequest struct {
	Query  string            `json:"query"`
	Mode   string            `json:"mode,omitempty"`
	TopK   int               `json:"top_k,omitempty"`
	Filter map[string]string `json:"filter,omitempty"`
}

// SearchResponse carries ranked search results
type SearchResponse struct {
	Results []*domain.RankedMatch `json:"results"`
}

// Health endpoints

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness: the server can serve traffic only when its
// backing stores answer
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]string{}
	healthy := true

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Ping(ctx); err != nil {
			checks["queue"] = err.Error()
			healthy = false
		} else {
			checks["queue"] = "ok"
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, checks)
}

// handleVersion returns the build version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleIssueToken exchanges a configured API key for a bearer token
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.APIKey == "" || !s.auth.VerifyKey(req.APIKey) {
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}

	token, err := s.auth.GenerateToken("api-client")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Document endpoints

// handleUploadDocument accepts a multipart upload and schedules the pipeline.
// Form fields: "file" (required), "uploaded_by", "metadata" (JSON object).
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	var metadata map[string]string
	if raw := r.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			writeError(w, http.StatusBadRequest, "metadata must be a JSON object of strings")
			return
		}
	}

	uploadedBy := r.FormValue("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = GetSubject(r.Context())
	}

	doc, err := s.ingestService.Ingest(r.Context(), driving.UploadRequest{
		FileName:   header.Filename,
		UploadedBy: uploadedBy,
		Content:    content,
		Metadata:   metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedType):
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// handleListDocuments returns a page of documents, newest first
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	page, err := s.statusService.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleDocumentStatus returns a document with its full stage history
func (s *Server) handleDocumentStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	progress, err := s.statusService.Progress(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "status lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// handleReingestDocument re-schedules extraction for an existing document
func (s *Server) handleReingestDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.ingestService.Reingest(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "reingest failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// Search endpoints

// handleSearch runs a query from URL parameters: q, mode, top_k
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topK, _ := strconv.Atoi(q.Get("top_k"))

	s.runSearch(w, r, SearchRequest{
		Query: q.Get("q"),
		Mode:  q.Get("mode"),
		TopK:  topK,
	})
}

// handleSearchPost runs a query from a JSON body, allowing metadata filters
func (s *Server) handleSearchPost(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.runSearch(w, r, req)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	opts := domain.SearchOptions{
		Mode:   domain.SearchMode(req.Mode),
		Filter: req.Filter,
		TopK:   req.TopK,
	}

	results, err := s.searchService.Search(r.Context(), req.Query, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusBadGateway, "search backend unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	if results == nil {
		results = []*domain.RankedMatch{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
