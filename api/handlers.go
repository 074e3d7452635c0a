package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"rental-comps/models"
	"rental-comps/scraper/zillow"
	"rental-comps/services"
	"rental-comps/utils"
)

// maxBodyBytes bounds the request body read by HandleSearch.
const maxBodyBytes = 1 << 20

// Searcher runs one rental search.
type Searcher interface {
	Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error)
}

// SearchHandler serves POST /api/search.
type SearchHandler struct {
	searcher Searcher
	schema   *jsonschema.Schema
	logger   *utils.Logger
}

// NewSearchHandler creates a SearchHandler. It fails only if the request schema does not compile.
func NewSearchHandler(searcher Searcher, logger *utils.Logger) (*SearchHandler, error) {
	schema, err := compileSearchSchema()
	if err != nil {
		return nil, err
	}
	return &SearchHandler{searcher: searcher, schema: schema, logger: logger}, nil
}

// HandleSearch runs the search and, when the body names the caller's own
// property (myBeds, myBaths or mySqft), scores and sorts the listings against it.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), h.logger)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeJSONError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if !hasLocation(doc) {
		writeJSONError(w, http.StatusBadRequest, "Location is required")
		return
	}
	if err := h.schema.Validate(doc); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	result, err := h.searcher.Search(r.Context(), req.criteria())
	if errors.Is(err, zillow.ErrLocationRequired) {
		writeJSONError(w, http.StatusBadRequest, "Location is required")
		return
	}
	if err != nil {
		logger.Error("[api] Search for %q failed: %v", req.Location, err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := searchResponse{Listings: result.Listings, URL: result.URL, Slug: result.PathSegment}
	if target, ok := req.target(); ok {
		resp.Listings = services.RankBy(result.Listings, target)
	}
	logger.Info("[api] %s: %d listings", result.PathSegment, len(result.Listings))

	writeJSON(w, http.StatusOK, resp)
}

// handleMethodNotAllowed answers every non-POST request to the search route.
func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func hasLocation(doc any) bool {
	obj, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	loc, ok := obj["location"].(string)
	return ok && strings.TrimSpace(loc) != ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
