package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"golang.org/x/text/language"

	"github.com/dgallion1/navgest/internal/infer"
	"github.com/dgallion1/navgest/internal/navtree"
)

type textRequest struct {
	Text      string `json:"text"`
	TitleCase bool   `json:"titleCase"`
	Language  string `json:"language,omitempty"`
}

type pagesRequest struct {
	Pages     [][]infer.Fragment `json:"pages"`
	Tolerance float64            `json:"tolerance,omitempty"`
	TitleCase bool               `json:"titleCase"`
	Language  string             `json:"language,omitempty"`
}

func (s *Server) handleInferText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	res := infer.FromText(req.Text)
	writeResult(w, applyCasing(res, req.TitleCase, req.Language))
}

func (s *Server) handleInferPages(w http.ResponseWriter, r *http.Request) {
	var req pagesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	pages := make([]infer.Page, 0, len(req.Pages))
	for _, frags := range req.Pages {
		pages = append(pages, infer.StaticPage(frags))
	}
	tolerance := req.Tolerance
	if tolerance <= 0 {
		tolerance = s.cfg.RowTolerance
	}

	res := infer.FromPages(pages, infer.Options{RowTolerance: tolerance})
	writeResult(w, applyCasing(res, req.TitleCase, req.Language))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := navtree.CheckShape(raw); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"valid": false,
			"error": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// applyCasing title-cases labels when asked. An unknown language tag falls
// back to English.
func applyCasing(res infer.Result, titleCase bool, lang string) infer.Result {
	if !titleCase {
		return res
	}
	tag := language.English
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	res.Config = navtree.TitleCase(res.Config, tag)
	return res
}

func writeResult(w http.ResponseWriter, res infer.Result) {
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
