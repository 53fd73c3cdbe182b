package server

import (
	"net/http"
	"strings"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/runner"
	"github.com/sprite-ai/webcompat/internal/source"
)

// maxBody caps request bodies; artifacts are single text files.
const maxBody = 8 << 20

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Analyze ---

type analyzeRequest struct {
	Markup string   `json:"markup,omitempty"`
	Style  string   `json:"style,omitempty"`
	Script string   `json:"script,omitempty"`
	Skip   []string `json:"skip,omitempty"`
}

// Names reported for artifacts submitted over the API.
const (
	markupName = "index.html"
	styleName  = "styles.css"
	scriptName = "script.js"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Markup == "" && req.Style == "" && req.Script == "" {
		s.writeError(w, http.StatusBadRequest, "at least one of markup, style or script is required")
		return
	}
	if unknown := analysis.UnknownRules(req.Skip); len(unknown) > 0 {
		s.writeError(w, http.StatusBadRequest, "unknown rules in skip: "+strings.Join(unknown, ", "))
		return
	}

	src := source.Memory{}
	var v runner.Variant
	if req.Markup != "" {
		src[markupName], v.Markup = req.Markup, markupName
	}
	if req.Style != "" {
		src[styleName], v.Style = req.Style, styleName
	}
	if req.Script != "" {
		src[scriptName], v.Script = req.Script, scriptName
	}

	opts := s.engine
	opts.Skip = append(append([]string(nil), opts.Skip...), req.Skip...)
	report, err := runner.Run(r.Context(), src, analysis.NewEngine(opts), runner.Plan{v}, runner.Options{Logger: s.logger})
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "analysis canceled: "+err.Error())
		return
	}

	s.Publish(report)
	s.writeJSON(w, http.StatusOK, report)
}

// --- Report ---

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.Latest()
	if report == nil {
		s.writeError(w, http.StatusNotFound, "no report yet")
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}
