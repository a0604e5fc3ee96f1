package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"

	"marketing_slogan_generator/generator"
	"marketing_slogan_generator/metrics"
)

const generateTimeout = 60 * time.Second

type Server struct {
	agent  *generator.Agent
	logger zerolog.Logger
}

func New(agent *generator.Agent, logger zerolog.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	return &Server{agent: agent, logger: logger}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/slogans", s.handleGenerate)
		r.Get("/prompts", s.handlePrompts)
	})
	return r
}

// --- Handlers ---

type generateReq struct {
	ProductName    string `json:"product_name"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone"`
	Style          string `json:"style"`
}

type generateResp struct {
	ID     string          `json:"id"`
	Style  generator.Style `json:"style"`
	Prompt string          `json:"prompt"`
	Text   string          `json:"text"`
	HTML   string          `json:"html,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	style := generator.StyleProfessional
	if req.Style != "" {
		parsed, err := generator.ParseStyle(req.Style)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		style = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	res := s.agent.GenerateSlogans(ctx, generator.SloganRequest{
		ProductName:    req.ProductName,
		TargetAudience: req.TargetAudience,
		Tone:           req.Tone,
		Style:          style,
	})

	resp := generateResp{ID: res.ID, Style: res.Style, Prompt: res.Prompt, Text: res.Text}
	status := http.StatusOK
	switch {
	case errors.Is(res.Err, generator.ErrConfigMissing):
		status = http.StatusServiceUnavailable
		resp.Error = res.Err.Error()
	case res.Err != nil:
		status = http.StatusBadGateway
		resp.Error = res.Err.Error()
	default:
		html, err := mdToHTML(res.Text)
		if err != nil {
			s.logger.Warn().Err(err).Str("id", res.ID).Msg("markdown conversion failed")
		}
		resp.HTML = html
	}
	writeJSON(w, status, resp)
}

type promptsResp struct {
	ProductName    string                     `json:"product_name"`
	TargetAudience string                     `json:"target_audience"`
	Tone           string                     `json:"tone"`
	Prompts        map[generator.Style]string `json:"prompts"`
}

func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	product := q.Get("product_name")
	audience := q.Get("target_audience")
	tone := q.Get("tone")

	prompts := generator.RenderAll(product, audience, tone)
	for style := range prompts {
		metrics.IncPromptRendered(style.String())
	}
	writeJSON(w, http.StatusOK, promptsResp{
		ProductName:    product,
		TargetAudience: audience,
		Tone:           tone,
		Prompts:        prompts,
	})
}

// --- Helpers ---

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}
