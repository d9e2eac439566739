// Package web serves a local preview of one entity: every supported
// output format on its own route, validation results alongside, and an
// index page that displays them together.
package web

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Togather-Foundation/schemaorg/internal/config"
	"github.com/Togather-Foundation/schemaorg/internal/metrics"
	"github.com/Togather-Foundation/schemaorg/render"
	"github.com/Togather-Foundation/schemaorg/schema"
	"github.com/Togather-Foundation/schemaorg/validation"
)

//go:embed preview.html
var previewHTML []byte

// Preview serves one entity for inspection in a browser.
type Preview struct {
	entity    *schema.Entity
	jsonld    *render.JSONLDRenderer
	microdata *render.MicrodataRenderer
	rdfa      *render.RDFaRenderer
	script    *render.JSONLDRenderer
	engine    *validation.Engine
	logger    zerolog.Logger
}

// NewPreview builds a preview for the given entity.
func NewPreview(entity *schema.Entity, logger zerolog.Logger) (*Preview, error) {
	if entity == nil {
		return nil, render.ErrNilEntity
	}
	return &Preview{
		entity:    entity,
		jsonld:    render.NewJSONLD().Pretty(true),
		microdata: render.NewMicrodata().Pretty(true),
		rdfa:      render.NewRDFa().Pretty(true),
		script:    render.NewJSONLD().Pretty(true).ScriptTag(true),
		engine:    validation.DefaultEngine(),
		logger:    logger,
	}, nil
}

// Handler returns the preview routes wrapped in correlation, logging,
// rate-limit, and metrics middleware.
func (p *Preview) Handler(rl config.RateLimitConfig) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", p.indexHandler())
	mux.Handle("/entity.json", p.treeHandler())
	mux.Handle("/entity.jsonld", p.renderHandler(p.jsonld))
	mux.Handle("/entity.microdata", p.renderHandler(p.microdata))
	mux.Handle("/entity.rdfa", p.renderHandler(p.rdfa))
	mux.Handle("/embed.html", p.renderHandler(p.script))
	mux.Handle("/validation", p.validationHandler())
	mux.Handle("/healthz", healthzHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = RateLimit(rl)(handler)
	handler = RequestLogging(p.logger)(handler)
	handler = CorrelationID(p.logger)(handler)
	return handler
}

func (p *Preview) indexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The root pattern matches everything the mux has no entry for.
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(previewHTML)
	})
}

// treeHandler serves the resolved property tree as plain JSON, before
// any renderer-specific escaping or markup generation.
func (p *Preview) treeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		out, err := json.MarshalIndent(p.entity.Tree(), "", "  ")
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("tree encoding failed")
			http.Error(w, "tree encoding failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
		_, _ = w.Write([]byte("\n"))
	})
}

func (p *Preview) renderHandler(renderer render.Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		start := time.Now()
		out, err := renderer.Render(p.entity)
		metrics.RecordRender(string(renderer.Format()), start, err)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).
				Str("format", string(renderer.Format())).
				Msg("render failed")
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", renderer.MIMEType()+"; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out))
	})
}

func (p *Preview) validationHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		result := p.engine.Validate(p.entity)
		metrics.RecordValidation(result.Valid, len(result.Errors), len(result.Warnings))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(result)
	})
}

func healthzHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
