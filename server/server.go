package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/phenol_water"
	"github.com/notargets/phenolcst/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"num": phenol_water.FormatFloat,
	"f2":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}).ParseFS(templateFS, "templates/page.html"))

type Config struct {
	CORS   bool
	Params InputParameters.ExperimentParameters
}

// Server serves the experiment page and its artefacts. Every request runs its own
// experiment; the only shared state is the metrics.
type Server struct {
	Params  InputParameters.ExperimentParameters
	Metrics *Metrics
	// NewSeed picks the seed for requests that don't carry one
	NewSeed func() uint64
	cors    bool
}

func NewServer(cfg Config) (s *Server, err error) {
	if err = cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment parameters: %w", err)
	}
	s = &Server{
		Params:  cfg.Params,
		Metrics: NewMetrics(),
		NewSeed: rand.Uint64,
		cors:    cfg.CORS,
	}
	return
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(ZapRequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.Metrics.Instrument)

	r.Get("/", s.PageHandler)
	r.Get("/plot.svg", s.PlotHandler("svg"))
	r.Get("/plot.png", s.PlotHandler("png"))
	r.Get("/observations.csv", s.CSVHandler)
	r.Get("/healthz", s.HealthHandler)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	r.Group(func(r chi.Router) {
		if s.cors {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
				MaxAge:         300,
			}))
		}
		r.Get("/api/experiment", s.ExperimentHandler)
	})
	return r
}

// NewHTTPServer wraps handler in a server listening on port
func NewHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

/*
parseRequest reads the query parameters n and seed. An absent n selects the default
count, an absent seed draws a new one. Out of range counts are clamped by the run.
*/
func (s *Server) parseRequest(r *http.Request) (req phenol_water.Request, err error) {
	req = phenol_water.Request{
		Count:  s.Params.DefaultObservations,
		Params: s.Params,
	}
	q := r.URL.Query()
	if v := q.Get("n"); v != "" {
		if req.Count, err = strconv.Atoi(v); err != nil {
			err = fmt.Errorf("query param n: %w", err)
			return
		}
	}
	if v := q.Get("seed"); v != "" {
		if req.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			err = fmt.Errorf("query param seed: %w", err)
			return
		}
	} else {
		req.Seed = s.NewSeed()
	}
	return
}

func (s *Server) runExperiment(w http.ResponseWriter, r *http.Request) (res phenol_water.Result, ok bool) {
	req, err := s.parseRequest(r)
	if err != nil {
		zap.L().Debug("bad experiment query", zap.Error(err))
		Error(w, r, ErrAPIParsingInteger, err)
		return
	}
	if res, err = phenol_water.Run(req); err != nil {
		zap.L().Error("experiment failed", zap.Error(err))
		Error(w, r, ErrAPIProcessError, err)
		return
	}
	s.Metrics.ObserveExperiment(res)
	return res, true
}

// Query returns the parameters reproducing res on any endpoint
func Query(res phenol_water.Result) string {
	v := url.Values{}
	v.Set("n", strconv.Itoa(res.Count))
	v.Set("seed", strconv.FormatUint(res.Seed, 10))
	return v.Encode()
}

type pageData struct {
	Result  phenol_water.Result
	Params  InputParameters.ExperimentParameters
	Header  []string
	PlotURL template.URL
	CSVURL  template.URL
	CSVName string
}

func (s *Server) PageHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runExperiment(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Result:  res,
		Params:  s.Params,
		Header:  phenol_water.CSVHeader,
		PlotURL: template.URL("/plot.svg?" + Query(res)),
		CSVURL:  template.URL("/observations.csv?" + Query(res)),
		CSVName: phenol_water.CSVFileName,
	})
	if err != nil {
		zap.L().Error("page render", zap.Error(err))
		Error(w, r, ErrAPIProcessError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) PlotHandler(format string) http.HandlerFunc {
	contentType := phenol_water.PlotFormats[format]
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.runExperiment(w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := phenol_water.RenderPlot(&buf, res, format); err != nil {
			zap.L().Error("plot render", zap.Error(err), zap.String("format", format))
			Error(w, r, ErrAPIProcessError, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) CSVHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runExperiment(w, r)
	if !ok {
		return
	}
	data, err := phenol_water.MarshalCSV(res.Observations)
	if err != nil {
		Error(w, r, ErrAPIProcessError, err)
		return
	}
	s.Metrics.CSVDownloads.Inc()
	File(w, phenol_water.CSVFileName, "text/csv; charset=utf-8", data)
}

func (s *Server) ExperimentHandler(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.runExperiment(w, r); ok {
		JSON(w, r, res)
	}
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, map[string]string{
		"status": "ok",
		"memory": utils.GetMemUsage(),
	})
}
