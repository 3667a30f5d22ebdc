// File: api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quest-demos/concepts"
	"quest-demos/config"
	"quest-demos/encryption"
	"quest-demos/models"
	"quest-demos/service"
)

const maxBodyBytes = 1 << 16

type Server struct {
	cfg    *config.Config
	demo   *service.DemoService
	logger *zap.Logger
	router chi.Router
}

type CompareRequest struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

func NewServer(cfg *config.Config, demo *service.DemoService, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		demo:   demo,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/key", s.handleGetKey)
		r.Get("/metrics", s.handleGetMetrics)
		r.Delete("/metrics", s.handleResetMetrics)

		r.Post("/encrypt", s.handleEncrypt)
		r.Post("/decrypt", s.handleDecrypt)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Post("/{id}/encrypt", s.handleSessionEncrypt)
			r.Post("/{id}/decrypt", s.handleSessionDecrypt)
			r.Post("/{id}/reset", s.handleSessionReset)
		})

		r.Route("/concepts", func(r chi.Router) {
			r.Post("/entropy", s.handleEntropy)
			r.Post("/gini", s.handleGini)
			r.Post("/bayes", s.handleBayes)
		})

		r.Get("/schemes", s.handleCompareSchemes)
		r.Post("/schemes", s.handleCompareSchemes)
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, pruning expired sessions meanwhile.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	go s.startSessionPruning(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) startSessionPruning(ctx context.Context) {
	interval := s.cfg.Demo.PruneInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.demo.PruneExpired(now)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.demo.KeyInfo())
}

func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.demo.Metrics())
}

func (s *Server) handleResetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.demo.ResetMetrics())
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var req models.EncryptRequest
	if !s.decode(w, r, &req) {
		return
	}

	cipher, err := s.demo.EncryptMessage(req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.EncryptResponse{
		Ciphertext:    cipher,
		CiphertextHex: s.demo.EncodeCiphertext(cipher),
	})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	var req models.DecryptRequest
	if !s.decode(w, r, &req) {
		return
	}

	text, err := s.demo.DecryptMessage(encryption.Ciphertext(req.Ciphertext))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DecryptResponse{Text: text})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.demo.CreateSession())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.demo.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSessionEncrypt(w http.ResponseWriter, r *http.Request) {
	var req models.EncryptRequest
	if !s.decode(w, r, &req) {
		return
	}

	snap, err := s.demo.Encrypt(chi.URLParam(r, "id"), req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSessionDecrypt(w http.ResponseWriter, r *http.Request) {
	snap, err := s.demo.Decrypt(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	snap, err := s.demo.Reset(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleEntropy(w http.ResponseWriter, r *http.Request) {
	var req models.EntropyRequest
	if !s.decode(w, r, &req) {
		return
	}

	h := concepts.Entropy(req.Text)
	writeJSON(w, http.StatusOK, models.EntropyResponse{
		Entropy:    h,
		Normalized: concepts.NormalizedEntropy(req.Text),
		Label:      concepts.StrengthLabel(h),
	})
}

func (s *Server) handleGini(w http.ResponseWriter, r *http.Request) {
	var req models.GiniRequest
	if !s.decode(w, r, &req) {
		return
	}

	g := concepts.Gini(req.Labels)
	writeJSON(w, http.StatusOK, models.GiniResponse{
		Gini:   g,
		Purity: 1 - g,
		Label:  concepts.PurityLabel(g),
	})
}

func (s *Server) handleBayes(w http.ResponseWriter, r *http.Request) {
	var req models.BayesRequest
	if !s.decode(w, r, &req) {
		return
	}

	prior, likelihood, falsePositive := concepts.DefaultPrior, concepts.DefaultLikelihood, concepts.DefaultFalsePositive
	if req.Prior != nil {
		prior = *req.Prior
	}
	if req.Likelihood != nil {
		likelihood = *req.Likelihood
	}
	if req.FalsePositive != nil {
		falsePositive = *req.FalsePositive
	}

	res, err := concepts.Posterior(prior, likelihood, falsePositive)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompareSchemes(w http.ResponseWriter, r *http.Request) {
	req := CompareRequest{A: 6, B: 7}
	if r.Method == http.MethodPost && !s.decode(w, r, &req) {
		return
	}

	results, err := s.demo.CompareSchemes(req.A, req.B)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrMessageTooLong),
		errors.Is(err, encryption.ErrInvalidArgument),
		errors.Is(err, encryption.ErrPlaintextOutOfRange),
		errors.Is(err, concepts.ErrInvalidProbability):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
