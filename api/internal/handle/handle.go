package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"essay-feedback/api/internal/essay/types"
)

// Evaluator is the essay evaluation service.
type Evaluator interface {
	Evaluate(ctx context.Context, req types.FeedbackRequest) (types.Document, error)
}

type Handle struct {
	svc Evaluator
	log *zap.Logger
}

func New(svc Evaluator, log *zap.Logger) *Handle {
	return &Handle{
		svc: svc,
		log: log,
	}
}

// Routes registers the API on mux.
func (h *Handle) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/essay/feedback", h.Feedback)
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, types.ErrorResponse{Error: msg})
}

// requestDeadline reads X-Request-Timeout or ?timeoutSec= (seconds). Zero means
// the service default applies.
func requestDeadline(r *http.Request) time.Duration {
	ts := r.Header.Get("X-Request-Timeout")
	if ts == "" {
		ts = r.URL.Query().Get("timeoutSec")
	}
	if v, _ := strconv.Atoi(ts); v > 0 {
		return time.Duration(v) * time.Second
	}
	return 0
}
