package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/types"
)

const maxBodyBytes = 1 << 20

func (h *Handle) Feedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req types.FeedbackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx := r.Context()
	if d := requestDeadline(r); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	doc, err := h.svc.Evaluate(ctx, req)
	if err != nil {
		if errors.Is(err, essay.ErrUnknownEngine) || errors.Is(err, essay.ErrEngineNotConfigured) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("feedback failed", zap.String("llm", req.LLMName), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, doc)
}
