package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/doelab/doe-gateway/internal/domain"
	"github.com/doelab/doe-gateway/internal/models"
)

type AssistantHandler struct {
	assistant *domain.AssistantService
	log       *zap.SugaredLogger
}

func NewAssistantHandler(assistant *domain.AssistantService, log *zap.SugaredLogger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		log:       log,
	}
}

// POST /api/search
func (h *AssistantHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query required")
		return
	}

	answer, err := h.assistant.Search(r.Context(), req.Query)
	if err != nil {
		h.log.Errorw("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary": answer.Text,
		"results": answer.Evidence,
	})
}

// POST /api/chat
//
// Delivery is streamed, not the computation: the oracle is consulted once,
// then the answer goes out as SSE frames, each flushed before the next is
// produced. A fault before the first flush becomes a regular 500 envelope.
// A fault after streaming has begun is reported with a single
// {"type":"error"} frame, then the stream closes.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "No message provided")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.log.Error("chat: response writer does not support flushing")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	started := false

	emit := func(ev models.StreamEvent) error {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := writeFrame(w, ev); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.assistant.Stream(r.Context(), req.Message, emit); err != nil {
		h.log.Errorw("chat stream failed", "error", err)
		if !started {
			writeError(w, http.StatusInternalServerError, internalErrorMsg)
			return
		}
		if _, werr := fmt.Fprintf(w, "data: %s\n\n", errorFramePayload()); werr == nil {
			flusher.Flush()
		}
	}
}

func writeFrame(w http.ResponseWriter, ev models.StreamEvent) error {
	switch ev.Kind {
	case models.EventToken:
		_, err := fmt.Fprintf(w, "data: %s\n\n", ev.Token)
		return err
	case models.EventEvidence:
		payload, err := json.Marshal(map[string]any{
			"type": "evidence",
			"data": ev.Evidence,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
		return err
	default:
		return fmt.Errorf("unknown stream event kind %q", ev.Kind)
	}
}

func errorFramePayload() []byte {
	payload, _ := json.Marshal(map[string]string{
		"type": "error",
		"data": internalErrorMsg,
	})
	return payload
}
