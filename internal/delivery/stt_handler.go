package delivery

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/doelab/doe-gateway/internal/domain"
	"github.com/doelab/doe-gateway/internal/models"
)

// maxAudioUpload caps the in-memory part of multipart parsing; larger uploads
// spill to disk via the stdlib before being copied to the scratch file.
const maxAudioUpload = 32 << 20

type STTHandler struct {
	transcriber *domain.TranscribeService
	log         *zap.SugaredLogger
}

func NewSTTHandler(transcriber *domain.TranscribeService, log *zap.SugaredLogger) *STTHandler {
	return &STTHandler{
		transcriber: transcriber,
		log:         log,
	}
}

// POST /api/stt
func (h *STTHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		writeError(w, http.StatusBadRequest, "No audio uploaded")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio uploaded")
		return
	}
	defer file.Close()

	h.log.Infow("audio received", "filename", header.Filename, "size", header.Size)

	text, err := h.transcriber.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		h.log.Errorw("transcription failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	writeJSON(w, http.StatusOK, models.Transcription{Text: text})
}
