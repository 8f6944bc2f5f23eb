package delivery

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hAssistant *AssistantHandler, hSTT *STTHandler, hStatic *StaticHandler) {

	// assistant
	r.Post("/api/search", hAssistant.Search)
	r.Post("/api/chat", hAssistant.Chat)

	// speech-to-text
	r.Post("/api/stt", hSTT.Transcribe)

	// frontend bundle, with SPA fallback
	r.Get("/*", hStatic.Serve)
}
