package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "uf-ai/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
// staticDir, when set, is served at the root for the browser client.
func NewRouter(chatHandler *ChatHandler, modelHandler *ModelHandler, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness and readiness probe.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Auth & Profile ---
			r.Post("/auth/signin", chatHandler.HandleSignIn)
			r.Post("/auth/signout", chatHandler.HandleSignOut)
			r.Get("/profile", chatHandler.HandleGetProfile)
			r.Patch("/profile", chatHandler.HandleUpdateProfile)
			r.Delete("/profile/memory", chatHandler.HandleClearMemory)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)
			r.Get("/models/{modelID}", modelHandler.HandleShowModel)
			r.Post("/models/{modelID}/select", chatHandler.HandleSelectModel)

			// --- Avatars ---
			r.Get("/avatars", chatHandler.HandleListAvatars)
			r.Put("/avatars/{avatarID}", chatHandler.HandleUpdateAvatar)

			// --- Sessions ---
			r.Get("/sessions", chatHandler.HandleListSessions)
			r.Post("/sessions", chatHandler.HandleNewSession)
			r.Delete("/sessions", chatHandler.HandleDeleteAllSessions)
			r.Post("/sessions/{sessionID}/select", chatHandler.HandleSelectSession)
			r.Put("/sessions/{sessionID}/title", chatHandler.UpdateChatTitle)
			r.Delete("/sessions/{sessionID}", chatHandler.HandleDeleteSession)

			// --- Messages & data ---
			r.Get("/messages", chatHandler.HandleGetMessages)
			r.Post("/messages/{messageID}/feedback", chatHandler.HandleFeedback)
			r.Get("/export", chatHandler.HandleExport)
			r.Post("/import", chatHandler.HandleImport)
		})

		// Long-running routes. These must NOT have a timeout: they hold the
		// connection open while a provider responds.
		r.Group(func(r chi.Router) {
			r.Post("/messages", chatHandler.HandleSendMessage)
			r.Post("/messages/regenerate", chatHandler.HandleRegenerate)
			r.Post("/images", chatHandler.HandleGenerateImage)
			r.Post("/avatars", chatHandler.HandleCreateAvatar)
			r.Get("/events", chatHandler.HandleEvents)
		})
	})

	// --- Frontend File Server ---
	if staticDir != "" {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Handle("/*", http.StripPrefix("/", fileServer))
	}

	return r
}
