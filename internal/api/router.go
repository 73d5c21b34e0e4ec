package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes live under /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", apiHandler.SignupHandler)
		r.Post("/auth/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Get("/auth/me", apiHandler.MeHandler)

			// Chat routes
			r.Post("/chat/message", apiHandler.SendMessageHandler)
			r.Post("/chat/stream", apiHandler.StreamMessageHandler)
			r.Get("/chat/history", apiHandler.GetChatHistoryHandler)
			r.Delete("/chat/{sessionID}", apiHandler.DeleteChatHandler)

			// Progress routes
			r.Post("/progress/update", apiHandler.UpdateProgressHandler)
			r.Get("/progress/user", apiHandler.GetUserProgressHandler)
			r.Get("/progress/subject/{subjectID}", apiHandler.GetSubjectProgressHandler)
			r.Get("/progress/chapters/{subjectID}", apiHandler.ChapterViewHandler)
			r.Get("/progress/analytics/weekly", apiHandler.WeeklyAnalyticsHandler)
			r.Get("/progress/analytics/monthly", apiHandler.MonthlyAnalyticsHandler)

			// Document routes
			r.Post("/documents/upload", apiHandler.UploadDocumentHandler)
			r.Get("/documents", apiHandler.ListDocumentsHandler)
		})
	})

	return r
}
