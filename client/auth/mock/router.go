package mock

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
)

// Handler returns the API routes mounted at BasePath.
func (s *Service) Handler() http.Handler {
	api := chi.NewRouter()
	api.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.registerHandler)
		r.Post("/authenticate", s.authenticateHandler)
		r.Post("/refresh-token", s.refreshHandler)
		r.With(s.authenticated).Post("/logout", s.logoutHandler)
	})
	api.Group(func(r chi.Router) {
		r.Use(s.authenticated)
		r.Route("/users", func(r chi.Router) {
			r.Get("/me", s.meHandler)
			r.Put("/me", s.updateMeHandler)
			r.Delete("/me", s.deleteMeHandler)
			r.Patch("/password", s.changePasswordHandler)
		})
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.listDocumentsHandler)
			r.Post("/", s.uploadDocumentHandler)
			r.Delete("/{id}", s.deleteDocumentHandler)
		})
		r.Route("/qa", func(r chi.Router) {
			r.Post("/ask", s.askHandler)
			r.Get("/history/{documentId}", s.historyHandler)
		})
		r.Route("/publications", func(r chi.Router) {
			r.Post("/upload", s.uploadFacultyHandler)
			r.Get("/batches", s.batchesHandler)
			r.Get("/batches/{batchId}/summaries", s.batchSummariesHandler)
			r.Delete("/batches/{batchId}", s.deleteBatchHandler)
			r.Get("/profile/{facultyId}", s.profileHandler)
			r.Get("/articles/{facultyId}", s.articlesHandler)
			r.Get("/summary/{facultyId}", s.summaryHandler)
			r.Get("/export/{facultyId}", s.exportHandler)
		})
	})
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Mount(BasePath, api)
	return router
}
