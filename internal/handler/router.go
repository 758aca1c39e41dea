package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"pdf-footer-remover/internal/domain"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(documentHandler *DocumentHandler, config domain.Config, logger domain.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-footer-remover"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/documents/redact", documentHandler.RedactDocuments).Methods("POST")
	api.HandleFunc("/sessions/{id}", documentHandler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", documentHandler.ClearSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/documents/{name}/download", documentHandler.DownloadDocument).Methods("GET")
	api.HandleFunc("/sessions/{id}/documents/{name}/previews/{page}", documentHandler.GetPreview).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: config.GetAllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
