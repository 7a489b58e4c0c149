package router

import (
	"net/http"
	"strings"

	"cereal-api/internal/handler"
	"cereal-api/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	cerealHandler *handler.CerealHandler,
	userHandler *handler.UserHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Cereal handler function. The collection path serves list and
	// create-or-update; the item path serves get-by-id and delete-by-name.
	cerealRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cereals" || r.URL.Path == "/cereals/" {
			switch r.Method {
			case http.MethodGet:
				cerealHandler.List(w, r)
			case http.MethodPost:
				cerealHandler.CreateOrUpdate(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		key := strings.TrimPrefix(r.URL.Path, "/cereals/")
		if key == "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			cerealHandler.GetByID(w, r, key)
		case http.MethodDelete:
			cerealHandler.DeleteByName(w, r, key)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register cereal routes (both with and without trailing slash)
	mux.HandleFunc("/cereals", cerealRouteHandler)
	mux.HandleFunc("/cereals/", cerealRouteHandler)

	mux.HandleFunc("/register", userHandler.Register)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
