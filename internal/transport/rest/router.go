package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	"storeaudit/internal/config"
	"storeaudit/internal/model"
	"storeaudit/internal/service"
	"storeaudit/internal/transport/rest/handler"
	"storeaudit/internal/transport/rest/middleware"
	"storeaudit/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config            *config.Config
	AuthService       *service.AuthService
	TemplateService   *service.TemplateService
	InspectionService *service.InspectionService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	templateHandler := handler.NewTemplateHandler(c.TemplateService)
	inspectionHandler := handler.NewInspectionHandler(c.InspectionService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/stores/{storeId}", wsHandler.StoreWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// OpenAPI document generated into storeaudit/docs
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, "api docs not registered", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireRole(model.RoleAdmin))

	adminRoutes.HandleFunc("/templates", templateHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/templates/{templateId}", templateHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/templates/{templateId}", templateHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/templates/{templateId}/recompute", inspectionHandler.Recompute).Methods("GET", "OPTIONS")

	// Inspector routes
	inspectorRoutes := v1.NewRoute().Subrouter()
	inspectorRoutes.Use(authMW.RequireRole(model.RoleAdmin, model.RoleInspector))

	inspectorRoutes.HandleFunc("/inspections/preview", inspectionHandler.Preview).Methods("POST", "OPTIONS")
	inspectorRoutes.HandleFunc("/inspections", inspectionHandler.Create).Methods("POST", "OPTIONS")

	// Routes for every authenticated role
	readRoutes := v1.NewRoute().Subrouter()
	readRoutes.Use(authMW.RequireRole())

	readRoutes.HandleFunc("/templates", templateHandler.List).Methods("GET", "OPTIONS")
	readRoutes.HandleFunc("/templates/{templateId}", templateHandler.Get).Methods("GET", "OPTIONS")
	readRoutes.HandleFunc("/templates/{templateId}/leaderboard", inspectionHandler.Leaderboard).Methods("GET", "OPTIONS")
	readRoutes.HandleFunc("/inspections/{inspectionId}", inspectionHandler.Get).Methods("GET", "OPTIONS")
	readRoutes.HandleFunc("/stores/{storeId}/inspections", inspectionHandler.ListByStore).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.CORSAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.CORSAllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
