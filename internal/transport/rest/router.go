package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/arifwid/opstrack/internal/asset"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/deployment"
	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rca"
	"github.com/arifwid/opstrack/internal/report"
	"github.com/arifwid/opstrack/internal/search"
	"github.com/arifwid/opstrack/internal/task"
	"github.com/arifwid/opstrack/internal/transport/middleware"
	"github.com/arifwid/opstrack/internal/transport/swagger"
	"github.com/arifwid/opstrack/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Task       *task.Handler
	Deployment *deployment.Handler
	Incident   *incident.Handler
	RCA        *rca.Handler
	Asset      *asset.Handler
	Search     *search.Handler
	Report     *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", h.User.CreateUser)
				ur.Get("/", h.User.ListUsers)
				ur.Get("/me", h.User.GetCurrentUser)
				ur.Get("/{id}", h.User.GetUser)
				ur.Put("/{id}", h.User.UpdateUser)
				ur.Delete("/{id}", h.User.DeleteUser)
			})

			pr.Route("/tasks", func(tr chi.Router) {
				tr.Post("/", h.Task.CreateTask)
				tr.Get("/", h.Task.ListTasks)
				tr.Get("/{id}", h.Task.GetTask)
				tr.Put("/{id}", h.Task.UpdateTask)
				tr.Delete("/{id}", h.Task.DeleteTask)
			})

			pr.Route("/deployments", func(dr chi.Router) {
				dr.Post("/", h.Deployment.CreateDeployment)
				dr.Get("/", h.Deployment.ListDeployments)
				dr.Get("/{id}", h.Deployment.GetDeployment)
				dr.Put("/{id}", h.Deployment.UpdateDeployment)
				dr.Delete("/{id}", h.Deployment.DeleteDeployment)
			})

			pr.Route("/incidents", func(ir chi.Router) {
				ir.Post("/", h.Incident.CreateIncident)
				ir.Get("/", h.Incident.ListIncidents)
				ir.Get("/{id}", h.Incident.GetIncident)
				ir.Put("/{id}", h.Incident.UpdateIncident)
				ir.Delete("/{id}", h.Incident.DeleteIncident)
			})

			pr.Route("/rca", func(rr chi.Router) {
				rr.Post("/", h.RCA.CreateRCA)
				rr.Get("/", h.RCA.ListRCAs)
				rr.Get("/by-incident/{incidentID}", h.RCA.GetRCAByIncident)
				rr.Get("/{id}", h.RCA.GetRCA)
				rr.Put("/{id}", h.RCA.UpdateRCA)
				rr.Delete("/{id}", h.RCA.DeleteRCA)
			})

			pr.Route("/assets", func(ar chi.Router) {
				ar.Post("/", h.Asset.CreateAsset)
				ar.Get("/", h.Asset.ListAssets)
				ar.Get("/{id}", h.Asset.GetAsset)
				ar.Put("/{id}", h.Asset.UpdateAsset)
				ar.Delete("/{id}", h.Asset.DeleteAsset)
			})

			pr.Get("/search", h.Search.Search)

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/dashboard", h.Report.Dashboard)
				rr.Get("/analytics", h.Report.Analytics)
				rr.Post("/export/{format}", h.Report.Export)
			})
		})
	})
}
