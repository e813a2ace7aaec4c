package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/sistema-extras/internal/auth"
	"github.com/frahmantamala/sistema-extras/internal/company"
	"github.com/frahmantamala/sistema-extras/internal/employee"
	"github.com/frahmantamala/sistema-extras/internal/extra"
	"github.com/frahmantamala/sistema-extras/internal/receipt"
	"github.com/frahmantamala/sistema-extras/internal/report"
	"github.com/frahmantamala/sistema-extras/internal/transport/middleware"
	"github.com/frahmantamala/sistema-extras/internal/transport/swagger"
	"github.com/frahmantamala/sistema-extras/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Company  *company.Handler
	Employee *employee.Handler
	Extra    *extra.Handler
	Receipt  *receipt.Handler
	Report   *report.Handler
}

type Options struct {
	AllowedOrigins []string
	OpenAPIPath    string
	// ReceiptQueue adds the receipt pool to /api/health when set.
	ReceiptQueue ReceiptQueue
}

func RegisterAllRoutes(router *chi.Mux, db *sqlx.DB, h Handlers, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, opts.ReceiptQueue)
	rbac := auth.NewRBACAuthorization(logger)
	abac := &auth.ABACPolicy{}
	receiptScope := auth.RequireReceiptAccess(auth.SQLOwnerLookup(db), abac, logger)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	openAPIPath := opts.OpenAPIPath
	if openAPIPath == "" {
		openAPIPath = "./api/openapi.yml"
	}
	router.Get(swagger.DocumentURL, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, openAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler(swagger.DocumentURL))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			pr.Post("/auth/logout", h.Auth.Logout)
			pr.Get("/auth/me", h.Auth.Me)
			pr.Put("/auth/password", h.Auth.ChangePassword)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(rbac.RequireAdmin())
				ur.Get("/", h.User.ListUsers)
				ur.Post("/", h.User.CreateUser)
				ur.Get("/{email}", h.User.GetUser)
				ur.Put("/{email}", h.User.UpdateUser)
				ur.Delete("/{email}", h.User.DeleteUser)
			})

			pr.Route("/companies", func(cr chi.Router) {
				cr.Get("/", h.Company.ListCompanies)
				cr.Get("/authorized", h.Company.ListAuthorized)
				cr.Get("/{id}", h.Company.GetCompany)

				cr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", h.Company.CreateCompany)
					ar.Put("/{id}", h.Company.UpdateCompany)
					ar.Delete("/{id}", h.Company.DeleteCompany)
				})
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.ListEmployees)
				er.Post("/", h.Employee.CreateEmployee)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Put("/{id}", h.Employee.UpdateEmployee)
				er.With(rbac.RequireManager()).Delete("/{id}", h.Employee.DeleteEmployee)
			})

			pr.Route("/extras", func(xr chi.Router) {
				xr.Get("/", h.Extra.ListExtras)
				xr.Post("/", h.Extra.CreateExtra)
				xr.Post("/batch", h.Extra.CreateBatch)
				xr.Get("/user/{userId}", h.Extra.ListByUser)
				xr.Get("/{id}", h.Extra.GetExtra)
				xr.Put("/{id}", h.Extra.UpdateExtra)
				xr.Delete("/{id}", h.Extra.DeleteExtra)
				xr.With(rbac.RequireManager()).Put("/{id}/status", h.Extra.ChangeStatus)
			})
			pr.Get("/extras-with-details", h.Extra.ListWithDetails)

			pr.Route("/recibos", func(rr chi.Router) {
				rr.With(rbac.RequireManager()).Post("/", h.Receipt.GenerateReceipt)

				rr.Route("/{extraId}", func(sr chi.Router) {
					sr.Use(receiptScope)
					sr.Get("/", h.Receipt.GetReceipt)
					sr.Get("/pdf", h.Receipt.DownloadReceipt)
					sr.With(rbac.RequireManager()).Delete("/", h.Receipt.DeleteReceipt)
				})
			})

			pr.Group(func(mr chi.Router) {
				mr.Use(rbac.RequireManager())
				mr.Get("/reports/summary", h.Report.Summary)
				mr.Get("/reports/export", h.Report.Export)
				mr.Get("/dashboard/stats", h.Report.Dashboard)
			})
		})
	})
}
