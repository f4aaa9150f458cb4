package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/oppstream/oppstream-backend-go/internal/handler/http/middleware"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	FrontendURL string
	Env         string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	logHandler LogHandler,
	businessUnitHandler BusinessUnitHandler,
	dashboardHandler DashboardHandler,
	adminHandler AdminHandler,
	summaryHandler SummaryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "oppstream"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", employeeHandler.Upsert)
				r.Get("/me", employeeHandler.Me)
				r.Get("/subordinates", employeeHandler.Subordinates)
				r.Get("/subordinates/counts", employeeHandler.SubordinateCounts)
				r.Get("/managers", employeeHandler.Managers)
			})

			r.Route("/logs", func(r chi.Router) {
				r.Post("/", logHandler.Create)
				r.Get("/visible", logHandler.VisibleToMe)
				r.Get("/mine", logHandler.CreatedByMe)
				r.Get("/pending", logHandler.PendingForMe)
				r.Get("/decided", logHandler.DecidedByMe)
				r.Get("/counters", logHandler.ApprovalCounters)

				r.Route("/{logID}", func(r chi.Router) {
					r.Get("/", logHandler.GetByID)
					r.Patch("/decision", logHandler.Decide)
					r.Put("/resubmit", logHandler.Resubmit)
				})
			})

			r.Route("/business-units", func(r chi.Router) {
				r.Get("/", businessUnitHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", businessUnitHandler.Create)
				})
			})

			r.Post("/summaries", summaryHandler.Generate)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/admin", func(r chi.Router) {
					r.Route("/users", func(r chi.Router) {
						r.Post("/", adminHandler.CreateUser)
						r.Get("/", adminHandler.ListUsers)
						r.Route("/{userID}", func(r chi.Router) {
							r.Get("/", adminHandler.GetUser)
							r.Put("/", adminHandler.UpdateUser)
							r.Delete("/", adminHandler.DeleteUser)
						})
					})

					r.Route("/dashboard", func(r chi.Router) {
						r.Get("/stats", dashboardHandler.Stats)
						r.Get("/distribution", dashboardHandler.Distribution)
						r.Get("/overview", dashboardHandler.Overview)
					})
				})
			})
		})
	})
	return r
}
