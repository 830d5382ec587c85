package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/config"
	"github.com/shiftclock/shiftclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	patternHandler PatternHandler,
	shiftHandler ShiftHandler,
	payHandler PayHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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
			r.Post("/register", authHandler.Register)
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

			r.Get("/me", authHandler.Profile)

			r.Route("/patterns", func(r chi.Router) {
				r.Get("/", patternHandler.List)
				r.Post("/", patternHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", patternHandler.Get)
					r.Put("/", patternHandler.Update)
					r.Delete("/", patternHandler.Delete)
					r.Get("/preview", patternHandler.Preview)
					r.Post("/generate", shiftHandler.Generate)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Put("/", shiftHandler.Update)
					r.Patch("/status", shiftHandler.Transition)
					r.Delete("/", shiftHandler.Delete)
				})
			})

			r.Route("/rulesets", func(r chi.Router) {
				r.Get("/", payHandler.ListRulesets)
				r.Post("/", payHandler.CreateRuleset)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payHandler.GetRuleset)
					r.Put("/", payHandler.UpdateRuleset)
					r.Delete("/", payHandler.DeleteRuleset)
				})
			})

			r.Route("/pay", func(r chi.Router) {
				r.Post("/aggregate/range", payHandler.AggregateRange)
				r.Post("/aggregate/period", payHandler.AggregatePeriod)
			})
		})
	})
	return r
}
