package myai

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация спецификации swagger.
	_ "github.com/felix-musau/myai/docs"

	"github.com/felix-musau/myai/internal/config"
	"github.com/felix-musau/myai/internal/http/cookie"
	"github.com/felix-musau/myai/internal/http/handlers/auth/check"
	"github.com/felix-musau/myai/internal/http/handlers/auth/forgot"
	"github.com/felix-musau/myai/internal/http/handlers/auth/login"
	"github.com/felix-musau/myai/internal/http/handlers/auth/logout"
	"github.com/felix-musau/myai/internal/http/handlers/auth/register"
	"github.com/felix-musau/myai/internal/http/handlers/auth/reset"
	"github.com/felix-musau/myai/internal/http/handlers/consultation/history"
	"github.com/felix-musau/myai/internal/http/handlers/consultation/predict"
	"github.com/felix-musau/myai/internal/http/handlers/doctor/request"
	"github.com/felix-musau/myai/internal/http/handlers/health"
	"github.com/felix-musau/myai/internal/http/handlers/lab/analyze"
	testimonialcreate "github.com/felix-musau/myai/internal/http/handlers/testimonial/create"
	testimoniallist "github.com/felix-musau/myai/internal/http/handlers/testimonial/list"
	"github.com/felix-musau/myai/internal/http/middlewarectx"
	"github.com/felix-musau/myai/internal/metrics"
)

// AuthService все операции аутентификации, нужные маршрутам.
type AuthService interface {
	register.Service
	login.Service
	logout.Service
	check.Service
	forgot.Service
	reset.Service
	middlewarectx.Authenticator
}

// Services зависимости обработчиков.
type Services struct {
	Auth           AuthService
	Testimonials   TestimonialService
	Doctor         request.Service
	Lab            analyze.Service
	Consultations  ConsultationService
	Ready          http.Handler
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
}

// TestimonialService список и создание отзывов.
type TestimonialService interface {
	testimoniallist.Service
	testimonialcreate.Service
}

// ConsultationService предсказание и история.
type ConsultationService interface {
	predict.Service
	history.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	session := cookie.Session{Name: cfg.CookieName, Secure: cfg.IsProd()}
	limiter := middlewarectx.NewIPRateLimiter(cfg.RPS, cfg.Burst).OnReject(s.Metrics.RateLimited.Inc)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics(s.Metrics),
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Get("/ready", s.Ready.ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware(logger))
				r.Post("/register", register.New(logger, s.Auth, session, s.Metrics).ServeHTTP)
				r.Post("/login", login.New(logger, s.Auth, session, s.Metrics).ServeHTTP)
				r.Post("/forgot-password", forgot.New(logger, s.Auth).ServeHTTP)
				r.Post("/reset-password", reset.New(logger, s.Auth).ServeHTTP)
			})
			r.Post("/logout", logout.New(logger, s.Auth, session).ServeHTTP)
			r.Get("/check", check.New(s.Auth, session.Name).ServeHTTP)
		})

		r.Get("/testimonials", testimoniallist.New(logger, s.Testimonials).ServeHTTP)
		r.Post("/testimonials", testimonialcreate.New(logger, s.Testimonials).ServeHTTP)
		r.Post("/request-doctor", request.New(logger, s.Doctor).ServeHTTP)
		r.Post("/analyze-lab", analyze.New(logger, s.Lab).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuth(logger, s.Auth, session.Name))
			r.Post("/predict", predict.New(logger, s.Consultations).ServeHTTP)
			r.Get("/history", history.New(logger, s.Consultations).ServeHTTP)
		})
	})

	r.Handle("/metrics", s.MetricsHandler)
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
