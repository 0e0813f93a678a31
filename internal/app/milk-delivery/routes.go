// Package milkdelivery предоставляет маршруты для основного приложения.
package milkdelivery

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/dashboard"
	admindeliverylist "github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/deliverylist"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/paymentlist"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/ratecreate"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/ratelist"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/rateupdate"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/delivery/options"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/delivery/order"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/delivery/remove"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/delivery/update"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/health"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/payment/outstanding"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/payment/paymentcreate"
	userdeliverylist "github.com/magabrotheeeer/milk-delivery/internal/http/handlers/user/deliverylist"
	userpaymentlist "github.com/magabrotheeeer/milk-delivery/internal/http/handlers/user/paymentlist"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/user/profileupdate"
	"github.com/magabrotheeeer/milk-delivery/internal/http/handlers/user/stats"
	"github.com/magabrotheeeer/milk-delivery/internal/http/middlewarectx"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/jwt"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
	adminservice "github.com/magabrotheeeer/milk-delivery/internal/services/admin"
	authservice "github.com/magabrotheeeer/milk-delivery/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/milk-delivery/internal/services/catalog"
	deliveryservice "github.com/magabrotheeeer/milk-delivery/internal/services/delivery"
	paymentservice "github.com/magabrotheeeer/milk-delivery/internal/services/payment"
	userservice "github.com/magabrotheeeer/milk-delivery/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	deliveryService *deliveryservice.DeliveryService,
	paymentService *paymentservice.PaymentService,
	adminService *adminservice.AdminService,
	userService *userservice.UserService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Каталог доступен любому аутентифицированному пользователю
			r.Get("/deliveries/options", options.New(logger, catalogService).ServeHTTP)

			// Конечные точки подписчика
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleUser))
				r.Post("/deliveries/order", order.New(logger, deliveryService).ServeHTTP)
				r.Put("/deliveries/{id}", update.New(logger, deliveryService).ServeHTTP)
				r.Delete("/deliveries/{id}", remove.New(logger, deliveryService).ServeHTTP)
				r.Post("/payments", paymentcreate.New(logger, paymentService).ServeHTTP)
				r.Get("/payments/outstanding", outstanding.New(logger, paymentService).ServeHTTP)
				r.Get("/users/profile", profile.New(logger, userService).ServeHTTP)
				r.Put("/users/profile", profileupdate.New(logger, userService).ServeHTTP)
				r.Get("/users/deliveries", userdeliverylist.New(logger, deliveryService).ServeHTTP)
				r.Get("/users/payments", userpaymentlist.New(logger, paymentService).ServeHTTP)
				r.Get("/users/stats", stats.New(logger, deliveryService).ServeHTTP)
			})

			// Конечные точки администратора
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/dashboard", dashboard.New(logger, adminService).ServeHTTP)
				r.Get("/users", userlist.New(logger, adminService).ServeHTTP)
				r.Get("/deliveries", admindeliverylist.New(logger, adminService).ServeHTTP)
				r.Get("/payments", paymentlist.New(logger, adminService).ServeHTTP)
				r.Get("/milk-rates", ratelist.New(logger, catalogService).ServeHTTP)
				r.Post("/milk-rates", ratecreate.New(logger, catalogService).ServeHTTP)
				r.Put("/milk-rates/{id}", rateupdate.New(logger, catalogService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
