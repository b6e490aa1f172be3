package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-bookstore/internal/http/handlers"
	"github.com/pribylovaa/go-bookstore/internal/http/middleware"
	"github.com/pribylovaa/go-bookstore/internal/ratelimit"
	"github.com/pribylovaa/go-bookstore/internal/service"
	"github.com/pribylovaa/go-bookstore/internal/sessions"
	"github.com/pribylovaa/go-bookstore/internal/tokens"
)

// Эндпоинты аутентификации вне лимитера: залоченный клиент должен
// сохранять возможность войти или обновить сессию.
var rateLimitExempt = []string{
	"/auth/login",
	"/auth/refresh",
	"/auth/register",
}

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Limiter *ratelimit.Limiter
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, codec *tokens.Codec, store sessions.Store, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Limiter != nil {
		root.Use(middleware.RateLimit(opts.Limiter, rateLimitExempt...))
	}
	root.Use(middleware.AuthGateway(codec, store)) // валидируем токен, кладём Principal
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)
	registerRoutes(root, h)

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/register", h.RegisterUser)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/logout", h.Logout)

	// catalog
	r.Get("/books", h.ListBooks)
	r.Get("/books/{id}", h.GetBook)
	r.Get("/books/{id}/reviews", h.ListReviews)
	r.Post("/books/{id}/reviews", h.CreateReview)

	// cart
	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddToCart)
	r.Delete("/cart/items/{bookId}", h.RemoveFromCart)

	// orders
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.Checkout)

	// favorites
	r.Get("/favorites", h.ListFavorites)
	r.Put("/favorites/{bookId}", h.AddFavorite)
	r.Delete("/favorites/{bookId}", h.RemoveFavorite)

	// profile
	r.Get("/users/me", h.GetProfile)
	r.Patch("/users/me", h.UpdateProfile)
}
