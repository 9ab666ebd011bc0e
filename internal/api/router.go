package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/scrollconnect/postpilot/internal/api/handler"
	customMiddleware "github.com/scrollconnect/postpilot/internal/api/middleware"
	"github.com/scrollconnect/postpilot/internal/config"
	"github.com/scrollconnect/postpilot/internal/llm"
	"github.com/scrollconnect/postpilot/internal/llm/gemini"
	"github.com/scrollconnect/postpilot/internal/repository/mongo"
	"github.com/scrollconnect/postpilot/internal/repository/redis"
	"github.com/scrollconnect/postpilot/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongo.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize repositories
	chatRepo := mongo.NewChatRepository(db)
	userChatRepo := mongo.NewUserChatRepository(db)

	// Initialize rate limiter
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Initialize LLM router with providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)

	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}

	provider, err := llmRouter.GetProvider(llmRouter.DefaultProvider())
	if err != nil {
		log.Fatal().Err(err).Msg("default LLM provider unavailable")
	}

	log.Info().
		Strs("providers", llmRouter.ListProviders()).
		Str("default", llmRouter.DefaultProvider()).
		Msg("LLM providers initialized")

	// Initialize services
	chatService := service.NewChatService(chatRepo, userChatRepo, provider, provider, provider)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, cfg.Security.MaxImageBytes)
	userChatHandler := handler.NewUserChatHandler(chatService)

	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// LLM providers
		r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

		// Chat listing index
		r.Get("/userchats", userChatHandler.List)

		// Chat routes
		r.Route("/chats", func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/", chatHandler.Create)

			r.Route("/{chatID}", func(r chi.Router) {
				r.Get("/", chatHandler.Get)
				r.Put("/", chatHandler.ProcessTurn)
				r.Patch("/title", chatHandler.Rename)
				r.Delete("/", chatHandler.Delete)
			})
		})
	})

	return r
}
