package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ubaidjmi/voiceai-be/internal/api/handlers"
	"github.com/ubaidjmi/voiceai-be/internal/auth"
	"github.com/ubaidjmi/voiceai-be/internal/config"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

// NewRouter creates and configures a new Chi router. Everything under the
// authenticated group requires a valid bearer token; the root, health, test
// and auth routes are public.
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	tokens *auth.TokenService,
	userService services.UserServiceProvider,
	conversationService services.ConversationServiceProvider,
	voiceSampleService services.VoiceSampleServiceProvider,
	settingsService services.SettingsServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	systemHandler := handlers.NewSystemHandler(db)
	authHandler := handlers.NewAuthHandler(userService, tokens)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	voiceSampleHandler := handlers.NewVoiceSampleHandler(voiceSampleService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	assistantHandler := handlers.NewAssistantHandler(voiceSampleService, cfg.TrainingDelay)
	profileHandler := handlers.NewProfileHandler(userService)
	dataHandler := handlers.NewDataHandler(userService, conversationService, voiceSampleService, settingsService)

	// Public routes
	r.Get("/", systemHandler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", systemHandler.Health)
		r.Get("/test", systemHandler.Test)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", conversationHandler.List)
				r.Post("/", conversationHandler.Create)
				r.Post("/{id}/messages", conversationHandler.AddMessage)
				r.Delete("/{id}", conversationHandler.Delete)
			})

			r.Route("/voice-samples", func(r chi.Router) {
				r.Get("/", voiceSampleHandler.List)
				r.Post("/", voiceSampleHandler.Create)
				r.Delete("/", voiceSampleHandler.Clear)
				r.Delete("/{id}", voiceSampleHandler.Delete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Put("/", settingsHandler.Update)
				r.Post("/wake-word", settingsHandler.SetWakeWord)
			})

			r.Route("/assistant", func(r chi.Router) {
				r.Post("/query", assistantHandler.Query)
				r.Post("/train-voice", assistantHandler.TrainVoice)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Post("/change-password", profileHandler.ChangePassword)
			})

			r.Get("/export", dataHandler.Export)
			r.Post("/reset", dataHandler.Reset)
		})
	})

	return r
}
