package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/gameroster/roster-system/docs" // Registers the swagger doc
	"github.com/gameroster/roster-system/handlers"
	"github.com/gameroster/roster-system/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public routes
	router.Post("/login", authHandler.Login)
	router.Get("/swagger/*", httpSwagger.Handler())

	// Protected routes require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/user", authHandler.CurrentUser)
		r.Post("/new_player", playerHandler.CreateNewPlayer)
		r.Post("/new_game", gameHandler.CreateNewGame)
		r.Post("/add_player_to_game", gameHandler.AddPlayerToGame)
	})
}
