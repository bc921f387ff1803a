package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/auth"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/config"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/database"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/favorites"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/routes"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/utils"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg := config.LoadConfig()
	auth.SetSecret(cfg.JWTSecret)

	// Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	// Open the local favorites store
	favDB, err := sql.Open("sqlite", cfg.FavoritesDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open favorites store")
	}
	defer favDB.Close()

	favStore := favorites.NewStore(favDB)
	if err := favStore.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate favorites store")
	}
	favStore.Subscribe(func() {
		log.Debug().Msg("favorites changed")
	})

	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	// Initialize router
	router := routes.SetupRouter(client, cfg.DatabaseName, favStore, mailer)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Wrap router with CORS
	handler := c.Handler(router)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Server running")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
