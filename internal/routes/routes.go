package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/favorites"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/handlers"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/middleware"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/session"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/utils"
)

func SetupRouter(client *mongo.Client, dbName string, favStore *favorites.Store, mailer *utils.Mailer) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.MetricsMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	userHandler := handlers.NewUserHandler(client, dbName)
	sessionHandler := handlers.NewSessionHandler(client, dbName, mailer)
	favoritesHandler := handlers.NewFavoritesHandler(favStore, session.NewRepository(client, dbName))

	router.HandleFunc("/api/users/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/api/users/login", userHandler.Login).Methods("POST")
	router.Handle("/api/users/me", middleware.AuthMiddleware(http.HandlerFunc(userHandler.Me))).Methods("GET")

	// Instructor routes
	instructor := router.PathPrefix("/api/instructor").Subrouter()
	instructor.Use(middleware.InstructorAuthMiddleware)
	instructor.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	instructor.HandleFunc("/sessions", sessionHandler.GetMySessions).Methods("GET")
	instructor.HandleFunc("/dashboard", sessionHandler.GetDashboard).Methods("GET")

	// Student routes
	student := router.PathPrefix("/api").Subrouter()
	student.Use(middleware.StudentAuthMiddleware)
	student.HandleFunc("/sessions", sessionHandler.ListSessions).Methods("GET")
	student.HandleFunc("/sessions/{id}/register", sessionHandler.RegisterForSession).Methods("POST")
	student.HandleFunc("/sessions/{id}/registration", sessionHandler.GetRegistration).Methods("GET")
	student.HandleFunc("/favorites", favoritesHandler.ListFavorites).Methods("GET")
	student.HandleFunc("/favorites/entries", favoritesHandler.ListFavoriteEntries).Methods("GET")
	student.HandleFunc("/favorites/lessons", favoritesHandler.ListFavoriteLessons).Methods("GET")
	student.HandleFunc("/favorites/{lessonID}", favoritesHandler.AddFavorite).Methods("POST")
	student.HandleFunc("/favorites/{lessonID}", favoritesHandler.RemoveFavorite).Methods("DELETE")
	student.HandleFunc("/favorites/{lessonID}", favoritesHandler.GetFavorite).Methods("GET")

	return router
}
