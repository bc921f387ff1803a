package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/favorites"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/session"
)

type FavoritesHandler struct {
	store *favorites.Store
	repo  *session.Repository
}

func NewFavoritesHandler(store *favorites.Store, repo *session.Repository) *FavoritesHandler {
	return &FavoritesHandler{store: store, repo: repo}
}

// ListFavorites returns the favorited lesson ids, most recent first
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ids, err := h.store.ListIDs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list favorites")
		http.Error(w, "Failed to load favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ids)
}

// ListFavoriteEntries returns the favorite records with the instant each
// lesson was bookmarked, most recent first
func (h *FavoritesHandler) ListFavoriteEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Entries(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list favorite entries")
		http.Error(w, "Failed to load favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// ListFavoriteLessons returns the favorited subset of the session catalog,
// ordered by when each lesson was favorited
func (h *FavoritesHandler) ListFavoriteLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.repo.FetchAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch lesson catalog")
		http.Error(w, "Failed to fetch lessons", http.StatusInternalServerError)
		return
	}

	favorited, err := h.store.Filter(r.Context(), lessons)
	if err != nil {
		log.Error().Err(err).Msg("filter favorites")
		http.Error(w, "Failed to load favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(favorited)
}

// AddFavorite bookmarks a lesson
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonID"]

	if err := h.store.Add(r.Context(), lessonID); err != nil {
		log.Error().Err(err).Str("lesson_id", lessonID).Msg("add favorite")
		http.Error(w, "Failed to save favorite", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Favorite added"))
}

// RemoveFavorite un-bookmarks a lesson
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonID"]

	if err := h.store.Remove(r.Context(), lessonID); err != nil {
		log.Error().Err(err).Str("lesson_id", lessonID).Msg("remove favorite")
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Favorite removed"))
}

// GetFavorite reports whether a lesson is bookmarked
func (h *FavoritesHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonID"]

	favorited, err := h.store.IsFavorite(r.Context(), lessonID)
	if err != nil {
		log.Error().Err(err).Str("lesson_id", lessonID).Msg("check favorite")
		http.Error(w, "Failed to load favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"favorite": favorited})
}
