package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/booking"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/dashboard"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/models"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/schedule"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/session"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/timeutil"
	"github.com/hashiniRanasinghe/AdoraWellnessCW2-sub000/internal/utils"
)

type SessionHandler struct {
	repo     *session.Repository
	booking  *booking.Coordinator
	users    *mongo.Collection
	mailer   *utils.Mailer
	validate *validator.Validate
}

func NewSessionHandler(client *mongo.Client, dbName string, mailer *utils.Mailer) *SessionHandler {
	return &SessionHandler{
		repo:     session.NewRepository(client, dbName),
		booking:  booking.NewCoordinator(client, dbName),
		users:    client.Database(dbName).Collection("users"),
		mailer:   mailer,
		validate: validator.New(),
	}
}

type CreateSessionRequest struct {
	ClientID    string  `json:"client_id"` // optional UUID for offline-created sessions
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	SessionType string  `json:"session_type" validate:"required,oneof=online in_person hybrid"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	Timezone    string  `json:"timezone"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// buildSession turns a validated request into a Session with its instants
// computed up front in the session's declared time zone.
func buildSession(req CreateSessionRequest, instructorID string, now time.Time) (models.Session, error) {
	if req.ClientID != "" {
		if _, err := uuid.Parse(req.ClientID); err != nil {
			return models.Session{}, fmt.Errorf("client_id must be a UUID: %w", err)
		}
	}

	loc := time.UTC
	if req.Timezone != "" {
		l, err := time.LoadLocation(req.Timezone)
		if err != nil {
			return models.Session{}, fmt.Errorf("unknown timezone %q", req.Timezone)
		}
		loc = l
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return models.Session{}, fmt.Errorf("invalid date %q", req.Date)
	}

	duration, err := timeutil.MinutesBetween(req.StartTime, req.EndTime)
	if err != nil {
		return models.Session{}, err
	}
	if duration <= 0 {
		return models.Session{}, errors.New("end_time must be after start_time")
	}

	starts, err := timeutil.CombineDateAndClock(date, req.StartTime, loc)
	if err != nil {
		return models.Session{}, err
	}
	ends, err := timeutil.CombineDateAndClock(date, req.EndTime, loc)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		ID:              req.ClientID,
		InstructorID:    instructorID,
		Title:           req.Title,
		Description:     req.Description,
		SessionType:     models.SessionType(req.SessionType),
		Level:           models.Level(req.Level),
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Timezone:        req.Timezone,
		DurationMinutes: duration,
		Price:           req.Price,
		CreatedAt:       now,
		StartsAt:        starts,
		EndsAt:          ends,
	}, nil
}

// CreateSession handles an instructor publishing a new session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := r.Context().Value("userID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	newSession, err := buildSession(req, instructorID, time.Now().UTC())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.repo.Create(r.Context(), newSession)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	newSession.ID = id
	newSession.RegisteredStudents = []string{}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newSession)
}

// GetMySessions returns the calling instructor's sessions, optionally
// filtered by ?view=today|week|month|history
func (h *SessionHandler) GetMySessions(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := r.Context().Value("userID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := h.repo.FetchByInstructor(r.Context(), instructorID)
	if err != nil {
		log.Error().Err(err).Msg("fetch instructor sessions")
		http.Error(w, "Failed to fetch sessions", http.StatusInternalServerError)
		return
	}

	view := schedule.ParseFilter(r.URL.Query().Get("view"))
	sessions = schedule.Partition(sessions, time.Now(), view)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// GetDashboard returns this week's business metrics for the calling
// instructor, recomputed from a fresh fetch on every load
func (h *SessionHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := r.Context().Value("userID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := h.repo.FetchByInstructor(r.Context(), instructorID)
	if err != nil {
		log.Error().Err(err).Msg("fetch sessions for dashboard")
		http.Error(w, "Failed to fetch sessions", http.StatusInternalServerError)
		return
	}

	week := schedule.Partition(sessions, time.Now(), schedule.FilterThisWeek)
	metrics := dashboard.Aggregate(week)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

// ListSessions returns the full session catalog for browsing, optionally
// filtered by ?view=
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.repo.FetchAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch sessions")
		http.Error(w, "Failed to fetch sessions", http.StatusInternalServerError)
		return
	}

	view := schedule.ParseFilter(r.URL.Query().Get("view"))
	sessions = schedule.Partition(sessions, time.Now(), view)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// RegisterForSession adds the calling student to a session's roster
func (h *SessionHandler) RegisterForSession(w http.ResponseWriter, r *http.Request) {
	studentID, ok := r.Context().Value("userID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["id"]

	if err := h.booking.Register(r.Context(), sessionID, studentID); err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("register student")
		http.Error(w, "Failed to register, please retry", http.StatusInternalServerError)
		return
	}

	h.sendConfirmation(r, studentID, sessionID)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Registered successfully"))
}

// GetRegistration reports whether the calling student is on the roster
func (h *SessionHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	studentID, ok := r.Context().Value("userID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["id"]

	registered, err := h.booking.IsRegistered(r.Context(), sessionID, studentID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("check registration")
		http.Error(w, "Failed to check registration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"registered": registered})
}

// sendConfirmation emails the student a booking confirmation. Delivery is
// best-effort and never fails the registration.
func (h *SessionHandler) sendConfirmation(r *http.Request, studentID, sessionID string) {
	var student models.User
	err := h.users.FindOne(r.Context(), bson.M{"_id": studentID}).Decode(&student)
	if err != nil || student.Email == "" {
		return
	}
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your booking for session %s is confirmed.</p>", student.DisplayName, sessionID)
	if err := h.mailer.Send(student.Email, "Booking confirmed", body); err != nil {
		log.Warn().Err(err).Str("student_id", studentID).Msg("confirmation email failed")
	}
}
