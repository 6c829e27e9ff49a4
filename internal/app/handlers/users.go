package handlers

import (
	"net/http"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
)

const userNotFound = "Unknown userId"

type userResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

type exerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

type logEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []logEntry `json:"log"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{Username: user.Username, ID: user.IDString()}
}

// Create user
func (h Handlers) CreateUser(tracker services.ExerciseTracker) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := tracker.CreateUser(r.Context(), r.FormValue("username"))
		if err != nil {
			handleError(w, r, err, userNotFound)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// List users
func (h Handlers) ListUsers(tracker services.ExerciseTracker) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := tracker.ListUsers(r.Context())
		if err != nil {
			handleError(w, r, err, userNotFound)
			return
		}

		response := make([]userResponse, len(users))
		for i, user := range users {
			response[i] = newUserResponse(user)
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// Add exercise
func (h Handlers) AddExercise(tracker services.ExerciseTracker) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := intParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, exercise, err := tracker.AddExercise(r.Context(), userID, services.ExerciseForm{
			Description: r.FormValue("description"),
			Duration:    r.FormValue("duration"),
			Date:        r.FormValue("date"),
		})
		if err != nil {
			handleError(w, r, err, userNotFound)
			return
		}

		writeJSON(w, http.StatusOK, exerciseResponse{
			Username:    user.Username,
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.FormattedDate(),
			ID:          user.IDString(),
		})
	}
}

// Get exercise log
func (h Handlers) GetLogs(tracker services.ExerciseTracker) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := intParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		query := r.URL.Query()
		user, exercises, err := tracker.Logs(r.Context(), userID, services.LogForm{
			From:  query.Get("from"),
			To:    query.Get("to"),
			Limit: query.Get("limit"),
		})
		if err != nil {
			handleError(w, r, err, userNotFound)
			return
		}

		response := logResponse{
			Username: user.Username,
			Count:    len(exercises),
			ID:       user.IDString(),
			Log:      make([]logEntry, len(exercises)),
		}
		for i, e := range exercises {
			response.Log[i] = logEntry{Description: e.Description, Duration: e.Duration, Date: e.FormattedDate()}
		}
		writeJSON(w, http.StatusOK, response)
	}
}
