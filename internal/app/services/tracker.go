package services

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

type userForm struct {
	Username string `form:"username" validate:"required"`
}

// ExerciseForm holds raw exercise fields as they come from the client
type ExerciseForm struct {
	Description string `form:"description" validate:"required"`
	Duration    string `form:"duration" validate:"required,number"`
	Date        string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// LogForm holds raw log query parameters
type LogForm struct {
	From  string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit string `form:"limit" validate:"omitempty,number"`
}

// ExerciseTracker
type ExerciseTracker struct {
	store storage.Storage
	now   func() time.Time
}

// NewExerciseTracker. now defaults to time.Now
func NewExerciseTracker(store storage.Storage, now func() time.Time) ExerciseTracker {
	if now == nil {
		now = time.Now
	}
	return ExerciseTracker{store: store, now: now}
}

// Create user
func (t ExerciseTracker) CreateUser(ctx context.Context, username string) (models.User, error) {
	if err := validateForm(userForm{Username: username}); err != nil {
		return models.User{}, err
	}

	return t.store.CreateUser(ctx, username)
}

// List users
func (t ExerciseTracker) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := t.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = make([]models.User, 0)
	}

	return users, nil
}

// Add exercise to user log. Date defaults to today in UTC
func (t ExerciseTracker) AddExercise(ctx context.Context, userID int, form ExerciseForm) (models.User, models.Exercise, error) {
	if err := validateForm(form); err != nil {
		return models.User{}, models.Exercise{}, err
	}

	duration, err := strconv.Atoi(form.Duration)
	if err != nil {
		return models.User{}, models.Exercise{}, &ValidationError{Field: "duration", Reason: reason("number")}
	}
	// durations are stored as 32-bit integers
	if duration > math.MaxInt32 {
		return models.User{}, models.Exercise{}, &ValidationError{Field: "duration", Reason: reason("max")}
	}

	date := models.CivilDate(t.now().UTC())
	if form.Date != "" {
		date, err = time.Parse(models.DateLayout, form.Date)
		if err != nil {
			return models.User{}, models.Exercise{}, &ValidationError{Field: "date", Reason: reason("datetime")}
		}
	}

	user, err := t.store.FindUser(ctx, userID)
	if err != nil {
		return models.User{}, models.Exercise{}, err
	}

	exercise, err := t.store.AddExercise(ctx, models.Exercise{
		UserID:      userID,
		Description: form.Description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		return models.User{}, models.Exercise{}, err
	}

	return user, exercise, nil
}

// Logs returns user exercises narrowed by form
func (t ExerciseTracker) Logs(ctx context.Context, userID int, form LogForm) (models.User, []models.Exercise, error) {
	query, err := parseLogForm(form)
	if err != nil {
		return models.User{}, nil, err
	}

	user, err := t.store.FindUser(ctx, userID)
	if err != nil {
		return models.User{}, nil, err
	}

	exercises, err := t.store.FindExercises(ctx, userID, query)
	if err != nil {
		return models.User{}, nil, err
	}
	if exercises == nil {
		exercises = make([]models.Exercise, 0)
	}

	return user, exercises, nil
}

func parseLogForm(form LogForm) (models.LogQuery, error) {
	var query models.LogQuery
	if err := validateForm(form); err != nil {
		return query, err
	}

	if form.From != "" {
		from, err := time.Parse(models.DateLayout, form.From)
		if err != nil {
			return query, &ValidationError{Field: "from", Reason: reason("datetime")}
		}
		query.From = &from
	}
	if form.To != "" {
		to, err := time.Parse(models.DateLayout, form.To)
		if err != nil {
			return query, &ValidationError{Field: "to", Reason: reason("datetime")}
		}
		query.To = &to
	}
	if form.Limit != "" {
		limit, err := strconv.Atoi(form.Limit)
		if err != nil {
			return query, &ValidationError{Field: "limit", Reason: reason("number")}
		}
		query.Limit = &limit
	}

	return query, nil
}
