package storage

import (
	"context"
	"errors"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

//go:generate mockgen -source=storage.go -destination=mocks/storage.go -package=mocks

// ErrNotFound is returned when the requested record does not exist
var ErrNotFound = errors.New("not found")

// Storage
type Storage interface {
	// Find short URL by original URL or create it with the next handle
	FindOrCreateShortURL(ctx context.Context, originalURL string) (models.ShortURL, error)
	// Find short URL by handle
	FindShortURL(ctx context.Context, handle int) (models.ShortURL, error)

	CreateUser(ctx context.Context, username string) (models.User, error)
	FindUser(ctx context.Context, id int) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// Add exercise, ErrNotFound if the user does not exist
	AddExercise(ctx context.Context, exercise models.Exercise) (models.Exercise, error)
	// Find user exercises in insertion order narrowed by query
	FindExercises(ctx context.Context, userID int, query models.LogQuery) ([]models.Exercise, error)

	Stats(ctx context.Context) (models.Stats, error)
	Ping(ctx context.Context) error
	Close()
}
