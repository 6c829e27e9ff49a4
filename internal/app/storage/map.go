package storage

import (
	"context"
	"sync"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

// Inmemory storage
type MapStorage struct {
	fs *FileStorage

	mu                 sync.RWMutex
	shortURLs          []models.ShortURL
	indexOnOriginalURL map[string]int
	users              []models.User
	indexOnUserID      map[int]int
	exercises          []models.Exercise
	indexOnExerciseIDs map[int][]int
}

// New inmemory storage
func NewMapStorage(fs *FileStorage) *MapStorage {
	return &MapStorage{
		fs:                 fs,
		shortURLs:          make([]models.ShortURL, 0),
		indexOnOriginalURL: make(map[string]int),
		users:              make([]models.User, 0),
		indexOnUserID:      make(map[int]int),
		exercises:          make([]models.Exercise, 0),
		indexOnExerciseIDs: make(map[int][]int),
	}
}

// Find short URL by original URL or create it with the next handle
func (ms *MapStorage) FindOrCreateShortURL(ctx context.Context, originalURL string) (models.ShortURL, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if idx, ok := ms.indexOnOriginalURL[originalURL]; ok {
		return ms.shortURLs[idx], nil
	}

	shortURL := models.ShortURL{Handle: len(ms.shortURLs) + 1, OriginalURL: originalURL}
	ms.shortURLs = append(ms.shortURLs, shortURL)
	ms.indexOnOriginalURL[originalURL] = len(ms.shortURLs) - 1

	return shortURL, nil
}

// Find short URL by handle
func (ms *MapStorage) FindShortURL(ctx context.Context, handle int) (models.ShortURL, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	// handles are 1-based positions in shortURLs
	if handle < 1 || handle > len(ms.shortURLs) {
		return models.ShortURL{}, ErrNotFound
	}

	return ms.shortURLs[handle-1], nil
}

// Create user
func (ms *MapStorage) CreateUser(ctx context.Context, username string) (models.User, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	user := models.User{ID: len(ms.users) + 1, Username: username}
	ms.users = append(ms.users, user)
	ms.indexOnUserID[user.ID] = len(ms.users) - 1

	return user, nil
}

// Find user by id
func (ms *MapStorage) FindUser(ctx context.Context, id int) (models.User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.findUser(id)
}

func (ms *MapStorage) findUser(id int) (models.User, error) {
	idx, ok := ms.indexOnUserID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	return ms.users[idx], nil
}

// List users in id order
func (ms *MapStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]models.User, len(ms.users))
	copy(result, ms.users)

	return result, nil
}

// Add exercise
func (ms *MapStorage) AddExercise(ctx context.Context, exercise models.Exercise) (models.Exercise, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, err := ms.findUser(exercise.UserID); err != nil {
		return models.Exercise{}, err
	}

	exercise.ID = len(ms.exercises) + 1
	exercise.Date = models.CivilDate(exercise.Date)
	ms.exercises = append(ms.exercises, exercise)
	ms.indexOnExerciseIDs[exercise.UserID] = append(ms.indexOnExerciseIDs[exercise.UserID], len(ms.exercises)-1)

	return exercise, nil
}

// Find user exercises
func (ms *MapStorage) FindExercises(ctx context.Context, userID int, query models.LogQuery) ([]models.Exercise, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if _, err := ms.findUser(userID); err != nil {
		return nil, err
	}

	userExercises := make([]models.Exercise, 0, len(ms.indexOnExerciseIDs[userID]))
	for _, idx := range ms.indexOnExerciseIDs[userID] {
		userExercises = append(userExercises, ms.exercises[idx])
	}

	return query.Apply(userExercises), nil
}

// Count stored records
func (ms *MapStorage) Stats(ctx context.Context) (models.Stats, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return models.Stats{
		URLs:      len(ms.shortURLs),
		Users:     len(ms.users),
		Exercises: len(ms.exercises),
	}, nil
}

// Ping always succeeds for inmemory storage
func (ms *MapStorage) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for inmemory storage
func (ms *MapStorage) Close() {}

// Snapshot copies the whole storage state
func (ms *MapStorage) Snapshot() models.Snapshot {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	snapshot := models.Snapshot{
		ShortURLs: make([]models.ShortURL, len(ms.shortURLs)),
		Users:     make([]models.User, len(ms.users)),
		Exercises: make([]models.Exercise, len(ms.exercises)),
	}
	copy(snapshot.ShortURLs, ms.shortURLs)
	copy(snapshot.Users, ms.users)
	copy(snapshot.Exercises, ms.exercises)

	return snapshot
}

// Dump inmemory storage to file
func (ms *MapStorage) Dump() error {
	if ms.fs != nil {
		return ms.fs.Dump(ms.Snapshot())
	}

	return nil
}

// Restore inmemory storage from snapshot. Records are renumbered in snapshot order.
func (ms *MapStorage) Restore(snapshot models.Snapshot) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, s := range snapshot.ShortURLs {
		if _, ok := ms.indexOnOriginalURL[s.OriginalURL]; ok {
			continue
		}
		ms.shortURLs = append(ms.shortURLs, models.ShortURL{Handle: len(ms.shortURLs) + 1, OriginalURL: s.OriginalURL})
		ms.indexOnOriginalURL[s.OriginalURL] = len(ms.shortURLs) - 1
	}

	userIDs := make(map[int]int, len(snapshot.Users))
	for _, u := range snapshot.Users {
		user := models.User{ID: len(ms.users) + 1, Username: u.Username}
		ms.users = append(ms.users, user)
		ms.indexOnUserID[user.ID] = len(ms.users) - 1
		userIDs[u.ID] = user.ID
	}

	for _, e := range snapshot.Exercises {
		userID, ok := userIDs[e.UserID]
		if !ok {
			continue
		}
		e.ID = len(ms.exercises) + 1
		e.UserID = userID
		ms.exercises = append(ms.exercises, e)
		ms.indexOnExerciseIDs[userID] = append(ms.indexOnExerciseIDs[userID], len(ms.exercises)-1)
	}
}
