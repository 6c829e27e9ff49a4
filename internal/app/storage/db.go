package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

// Key of the advisory lock serializing handle assignment
const shortURLsLockKey int64 = 7001

type DBStorage struct {
	pool *pgxpool.Pool
}

func NewDBStorage(dsn string) (*DBStorage, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}

	return &DBStorage{
		pool: pool,
	}, nil
}

func (db *DBStorage) FindOrCreateShortURL(ctx context.Context, originalURL string) (models.ShortURL, error) {
	shortURL := models.ShortURL{OriginalURL: originalURL}
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(@key)`, pgx.NamedArgs{"key": shortURLsLockKey})
		if err != nil {
			return fmt.Errorf("failed to acquire short urls lock: %w", err)
		}

		err = tx.QueryRow(
			ctx,
			`SELECT "handle" FROM "short_urls" WHERE "original_url" = @originalURL`,
			pgx.NamedArgs{"originalURL": originalURL},
		).Scan(&shortURL.Handle)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to find short url: %w", err)
		}

		err = tx.QueryRow(
			ctx,
			`INSERT INTO "short_urls" ("handle", "original_url")
			 SELECT COALESCE(MAX("handle"), 0) + 1, @originalURL FROM "short_urls"
			 RETURNING "handle"`,
			pgx.NamedArgs{"originalURL": originalURL},
		).Scan(&shortURL.Handle)
		if err != nil {
			return fmt.Errorf("failed to create short url: %w", err)
		}

		return nil
	})
	if err != nil {
		return models.ShortURL{}, err
	}

	return shortURL, nil
}

func (db *DBStorage) FindShortURL(ctx context.Context, handle int) (models.ShortURL, error) {
	row := db.pool.QueryRow(
		ctx,
		`SELECT "handle", "original_url" FROM "short_urls" WHERE "handle" = @handle`,
		pgx.NamedArgs{"handle": handle},
	)
	var shortURL models.ShortURL
	err := row.Scan(&shortURL.Handle, &shortURL.OriginalURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ShortURL{}, ErrNotFound
		}

		return models.ShortURL{}, fmt.Errorf("failed to find short url: %w", err)
	}

	return shortURL, nil
}

func (db *DBStorage) CreateUser(ctx context.Context, username string) (models.User, error) {
	row := db.pool.QueryRow(
		ctx,
		`INSERT INTO "users" ("username") VALUES (@username) RETURNING "id"`,
		pgx.NamedArgs{"username": username},
	)
	user := models.User{Username: username}
	if err := row.Scan(&user.ID); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (db *DBStorage) FindUser(ctx context.Context, id int) (models.User, error) {
	row := db.pool.QueryRow(
		ctx,
		`SELECT "id", "username" FROM "users" WHERE "id" = @id`,
		pgx.NamedArgs{"id": id},
	)
	var user models.User
	err := row.Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}

		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (db *DBStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.pool.Query(ctx, `SELECT "id", "username" FROM "users" ORDER BY "id"`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		var user models.User
		err := row.Scan(&user.ID, &user.Username)
		return user, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (db *DBStorage) AddExercise(ctx context.Context, exercise models.Exercise) (models.Exercise, error) {
	exercise.Date = models.CivilDate(exercise.Date)
	row := db.pool.QueryRow(
		ctx,
		`INSERT INTO "exercises" ("user_id", "description", "duration", "date")
		 VALUES (@userID, @description, @duration, @date) RETURNING "id"`,
		pgx.NamedArgs{
			"userID":      exercise.UserID,
			"description": exercise.Description,
			"duration":    exercise.Duration,
			"date":        exercise.Date,
		},
	)
	if err := row.Scan(&exercise.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return models.Exercise{}, ErrNotFound
		}

		return models.Exercise{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return exercise, nil
}

func (db *DBStorage) FindExercises(ctx context.Context, userID int, query models.LogQuery) ([]models.Exercise, error) {
	if _, err := db.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	var limit *int
	if query.Limit != nil {
		l := max(*query.Limit, 0)
		limit = &l
	}
	// NULL bounds and NULL limit disable the corresponding filter
	rows, err := db.pool.Query(
		ctx,
		`SELECT "id", "user_id", "description", "duration", "date" FROM "exercises"
		 WHERE "user_id" = @userID
		   AND (@from::date IS NULL OR "date" >= @from::date)
		   AND (@to::date IS NULL OR "date" <= @to::date)
		 ORDER BY "id"
		 LIMIT @limit::bigint`,
		pgx.NamedArgs{
			"userID": userID,
			"from":   civilDatePtr(query.From),
			"to":     civilDatePtr(query.To),
			"limit":  limit,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find exercises: %w", err)
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Exercise, error) {
		var e models.Exercise
		err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Duration, &e.Date)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find exercises: %w", err)
	}

	return exercises, nil
}

func (db *DBStorage) Stats(ctx context.Context) (models.Stats, error) {
	row := db.pool.QueryRow(
		ctx,
		`SELECT
		   (SELECT COUNT(*) FROM "short_urls"),
		   (SELECT COUNT(*) FROM "users"),
		   (SELECT COUNT(*) FROM "exercises")`,
	)
	var stats models.Stats
	if err := row.Scan(&stats.URLs, &stats.Users, &stats.Exercises); err != nil {
		return models.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (db *DBStorage) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DBStorage) Close() {
	db.pool.Close()
}

func civilDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	date := models.CivilDate(*t)
	return &date
}

//go:embed db/migrations/*.sql
var migrationsDir embed.FS

func runMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "db/migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return nil
}
