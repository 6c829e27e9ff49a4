package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/webapis/internal/app/cache"
	"github.com/ilya-burinskiy/webapis/internal/app/logger"
	"github.com/ilya-burinskiy/webapis/internal/app/models"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

type shortenForm struct {
	URL string `form:"url" validate:"required,url,absurl"`
}

// URLShortener
type URLShortener struct {
	store storage.Storage
	cache cache.Cache
}

// NewURLShortener. nil cache disables caching
func NewURLShortener(store storage.Storage, c cache.Cache) URLShortener {
	if c == nil {
		c = cache.NopCache{}
	}
	return URLShortener{store: store, cache: c}
}

// Shorten returns the existing short URL for originalURL or creates the next one
func (s URLShortener) Shorten(ctx context.Context, originalURL string) (models.ShortURL, error) {
	if err := validateForm(shortenForm{URL: originalURL}); err != nil {
		return models.ShortURL{}, ErrInvalidURL
	}

	return s.store.FindOrCreateShortURL(ctx, originalURL)
}

// Resolve handle into short URL
func (s URLShortener) Resolve(ctx context.Context, handle int) (models.ShortURL, error) {
	shortURL, ok, err := s.cache.Get(ctx, handle)
	if err != nil {
		logger.FromContext(ctx).Warn("cache lookup failed", zap.Int("handle", handle), zap.Error(err))
	}
	if ok {
		return shortURL, nil
	}

	shortURL, err = s.store.FindShortURL(ctx, handle)
	if err != nil {
		return models.ShortURL{}, err
	}

	if err := s.cache.Set(ctx, shortURL); err != nil {
		logger.FromContext(ctx).Warn("cache store failed", zap.Int("handle", handle), zap.Error(err))
	}

	return shortURL, nil
}
