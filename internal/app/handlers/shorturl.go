package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/ilya-burinskiy/webapis/internal/app/logger"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
)

const shortURLNotFound = "No short URL found for the given input"

// Create short URL from form field url. Invalid URLs are reported in a 200 response
func (h Handlers) CreateShortURL(shortener services.URLShortener) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		shortURL, err := shortener.Shorten(r.Context(), r.FormValue("url"))
		if err != nil {
			if errors.Is(err, services.ErrInvalidURL) {
				writeError(w, http.StatusOK, services.ErrInvalidURL.Error())
				return
			}
			handleError(w, r, err, shortURLNotFound)
			return
		}

		writeJSON(w, http.StatusOK, shortURL)
	}
}

// Redirect to original URL
func (h Handlers) GetShortURL(shortener services.URLShortener) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		handle, err := intParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Wrong format")
			return
		}

		shortURL, err := shortener.Resolve(r.Context(), handle)
		if err != nil {
			handleError(w, r, err, shortURLNotFound)
			return
		}

		http.Redirect(w, r, shortURL.OriginalURL, http.StatusSeeOther)
	}
}

// QR code of the short URL
func (h Handlers) GetShortURLQRCode(shortener services.URLShortener) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		handle, err := intParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Wrong format")
			return
		}

		shortURL, err := shortener.Resolve(r.Context(), handle)
		if err != nil {
			handleError(w, r, err, shortURLNotFound)
			return
		}

		png, err := qrcode.Encode(h.config.BaseURL+"/api/shorturl/"+strconv.Itoa(shortURL.Handle), qrcode.Medium, 256)
		if err != nil {
			handleError(w, r, err, shortURLNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			logger.FromContext(r.Context()).Error("failed to write qr code", zap.Error(err))
		}
	}
}
