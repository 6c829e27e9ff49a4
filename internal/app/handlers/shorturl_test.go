package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
	"github.com/ilya-burinskiy/webapis/internal/app/storage/mocks"
)

func TestCreateShortURLHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	storageMock := mocks.NewMockStorage(ctrl)
	storageMock.EXPECT().
		FindOrCreateShortURL(gomock.Any(), "https://www.freecodecamp.org").
		Return(models.ShortURL{Handle: 1, OriginalURL: "https://www.freecodecamp.org"}, nil)
	storageMock.EXPECT().
		FindOrCreateShortURL(gomock.Any(), "https://example.com/fails").
		Return(models.ShortURL{}, errors.New("connection reset"))
	testServer := startServer(storageMock)
	defer testServer.Close()

	testCases := []struct {
		name string
		url  string
		want want
	}{
		{
			name: "responses with short url",
			url:  "https://www.freecodecamp.org",
			want: want{
				code:        http.StatusOK,
				response:    `{"original_url":"https://www.freecodecamp.org","short_url":1}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with error for url without host",
			url:  "ftp:/bad",
			want: want{
				code:        http.StatusOK,
				response:    `{"error":"invalid url"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with error for empty url",
			url:  "",
			want: want{
				code:        http.StatusOK,
				response:    `{"error":"invalid url"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with internal server error if storage fails",
			url:  "https://example.com/fails",
			want: want{
				code:        http.StatusInternalServerError,
				response:    `{"error":"internal server error"}`,
				contentType: "application/json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			response, err := resty.New().R().
				SetFormData(map[string]string{"url": tc.url}).
				Post(testServer.URL + "/api/shorturl")
			require.NoError(t, err)

			assert.Equal(t, tc.want.code, response.StatusCode())
			assert.JSONEq(t, tc.want.response, string(response.Body()))
			assert.Equal(t, tc.want.contentType, response.Header().Get("Content-Type"))
		})
	}
}

func TestGetShortURLHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	storageMock := mocks.NewMockStorage(ctrl)
	storageMock.EXPECT().
		FindShortURL(gomock.Any(), 1).
		Return(models.ShortURL{Handle: 1, OriginalURL: "https://www.freecodecamp.org"}, nil)
	storageMock.EXPECT().
		FindShortURL(gomock.Any(), 2).
		Return(models.ShortURL{}, storage.ErrNotFound)
	testServer := startServer(storageMock)
	defer testServer.Close()

	testCases := []struct {
		name       string
		httpMethod string
		path       string
		location   string
		want       want
	}{
		{
			name:       "responses with see other",
			httpMethod: http.MethodGet,
			path:       "/api/shorturl/1",
			location:   "https://www.freecodecamp.org",
			want: want{
				code:        http.StatusSeeOther,
				contentType: "text/html; charset=utf-8",
			},
		},
		{
			name:       "responses with not found for unknown handle",
			httpMethod: http.MethodGet,
			path:       "/api/shorturl/2",
			want: want{
				code:        http.StatusNotFound,
				response:    `{"error":"No short URL found for the given input"}`,
				contentType: "application/json",
			},
		},
		{
			name:       "responses with bad request for non integer handle",
			httpMethod: http.MethodGet,
			path:       "/api/shorturl/abc",
			want: want{
				code:        http.StatusBadRequest,
				response:    `{"error":"Wrong format"}`,
				contentType: "application/json",
			},
		},
		{
			name:       "responses with method not allowed if method is not GET",
			httpMethod: http.MethodDelete,
			path:       "/api/shorturl/1",
			want: want{
				code: http.StatusMethodNotAllowed,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request, err := http.NewRequest(tc.httpMethod, testServer.URL+tc.path, nil)
			require.NoError(t, err)
			response, body := doRequest(t, request)

			assert.Equal(t, tc.want.code, response.StatusCode)
			assert.Equal(t, tc.location, response.Header.Get("Location"))
			if tc.want.contentType != "" {
				assert.Equal(t, tc.want.contentType, response.Header.Get("Content-Type"))
			}
			if tc.want.response != "" {
				assert.JSONEq(t, tc.want.response, body)
			}
		})
	}
}

func TestShortenAndFollow(t *testing.T) {
	testServer := startServer(storage.NewMapStorage(nil))
	defer testServer.Close()

	for i, original := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/a"} {
		response, err := resty.New().R().
			SetFormData(map[string]string{"url": original}).
			Post(testServer.URL + "/api/shorturl")
		require.NoError(t, err)
		wantHandle := []string{"1", "2", "1"}[i]
		assert.JSONEq(t, `{"original_url":"`+original+`","short_url":`+wantHandle+`}`, string(response.Body()))
	}

	request, err := http.NewRequest(http.MethodGet, testServer.URL+"/api/shorturl/2", nil)
	require.NoError(t, err)
	response, _ := doRequest(t, request)
	assert.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "https://example.com/b", response.Header.Get("Location"))

	form := url.Values{"url": {"https://example.com/c"}}
	request, err = http.NewRequest(http.MethodPost, testServer.URL+"/api/shorturl/", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, body := doRequest(t, request)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, `{"original_url":"https://example.com/c","short_url":3}`, body)
}

func TestGetShortURLQRCodeHandler(t *testing.T) {
	store := storage.NewMapStorage(nil)
	testServer := startServer(store)
	defer testServer.Close()

	_, err := resty.New().R().
		SetFormData(map[string]string{"url": "https://example.com"}).
		Post(testServer.URL + "/api/shorturl")
	require.NoError(t, err)

	response, err := resty.New().R().Get(testServer.URL + "/api/shorturl/1/qrcode")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode())
	assert.Equal(t, "image/png", response.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(response.Body(), []byte("\x89PNG\r\n\x1a\n")))

	response, err = resty.New().R().Get(testServer.URL + "/api/shorturl/5/qrcode")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, response.StatusCode())
}
