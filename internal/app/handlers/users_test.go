package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

func TestUsersHandlers(t *testing.T) {
	testServer := startServer(storage.NewMapStorage(nil))
	defer testServer.Close()
	client := resty.New().SetBaseURL(testServer.URL)

	response, err := client.R().Get("/api/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode())
	assert.JSONEq(t, `[]`, string(response.Body()))

	response, err = client.R().SetFormData(map[string]string{"username": "fcc_test"}).Post("/api/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode())
	assert.JSONEq(t, `{"username":"fcc_test","_id":"1"}`, string(response.Body()))

	response, err = client.R().SetFormData(map[string]string{"username": ""}).Post("/api/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode())
	assert.JSONEq(t, `{"error":"username is required"}`, string(response.Body()))

	response, err = client.R().SetFormData(map[string]string{"username": "fcc_test"}).Post("/api/users")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"fcc_test","_id":"2"}`, string(response.Body()))

	response, err = client.R().Get("/api/users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"username":"fcc_test","_id":"1"},{"username":"fcc_test","_id":"2"}]`, string(response.Body()))
}

func TestAddExerciseHandler(t *testing.T) {
	testServer := startServer(storage.NewMapStorage(nil))
	defer testServer.Close()
	client := resty.New().SetBaseURL(testServer.URL)

	_, err := client.R().SetFormData(map[string]string{"username": "runner"}).Post("/api/users")
	require.NoError(t, err)

	testCases := []struct {
		name string
		path string
		form map[string]string
		want want
	}{
		{
			name: "responses with exercise",
			path: "/api/users/1/exercises",
			form: map[string]string{"description": "test", "duration": "60", "date": "1990-01-01"},
			want: want{
				code:        http.StatusOK,
				response:    `{"username":"runner","description":"test","duration":60,"date":"Mon Jan 01 1990","_id":"1"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with exercise dated today without date",
			path: "/api/users/1/exercises",
			form: map[string]string{"description": "swim", "duration": "15"},
			want: want{
				code:        http.StatusOK,
				response:    `{"username":"runner","description":"swim","duration":15,"date":"Mon Jun 03 2024","_id":"1"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with not found for unknown user",
			path: "/api/users/42/exercises",
			form: map[string]string{"description": "test", "duration": "60"},
			want: want{
				code:        http.StatusNotFound,
				response:    `{"error":"Unknown userId"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with bad request for non integer user id",
			path: "/api/users/abc/exercises",
			form: map[string]string{"description": "test", "duration": "60"},
			want: want{
				code:        http.StatusBadRequest,
				response:    `{"error":"invalid user id"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with bad request for invalid duration",
			path: "/api/users/1/exercises",
			form: map[string]string{"description": "test", "duration": "an hour"},
			want: want{
				code:        http.StatusBadRequest,
				response:    `{"error":"duration must be a non-negative integer"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with bad request for too large duration",
			path: "/api/users/1/exercises",
			form: map[string]string{"description": "test", "duration": "3000000000"},
			want: want{
				code:        http.StatusBadRequest,
				response:    `{"error":"duration is too large"}`,
				contentType: "application/json",
			},
		},
		{
			name: "responses with bad request for invalid date",
			path: "/api/users/1/exercises",
			form: map[string]string{"description": "test", "duration": "5", "date": "tomorrow"},
			want: want{
				code:        http.StatusBadRequest,
				response:    `{"error":"date must be a date in YYYY-MM-DD format"}`,
				contentType: "application/json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			response, err := client.R().SetFormData(tc.form).Post(tc.path)
			require.NoError(t, err)

			assert.Equal(t, tc.want.code, response.StatusCode())
			assert.JSONEq(t, tc.want.response, string(response.Body()))
			assert.Equal(t, tc.want.contentType, response.Header().Get("Content-Type"))
		})
	}
}

func TestGetLogsHandler(t *testing.T) {
	testServer := startServer(storage.NewMapStorage(nil))
	defer testServer.Close()
	client := resty.New().SetBaseURL(testServer.URL)

	_, err := client.R().SetFormData(map[string]string{"username": "walker"}).Post("/api/users")
	require.NoError(t, err)
	for _, form := range []map[string]string{
		{"description": "first", "duration": "10", "date": "1990-01-01"},
		{"description": "second", "duration": "20", "date": "1990-01-03"},
		{"description": "third", "duration": "30", "date": "1990-01-05"},
	} {
		response, err := client.R().SetFormData(form).Post("/api/users/1/exercises")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, response.StatusCode())
	}

	const (
		first  = `{"description":"first","duration":10,"date":"Mon Jan 01 1990"}`
		second = `{"description":"second","duration":20,"date":"Wed Jan 03 1990"}`
		third  = `{"description":"third","duration":30,"date":"Fri Jan 05 1990"}`
	)

	testCases := []struct {
		name  string
		path  string
		query url.Values
		want  want
	}{
		{
			name: "responses with whole log",
			path: "/api/users/1/logs",
			want: want{
				code:     http.StatusOK,
				response: `{"username":"walker","count":3,"_id":"1","log":[` + first + `,` + second + `,` + third + `]}`,
			},
		},
		{
			name:  "responses with log narrowed by dates",
			path:  "/api/users/1/logs",
			query: url.Values{"from": {"1990-01-02"}, "to": {"1990-01-05"}},
			want: want{
				code:     http.StatusOK,
				response: `{"username":"walker","count":2,"_id":"1","log":[` + second + `,` + third + `]}`,
			},
		},
		{
			name:  "responses with log truncated by limit",
			path:  "/api/users/1/logs",
			query: url.Values{"limit": {"1"}},
			want: want{
				code:     http.StatusOK,
				response: `{"username":"walker","count":1,"_id":"1","log":[` + first + `]}`,
			},
		},
		{
			name:  "responses with empty log for zero limit",
			path:  "/api/users/1/exercises",
			query: url.Values{"limit": {"0"}},
			want: want{
				code:     http.StatusOK,
				response: `{"username":"walker","count":0,"_id":"1","log":[]}`,
			},
		},
		{
			name:  "responses with empty log for empty range",
			path:  "/api/users/1/logs",
			query: url.Values{"from": {"2000-01-01"}, "limit": {"5"}},
			want: want{
				code:     http.StatusOK,
				response: `{"username":"walker","count":0,"_id":"1","log":[]}`,
			},
		},
		{
			name:  "responses with bad request for negative limit",
			path:  "/api/users/1/logs",
			query: url.Values{"limit": {"-1"}},
			want: want{
				code:     http.StatusBadRequest,
				response: `{"error":"limit must be a non-negative integer"}`,
			},
		},
		{
			name: "responses with not found for unknown user",
			path: "/api/users/7/logs",
			want: want{
				code:     http.StatusNotFound,
				response: `{"error":"Unknown userId"}`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			response, err := client.R().SetQueryParamsFromValues(tc.query).Get(tc.path)
			require.NoError(t, err)

			assert.Equal(t, tc.want.code, response.StatusCode())
			assert.JSONEq(t, tc.want.response, string(response.Body()))
		})
	}
}
