package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryClient_Contributors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		handler      http.HandlerFunc
		owner        string
		repo         string
		limit        int
		want         []app.Contributor
		wantErr      bool
		wantErrCheck func(error) bool
	}{
		{
			name:    "empty owner",
			owner:   "",
			repo:    "hello-world",
			wantErr: true,
		},
		{
			name: "valid response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/repos/octocat/hello-world/contributors" {
					http.NotFound(w, r)
					return
				}
				if got := r.URL.Query().Get("per_page"); got != "2" {
					http.Error(w, "unexpected per_page "+got, http.StatusBadRequest)
					return
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token" {
					http.Error(w, "unexpected authorization "+got, http.StatusUnauthorized)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[
					{"login": "octocat", "html_url": "https://github.com/octocat", "contributions": 32},
					{"login": "hubot", "html_url": "https://github.com/hubot", "contributions": 7}
				]`))
			},
			owner: "octocat",
			repo:  "hello-world",
			limit: 2,
			want: []app.Contributor{
				{Login: "octocat", HTMLURL: "https://github.com/octocat", Contributions: 32},
				{Login: "hubot", HTMLURL: "https://github.com/hubot", Contributions: 7},
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			},
			owner:        "octocat",
			repo:         "missing",
			wantErr:      true,
			wantErrCheck: app.IsNotFoundError,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			owner:   "octocat",
			repo:    "hello-world",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler
			if handler == nil {
				handler = func(w http.ResponseWriter, r *http.Request) {
					t.Error("unexpected api call")
				}
			}
			server := httptest.NewServer(handler)
			defer server.Close()

			c, err := NewLibraryClient(server.Client(), server.URL, "token")
			require.NoError(t, err)

			got, err := c.Contributors(context.Background(), tt.owner, tt.repo, tt.limit)
			require.Equal(t, tt.wantErr, err != nil, "error: %v", err)
			assert.Equal(t, tt.want, got)
			if tt.wantErrCheck != nil {
				assert.True(t, tt.wantErrCheck(err), "unexpected error kind: %v", err)
			}
		})
	}
}
