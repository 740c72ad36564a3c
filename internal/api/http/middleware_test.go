package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeoutMiddleware(t *testing.T) {
	t.Parallel()

	timeout := 20 * time.Millisecond

	var deadline time.Time
	var hasDeadline bool
	handler := NewTimeoutMiddleware(timeout)(func(w http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
		<-r.Context().Done()
		w.WriteHeader(http.StatusNoContent)
	})

	req, _ := http.NewRequest(http.MethodGet, "testurl", nil)
	w := httptest.NewRecorder()

	start := time.Now()
	handler(w, req)

	require.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(timeout), deadline, 10*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), timeout)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNewLogMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		requestID  string
		handler    http.HandlerFunc
		wantStatus int
		wantLevel  logrus.Level
		wantBytes  int
	}{
		{
			name:      "explicit status",
			requestID: "req-123",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
			wantLevel:  logrus.DebugLevel,
		},
		{
			name: "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			},
			wantStatus: http.StatusOK,
			wantLevel:  logrus.DebugLevel,
			wantBytes:  2,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream", http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
			wantLevel:  logrus.WarnLevel,
			wantBytes:  len("upstream\n"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, hook := test.NewNullLogger()
			l.SetLevel(logrus.DebugLevel)

			req := httptest.NewRequest(http.MethodGet, "/contributors/octocat/hello-world", nil)
			if tt.requestID != "" {
				req.Header.Set(requestIDHeader, tt.requestID)
			}
			w := httptest.NewRecorder()
			NewLogMiddleware(l)(tt.handler)(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			gotID := w.Header().Get(requestIDHeader)
			require.NotEmpty(t, gotID)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, gotID)
			}

			require.Len(t, hook.AllEntries(), 1)
			entry := hook.LastEntry()
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, http.MethodGet, entry.Data["method"])
			assert.Equal(t, "/contributors/octocat/hello-world", entry.Data["path"])
			assert.Equal(t, tt.wantStatus, entry.Data["status"])
			assert.Equal(t, tt.wantBytes, entry.Data["bytes"])
			assert.Equal(t, gotID, entry.Data["request_id"])
		})
	}
}
