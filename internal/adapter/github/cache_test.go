package github

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/ghcontributors/internal/adapter/github/mock"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedClientContributors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		cacheSize      int
		callsWithLimit []int
		callsInterval  time.Duration
		ttl            time.Duration
		wantErr        bool
		wantCalls      int
	}{
		{
			name:      "invalid cache size",
			cacheSize: 0,
			wantErr:   true,
		},
		{
			name:           "calls with same parameters",
			cacheSize:      1,
			callsWithLimit: []int{2, 2, 2, 2},
			callsInterval:  time.Microsecond,
			ttl:            time.Minute,
			wantErr:        false,
			wantCalls:      1,
		},
		{
			name:           "some calls, then calls with smaller limit",
			cacheSize:      1,
			callsWithLimit: []int{2, 2, 1, 1},
			callsInterval:  time.Microsecond,
			ttl:            time.Minute,
			wantErr:        false,
			wantCalls:      1,
		},
		{
			name:           "calls with various limits",
			cacheSize:      1,
			callsWithLimit: []int{2, 2, 3, 3, 4, 5, 2, 2, 1},
			callsInterval:  time.Microsecond,
			ttl:            time.Minute,
			wantErr:        false,
			wantCalls:      4,
		},
		{
			name:           "unlimited call covers small limits",
			cacheSize:      1,
			callsWithLimit: []int{0, 1, 2, 0},
			callsInterval:  time.Microsecond,
			ttl:            time.Minute,
			wantErr:        false,
			wantCalls:      1,
		},
		{
			name:           "limited call doesn't cover unlimited one",
			cacheSize:      1,
			callsWithLimit: []int{1, 0},
			callsInterval:  time.Microsecond,
			ttl:            time.Minute,
			wantErr:        false,
			wantCalls:      2,
		},
		{
			name:           "calls with expiring ttl",
			cacheSize:      1,
			callsWithLimit: []int{2, 2, 2, 2},
			callsInterval:  5 * time.Millisecond,
			ttl:            time.Millisecond,
			wantErr:        false,
			wantCalls:      4,
		},
	}

	contributorsResponse := []app.Contributor{
		{
			Login:         "person1",
			HTMLURL:       "https://github.com/person1",
			Contributions: 10,
		},
		{
			Login:         "person2",
			HTMLURL:       "https://github.com/person2",
			Contributions: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var clientCalls int

			client := mock.NewMockGithubClient(ctrl)
			client.EXPECT().
				Contributors(gomock.Any(), "golang", "go", gomock.Any()).
				DoAndReturn(func(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error) {
					clientCalls++
					return contributorsResponse, nil
				}).
				AnyTimes()

			cachedClient, err := NewCachedClient(client, tt.cacheSize, tt.ttl)
			assert.Equal(t, tt.wantErr, err != nil)
			if err != nil {
				return
			}

			for _, limit := range tt.callsWithLimit {
				contributors, err := cachedClient.Contributors(context.Background(), "golang", "go", limit)
				require.NoError(t, err)
				require.Equal(t, contributorsResponse[0], contributors[0])
				if limit > 0 {
					require.LessOrEqual(t, len(contributors), limit)
				}
				time.Sleep(tt.callsInterval)
			}

			assert.Equal(t, tt.wantCalls, clientCalls)
		})
	}
}

// TestCachedClientDefaultPage checks that entries holding github's default page don't answer bigger limits.
func TestCachedClientDefaultPage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	page := func(n int) []app.Contributor {
		cs := make([]app.Contributor, n)
		for i := range cs {
			cs[i] = app.Contributor{Login: fmt.Sprintf("person%d", i), Contributions: 100 - i}
		}
		return cs
	}

	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().
		Contributors(gomock.Any(), "golang", "go", gomock.Any()).
		DoAndReturn(func(ctx context.Context, owner string, name string, limit int) ([]app.Contributor, error) {
			// Github sends default page of 30 unless page size is in <1..100>.
			if limit > 0 && limit <= maxPerPage {
				return page(limit), nil
			}
			return page(30), nil
		}).
		Times(3)

	cachedClient, err := NewCachedClient(client, 1, time.Minute)
	require.NoError(t, err)

	contributors, err := cachedClient.Contributors(context.Background(), "golang", "go", 200)
	require.NoError(t, err)
	assert.Len(t, contributors, 30)

	contributors, err = cachedClient.Contributors(context.Background(), "golang", "go", 20)
	require.NoError(t, err)
	assert.Len(t, contributors, 20)

	contributors, err = cachedClient.Contributors(context.Background(), "golang", "go", 50)
	require.NoError(t, err)
	assert.Len(t, contributors, 50)

	// Entry for 50 doesn't cover default page request.
	contributors, err = cachedClient.Contributors(context.Background(), "golang", "go", 200)
	require.NoError(t, err)
	assert.Len(t, contributors, 30)
}

func TestCachedClientDoesntCacheErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().
		Contributors(gomock.Any(), "golang", "go", 1).
		Return(nil, errors.New("error")).
		Times(2)

	cachedClient, err := NewCachedClient(client, 1, time.Minute)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := cachedClient.Contributors(context.Background(), "golang", "go", 1)
		require.Error(t, err)
	}
}

func TestEntryCovers(t *testing.T) {
	tests := []struct {
		entryLimit int
		entryLen   int
		limit      int
		want       bool
	}{
		{entryLimit: 0, entryLen: 30, limit: 0, want: true},
		{entryLimit: 0, entryLen: 30, limit: 30, want: true},
		{entryLimit: 0, entryLen: 3, limit: 5, want: false},
		{entryLimit: 5, entryLen: 5, limit: 0, want: false},
		{entryLimit: 5, entryLen: 2, limit: 5, want: true},
		{entryLimit: 5, entryLen: 5, limit: 3, want: true},
		{entryLimit: 3, entryLen: 3, limit: 5, want: false},
		{entryLimit: 200, entryLen: 30, limit: 50, want: false},
		{entryLimit: 200, entryLen: 30, limit: 20, want: true},
		{entryLimit: 200, entryLen: 30, limit: 200, want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entryCovers(tt.entryLimit, tt.entryLen, tt.limit), "%+v", tt)
	}
}
