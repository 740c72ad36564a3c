package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/ghcontributors/internal/api/http/mock"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestServiceList(t *testing.T) {
	tests := []struct {
		name                  string
		req                   *Request
		appResultContributors []app.Contributor
		appResultErr          error
		want                  *Reply
		wantCode              codes.Code
	}{
		{
			name: "app service error",
			req: &Request{
				Organization: "octocat",
				Repository:   "hello-world",
				Limit:        7,
			},
			appResultErr: errors.New("test error"),
			wantCode:     codes.Internal,
		},
		{
			name: "invalid request",
			req: &Request{
				Repository: "hello-world",
			},
			appResultErr: app.InvalidRequestError("organization cannot be empty"),
			wantCode:     codes.InvalidArgument,
		},
		{
			name: "not found",
			req: &Request{
				Organization: "octocat",
				Repository:   "missing",
			},
			appResultErr: app.NotFoundError("not found"),
			wantCode:     codes.NotFound,
		},
		{
			name: "scheduled for later",
			req: &Request{
				Organization: "octocat",
				Repository:   "hello-world",
			},
			appResultErr: app.ScheduledForLaterError("scheduled"),
			wantCode:     codes.Unavailable,
		},
		{
			name: "too many requests",
			req: &Request{
				Organization: "octocat",
				Repository:   "hello-world",
			},
			appResultErr: app.TooManyRequestsError("slow down"),
			wantCode:     codes.ResourceExhausted,
		},
		{
			name: "app service ok, valid response",
			req: &Request{
				Organization: "octocat",
				Repository:   "hello-world",
				Limit:        2,
			},
			appResultContributors: []app.Contributor{
				{
					Login:         "l1",
					HTMLURL:       "https://github.com/l1",
					Contributions: 10,
				},
				{
					Login:         "l2",
					HTMLURL:       "https://github.com/l2",
					Contributions: 2,
				},
			},
			want: &Reply{
				Contributors: []*Contributor{
					{
						Login:         "l1",
						HTMLURL:       "https://github.com/l1",
						Contributions: 10,
					},
					{
						Login:         "l2",
						HTMLURL:       "https://github.com/l2",
						Contributions: 2,
					},
				},
			},
			wantCode: codes.OK,
		},
		{
			name: "empty response",
			req: &Request{
				Organization: "octocat",
				Repository:   "empty",
			},
			appResultContributors: nil,
			want:                  &Reply{Contributors: []*Contributor{}},
			wantCode:              codes.OK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			appService := mock.NewMockService(ctrl)
			appService.EXPECT().
				Contributors(gomock.Any(), tt.req.Organization, tt.req.Repository, int(tt.req.Limit)).
				Return(tt.appResultContributors, tt.appResultErr)

			s := &Service{appService: appService}

			got, err := s.List(context.Background(), tt.req)
			require.Equal(t, tt.wantCode, status.Code(err), "error: %v", err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestServiceOverConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appService := mock.NewMockService(ctrl)
	gomock.InOrder(
		appService.EXPECT().
			Contributors(gomock.Any(), "octocat", "hello-world", 2).
			Return([]app.Contributor{
				{Login: "octocat", HTMLURL: "https://github.com/octocat", Contributions: 32},
				{Login: "hubot", HTMLURL: "https://github.com/hubot", Contributions: 7},
			}, nil),
		appService.EXPECT().
			Contributors(gomock.Any(), "octocat", "missing", 0).
			Return(nil, app.NotFoundError("not found")),
	)

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterServiceServer(srv, NewService(appService))
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	client := NewServiceClient(conn)

	reply, err := client.List(context.Background(), &Request{
		Organization: "octocat",
		Repository:   "hello-world",
		Limit:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, []*Contributor{
		{Login: "octocat", HTMLURL: "https://github.com/octocat", Contributions: 32},
		{Login: "hubot", HTMLURL: "https://github.com/hubot", Contributions: 7},
	}, reply.Contributors)

	_, err = client.List(context.Background(), &Request{
		Organization: "octocat",
		Repository:   "missing",
	})
	assert.Equal(t, codes.NotFound, status.Code(err))

	// Raw struct with unexpected field is rejected before reaching the service.
	in, err := structpb.NewStruct(map[string]interface{}{"language": "go"})
	require.NoError(t, err)
	err = conn.Invoke(context.Background(), listMethod, in, new(structpb.Struct))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestReplyFromStruct(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]interface{}
		wantErr bool
	}{
		{name: "missing list", fields: map[string]interface{}{}, wantErr: true},
		{name: "not an object", fields: map[string]interface{}{"contributors": []interface{}{"x"}}, wantErr: true},
		{name: "empty list", fields: map[string]interface{}{"contributors": []interface{}{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := structpb.NewStruct(tt.fields)
			require.NoError(t, err)

			_, err = replyFromStruct(s)
			assert.Equal(t, tt.wantErr, err != nil, "error: %v", err)
		})
	}
}
