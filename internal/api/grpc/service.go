package grpc

import (
	"context"

	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppService can return contributors of github repository.
type AppService interface {
	Contributors(
		ctx context.Context,
		owner string,
		name string,
		limit int,
	) ([]app.Contributor, error)
}

// Service implements ServiceServer definition, acting as a direct proxy to AppService.
type Service struct {
	appService AppService
}

// NewService returns new Service instance
func NewService(appService AppService) *Service {
	return &Service{
		appService: appService,
	}
}

// List calls service and returns reply.
func (s *Service) List(ctx context.Context, r *Request) (*Reply, error) {
	contributors, err := s.appService.Contributors(
		ctx,
		r.Organization,
		r.Repository,
		int(r.Limit),
	)
	if err != nil {
		return nil, status.Error(errorCode(err), errors.Wrap(err, "service.List").Error())
	}

	replyContributors := make([]*Contributor, 0, len(contributors))
	for _, c := range contributors {
		replyContributors = append(replyContributors, &Contributor{
			Login:         c.Login,
			HTMLURL:       c.HTMLURL,
			Contributions: int32(c.Contributions),
		})
	}
	return &Reply{
		Contributors: replyContributors,
	}, nil
}

func errorCode(err error) codes.Code {
	switch {
	case app.IsInvalidRequestError(err):
		return codes.InvalidArgument
	case app.IsNotFoundError(err):
		return codes.NotFound
	case app.IsScheduledForLaterError(err):
		return codes.Unavailable
	case app.IsTooManyRequestsError(err):
		return codes.ResourceExhausted
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Internal
	}
}
