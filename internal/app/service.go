package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GithubClient returns contributors of github projects.
//
// limit is a hint for the upstream api: implementations may return more elements than requested.
// Non positive limit means no limit.
//go:generate mockgen -destination mock/githubcli.go -package mock github.com/m-zajac/ghcontributors/internal/app GithubClient
type GithubClient interface {
	Contributors(ctx context.Context, owner string, name string, limit int) ([]Contributor, error)
}

// Service is main apps entry point. Provides all app functionality.
type Service struct {
	githubClient GithubClient
	timeout      time.Duration
	tracer       trace.Tracer
}

// NewService creates new Service instance.
func NewService(githubClient GithubClient, timeout time.Duration) *Service {
	return &Service{
		githubClient: githubClient,
		timeout:      timeout,
		tracer:       otel.Tracer("github.com/m-zajac/ghcontributors/internal/app"),
	}
}

// Contributors returns contributors of project `owner/name` in the order returned by github.
// At most `limit` contributors are returned, non positive limit means all of them.
func (s *Service) Contributors(
	ctx context.Context,
	owner string,
	name string,
	limit int,
) ([]Contributor, error) {
	if owner == "" {
		return nil, InvalidRequestError("organization cannot be empty")
	}
	if name == "" {
		return nil, InvalidRequestError("repository cannot be empty")
	}

	ctx, span := s.tracer.Start(ctx, "Service.Contributors", trace.WithAttributes(
		attribute.String("github.owner", owner),
		attribute.String("github.repository", name),
		attribute.Int("limit", limit),
	))
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	contributors, err := s.githubClient.Contributors(ctx, owner, name, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "retrieving contributors")
		return nil, fmt.Errorf("retrieving contributors of %s/%s: %w", owner, name, err)
	}

	contributors = Truncate(contributors, limit)
	span.SetAttributes(attribute.Int("contributors", len(contributors)))

	return contributors, nil
}
