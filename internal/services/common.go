// Package services holds the marketplace business rules. Each service checks
// its preconditions in order and then performs a single write.
package services

import (
	"context"
	"errors"
	"time"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"golang.org/x/sync/errgroup"
)

var now = time.Now

func internalErr(op string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Wrap(apperrors.CodeInternal, op, err)
}

// notFound maps store.ErrNotFound to code and anything else to an internal
// error.
func notFound(err error, code apperrors.Code, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.Wrap(code, op, err)
	}
	return internalErr(op, err)
}

// fetchPage runs the page query and the count query concurrently.
func fetchPage[T any](
	ctx context.Context,
	p models.Pagination,
	list func(ctx context.Context) ([]T, error),
	count func(ctx context.Context) (int, error),
) (models.Page[T], error) {
	var items []T
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Page[T]{}, internalErr("list page", err)
	}

	return models.NewPage(items, total, p), nil
}
