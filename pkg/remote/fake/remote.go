package fake

import (
	"context"

	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/stretchr/testify/mock"
)

// Remote is a fake remote store that can be used in unit tests.
type Remote struct {
	mock.Mock
}

// Create implements remote.Interface.
func (r *Remote) Create(ctx context.Context, monitor *models.Monitor) error {
	args := r.Called(ctx, monitor)

	return args.Error(0)
}

// Delete implements remote.Interface.
func (r *Remote) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)

	return args.Error(0)
}

// List implements remote.Interface.
func (r *Remote) List(ctx context.Context) ([]*models.Monitor, error) {
	args := r.Called(ctx)
	if obj, ok := args.Get(0).([]*models.Monitor); ok {
		return obj, args.Error(1)
	}

	return nil, args.Error(1)
}
