package null

import (
	"context"

	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "null-remote")

// Remote does not persist any monitor actions. This is useful for testing.
type Remote struct{}

// Create implements remote.Interface.
func (r *Remote) Create(_ context.Context, monitor *models.Monitor) error {
	log.WithField("monitor", monitor.Name).Info("create")
	return nil
}

// Delete implements remote.Interface.
func (r *Remote) Delete(_ context.Context, id string) error {
	log.WithField("id", id).Info("delete")
	return nil
}

// List implements remote.Interface.
func (r *Remote) List(_ context.Context) ([]*models.Monitor, error) {
	return nil, nil
}
