package remote

import (
	"context"

	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/bonial-oss/monitor-registry/pkg/remote/httpapi"
	"github.com/bonial-oss/monitor-registry/pkg/remote/null"
	"github.com/bonial-oss/monitor-registry/pkg/remote/site24x7"
	"github.com/pkg/errors"
)

// Interface is the interface for a remote monitor store. The remote store is
// the system-of-record: the local registry is only mutated after a remote
// operation confirmed.
type Interface interface {
	// Create registers the monitor with the remote store. Must return an
	// error if the remote did not confirm the creation.
	Create(ctx context.Context, monitor *models.Monitor) error

	// Delete removes the monitor with the given ID from the remote store.
	// Deleting an ID the remote does not know must not be an error.
	Delete(ctx context.Context, id string) error

	// List returns all monitor records held by the remote store, in the
	// remote's order. Returned monitors are raw and may be invalid; callers
	// are expected to validate them.
	List(ctx context.Context) ([]*models.Monitor, error)
}

// New creates a new remote store by name. Returns an error if the named
// remote store is not supported.
func New(name string, c config.RemoteConfig) (Interface, error) {
	switch name {
	case config.RemoteHTTPAPI:
		return httpapi.NewClient(c.HTTPAPI)
	case config.RemoteSite24x7:
		return site24x7.NewRemote(c.Site24x7), nil
	case config.RemoteNull:
		return &null.Remote{}, nil
	default:
		return nil, errors.Errorf("unsupported remote store %q", name)
	}
}
