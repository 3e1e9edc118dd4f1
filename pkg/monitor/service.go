package monitor

import (
	"context"
	"fmt"

	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/bonial-oss/monitor-registry/pkg/monitor/metrics"
	"github.com/bonial-oss/monitor-registry/pkg/registry"
	"github.com/bonial-oss/monitor-registry/pkg/remote"
	"github.com/bonial-oss/monitor-registry/pkg/schedule"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "monitor-service")

const (
	opCreate  = "create"
	opDelete  = "delete"
	opRefresh = "refresh"
)

// RemoteSyncError is returned when a remote store operation fails. The local
// registry is guaranteed unchanged whenever it is returned.
type RemoteSyncError struct {
	Op  string
	Err error
}

func (e *RemoteSyncError) Error() string {
	return fmt.Sprintf("remote sync failed during %s: %v", e.Op, e.Err)
}

func (e *RemoteSyncError) Unwrap() error {
	return e.Err
}

// Service defines the interface for a service that takes care of creating,
// deleting and listing monitors. It is the only component that mutates the
// registry, and it does so strictly after the remote store confirmed the
// operation.
type Service interface {
	// ListMonitors returns all registered monitors, newest first.
	ListMonitors() []*models.Monitor

	// CreateMonitor validates the given fields, registers the monitor with
	// the remote store and, on confirmation, with the local registry. On
	// failure the registry is unchanged and the monitor never existed from
	// the registry's point of view.
	CreateMonitor(ctx context.Context, name, url, cadence, contact string) (*models.Monitor, error)

	// DeleteMonitor removes the monitor with the given ID, remote first.
	// Deleting an ID that is already absent is not an error.
	DeleteMonitor(ctx context.Context, id string) error

	// Refresh replaces the registry contents with the remote state,
	// preserving the remote's order. Remote records that fail validation
	// are skipped, not fatal. On total fetch failure the registry is left
	// at its prior state.
	Refresh(ctx context.Context) ([]*models.Monitor, error)

	// DescribeCadence renders a human readable description of a cadence
	// expression for display.
	DescribeCadence(cadence string) (string, error)
}

type service struct {
	remote remote.Interface
	store  *registry.Store
}

// NewService creates a new Service backed by the remote store named in
// options and by store. Returns an error if the remote store cannot be
// initialized.
func NewService(options *config.Options, store *registry.Store) (Service, error) {
	rem, err := remote.New(options.RemoteName, options.RemoteConfig)
	if err != nil {
		return nil, err
	}

	return NewServiceWithRemote(rem, store), nil
}

// NewServiceWithRemote creates a new Service on an already constructed
// remote store. This is mainly useful for injecting fakes in tests.
func NewServiceWithRemote(rem remote.Interface, store *registry.Store) Service {
	return &service{
		remote: rem,
		store:  store,
	}
}

// ListMonitors implements Service.
func (s *service) ListMonitors() []*models.Monitor {
	return s.store.List()
}

// CreateMonitor implements Service.
func (s *service) CreateMonitor(ctx context.Context, name, url, cadence, contact string) (*models.Monitor, error) {
	monitor, err := models.New(name, url, cadence, contact)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			metrics.ValidationErrorsTotal.WithLabelValues(validationErr.FieldName).Inc()
		}

		// Locally invalid input never reaches the remote store.
		return nil, err
	}

	err = s.remote.Create(ctx, monitor)
	if err != nil {
		metrics.RemoteSyncErrorsTotal.WithLabelValues(opCreate).Inc()
		return nil, &RemoteSyncError{Op: opCreate, Err: err}
	}

	err = s.store.Insert(monitor)
	if err != nil {
		// Unreachable with random IDs. The remote store now holds a monitor
		// the registry refused, which an operator has to resolve.
		log.WithError(err).WithField("monitor", monitor.Name).Error("registry rejected confirmed monitor")
		return nil, errors.Wrap(err, "failed to register confirmed monitor")
	}

	metrics.MonitorsCreatedTotal.WithLabelValues(monitor.Name).Inc()
	log.WithFields(logrus.Fields{"monitor": monitor.Name, "id": monitor.ID}).Info("monitor created")

	return monitor, nil
}

// DeleteMonitor implements Service.
func (s *service) DeleteMonitor(ctx context.Context, id string) error {
	err := s.remote.Delete(ctx, id)
	if err != nil {
		metrics.RemoteSyncErrorsTotal.WithLabelValues(opDelete).Inc()
		return &RemoteSyncError{Op: opDelete, Err: err}
	}

	removed := s.store.Remove(id)
	if !removed {
		log.WithField("id", id).Debug("monitor was not present")
	} else {
		metrics.MonitorsDeletedTotal.Inc()
		log.WithField("id", id).Info("monitor deleted")
	}

	return nil
}

// Refresh implements Service.
func (s *service) Refresh(ctx context.Context) ([]*models.Monitor, error) {
	records, err := s.remote.List(ctx)
	if err != nil {
		metrics.RemoteSyncErrorsTotal.WithLabelValues(opRefresh).Inc()
		return nil, &RemoteSyncError{Op: opRefresh, Err: err}
	}

	monitors := make([]*models.Monitor, 0, len(records))

	for _, record := range records {
		err := record.Validate()
		if err != nil {
			metrics.RefreshSkippedRecordsTotal.Inc()
			log.WithError(err).WithField("id", record.ID).Warn("skipping invalid remote record")
			continue
		}

		monitors = append(monitors, record)
	}

	s.store.Replace(monitors)
	log.WithField("count", len(monitors)).Info("registry refreshed from remote store")

	return s.store.List(), nil
}

// DescribeCadence implements Service.
func (s *service) DescribeCadence(cadence string) (string, error) {
	return schedule.Describe(cadence)
}
