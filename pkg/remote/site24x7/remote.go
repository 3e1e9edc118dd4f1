// Package site24x7 implements the remote store on top of the Site24x7
// website monitor API. Site24x7 has no columns for a cron cadence or a
// contact address, so those are mapped to and from its check frequency and
// the configured defaults.
package site24x7

import (
	"context"
	"fmt"
	"strconv"

	site24x7 "github.com/Bonial-International-GmbH/site24x7-go"
	site24x7api "github.com/Bonial-International-GmbH/site24x7-go/api"
	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/bonial-oss/monitor-registry/pkg/schedule"
	"github.com/pkg/errors"
)

// Remote manages monitors in Site24x7.
type Remote struct {
	client site24x7.Client
	config config.Site24x7Config
}

// NewRemote creates a new Site24x7 remote store with given Site24x7Config.
func NewRemote(config config.Site24x7Config) *Remote {
	client := site24x7.New(site24x7.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RefreshToken: config.RefreshToken,
	})

	return &Remote{
		client: client,
		config: config,
	}
}

// Create implements remote.Interface.
func (r *Remote) Create(ctx context.Context, monitor *models.Monitor) error {
	apiMonitor := &site24x7api.Monitor{
		Type:           "URL",
		MonitorID:      monitor.ID,
		DisplayName:    monitor.Name,
		Website:        monitor.URL,
		CheckFrequency: checkFrequency(monitor.Cadence),
	}

	_, err := r.client.Monitors().Create(apiMonitor)
	if err != nil {
		return errors.Wrapf(err, "failed to create site24x7 monitor: %#v", apiMonitor)
	}

	return nil
}

// Delete implements remote.Interface. Deleting an ID that Site24x7 does not
// know is treated as success.
func (r *Remote) Delete(ctx context.Context, id string) error {
	monitors, err := r.client.Monitors().List()
	if err != nil {
		return errors.Wrap(err, "failed to list site24x7 monitors")
	}

	found := false

	for _, monitor := range monitors {
		if monitor.MonitorID == id {
			found = true
			break
		}
	}

	if !found {
		return nil
	}

	err = r.client.Monitors().Delete(id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete site24x7 monitor with ID %s", id)
	}

	return nil
}

// List implements remote.Interface.
func (r *Remote) List(ctx context.Context) ([]*models.Monitor, error) {
	apiMonitors, err := r.client.Monitors().List()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list site24x7 monitors")
	}

	monitors := make([]*models.Monitor, 0, len(apiMonitors))

	for _, apiMonitor := range apiMonitors {
		monitors = append(monitors, &models.Monitor{
			ID:      apiMonitor.MonitorID,
			Name:    apiMonitor.DisplayName,
			URL:     apiMonitor.Website,
			Cadence: r.cadence(apiMonitor.CheckFrequency),
			Contact: r.config.DefaultContact,
		})
	}

	return monitors, nil
}

// checkFrequency maps a cadence expression to the closest Site24x7 check
// frequency, which is a plain interval in minutes.
func checkFrequency(cadence string) string {
	s, err := schedule.Parse(cadence)
	if err != nil {
		return "5"
	}

	switch {
	case s.Minute.Step > 0 && s.Hour.Any:
		return strconv.Itoa(s.Minute.Step)
	case s.Hour.Step > 0:
		return strconv.Itoa(s.Hour.Step * 60)
	case len(s.Hour.Values) > 0 && len(s.Minute.Values) > 0:
		return "1440"
	case s.Hour.Any:
		return "60"
	default:
		return "5"
	}
}

// cadence maps a Site24x7 check frequency back to a cadence expression. An
// unmappable frequency falls back to the configured default cadence.
func (r *Remote) cadence(frequency string) string {
	minutes, err := strconv.Atoi(frequency)
	if err != nil || minutes < 1 {
		return r.config.DefaultCadence
	}

	switch {
	case minutes < 60:
		return fmt.Sprintf("*/%d * * * *", minutes)
	case minutes == 60:
		return "0 * * * *"
	case minutes%60 == 0 && minutes/60 <= 23:
		return fmt.Sprintf("0 */%d * * *", minutes/60)
	case minutes == 1440:
		return "0 0 * * *"
	default:
		return r.config.DefaultCadence
	}
}
