package config

import (
	"net/mail"

	"github.com/bonial-oss/monitor-registry/pkg/schedule"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Options holds the configurable options for monitor-registry.
type Options struct {
	// ListenAddr is the address the registry API listens on.
	ListenAddr string

	// RemoteName is the name of the remote store backend to use.
	RemoteName string

	// RemoteConfig contains the configuration for all supported remote
	// store backends.
	RemoteConfig RemoteConfig

	// RemoteConfigFile is an optional YAML file whose contents are merged
	// over RemoteConfig.
	RemoteConfigFile string

	// DefaultCadence is the cadence suggested to callers that omit one.
	DefaultCadence string

	// MutationRate limits create and delete requests per second accepted by
	// the API. MutationBurst is the accompanying burst size.
	MutationRate  float64
	MutationBurst int
}

// NewDefaultOptions creates a new *Options value with defaults set.
func NewDefaultOptions() *Options {
	return &Options{
		ListenAddr:     ":8080",
		RemoteName:     RemoteHTTPAPI,
		RemoteConfig:   NewDefaultRemoteConfig(),
		DefaultCadence: schedule.DefaultCadence,
		MutationRate:   5,
		MutationBurst:  10,
	}
}

// AddFlags adds the command line flags for all options to cmd.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", o.ListenAddr, "Address the registry API listens on.")
	cmd.Flags().StringVar(&o.RemoteName, "remote", o.RemoteName, "Name of the remote store backend. Supported: httpapi, site24x7, null.")
	cmd.Flags().StringVar(&o.RemoteConfigFile, "remote-config-file", o.RemoteConfigFile, "Location of a YAML file containing remote store configuration.")
	cmd.Flags().StringVar(&o.DefaultCadence, "default-cadence", o.DefaultCadence, "Cadence suggested to callers that do not specify one.")
	cmd.Flags().Float64Var(&o.MutationRate, "mutation-rate", o.MutationRate, "Maximum accepted create/delete requests per second.")
	cmd.Flags().IntVar(&o.MutationBurst, "mutation-burst", o.MutationBurst, "Burst size for the mutation rate limit.")
}

// Validate validates options. Returns an error on any violation.
func (o *Options) Validate() error {
	switch o.RemoteName {
	case RemoteHTTPAPI, RemoteSite24x7, RemoteNull:
	default:
		return errors.Errorf("unsupported remote store %q", o.RemoteName)
	}

	if err := schedule.Validate(o.DefaultCadence); err != nil {
		return errors.Wrap(err, "invalid default cadence")
	}

	if o.MutationRate <= 0 {
		return errors.New("mutation rate must be greater than zero")
	}

	// The site24x7 backend stamps these defaults onto every record it
	// loads, so a bad value would make refresh drop the whole registry.
	if o.RemoteName == RemoteSite24x7 {
		if err := schedule.Validate(o.RemoteConfig.Site24x7.DefaultCadence); err != nil {
			return errors.Wrap(err, "invalid site24x7 default cadence")
		}

		if _, err := mail.ParseAddress(o.RemoteConfig.Site24x7.DefaultContact); err != nil {
			return errors.Errorf("site24x7 default contact %q is not a valid email address", o.RemoteConfig.Site24x7.DefaultContact)
		}
	}

	return nil
}
