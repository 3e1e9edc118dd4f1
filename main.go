package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dario.cat/mergo"
	"github.com/bonial-oss/monitor-registry/pkg/api"
	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/monitor"
	"github.com/bonial-oss/monitor-registry/pkg/registry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	debug bool

	log = logrus.WithField("component", "main")
)

// NewRootCommand creates a new *cobra.Command that is used as the root
// command for monitor-registry.
func NewRootCommand() *cobra.Command {
	options := config.NewDefaultOptions()

	cmd := &cobra.Command{
		Use:           "monitor-registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := options.Validate()
			if err != nil {
				return err
			}

			return Run(cmd.Context(), options)
		},
	}

	options.AddFlags(cmd)

	return cmd
}

func main() {
	cmd := NewRootCommand()

	cmd.PersistentFlags().BoolVar(&debug, "debug", debug, "Enable debug logging.")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHTTPServer builds the API server. The header timeout bounds how long a
// client may dribble request headers before the connection is dropped.
func newHTTPServer(options *config.Options, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              options.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run wires up the registry and serves the API until a shutdown signal.
func Run(ctx context.Context, options *config.Options) error {
	if options.RemoteConfigFile != "" {
		log.WithField("config-file", options.RemoteConfigFile).Debug("loading remote store config")

		remoteConfig, err := config.ReadRemoteConfig(options.RemoteConfigFile)
		if err != nil {
			return errors.Wrapf(err, "failed to load remote store config from file")
		}

		err = mergo.Merge(&options.RemoteConfig, remoteConfig, mergo.WithOverride)
		if err != nil {
			return errors.Wrapf(err, "failed to merge remote store configs")
		}

		// The file may have overridden values that were already validated.
		err = options.Validate()
		if err != nil {
			return errors.Wrapf(err, "invalid remote store config")
		}
	}

	store := registry.NewStore()

	svc, err := monitor.NewService(options, store)
	if err != nil {
		return errors.Wrapf(err, "failed to initialize monitor service")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = svc.Refresh(ctx)
	if err != nil {
		// The registry starts empty and the remote store remains the
		// system-of-record; callers may retry via the API.
		log.WithError(err).Warn("initial refresh failed, starting with an empty registry")
	}

	server := newHTTPServer(options, api.NewServer(svc, options))

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.WithField("addr", options.ListenAddr).Info("registry API listening")

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
