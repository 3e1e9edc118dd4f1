package config

import (
	"os"

	"sigs.k8s.io/yaml"
)

const (
	// RemoteHTTPAPI uses the registry's HTTP persistence endpoint as the
	// system-of-record.
	RemoteHTTPAPI = "httpapi"

	// RemoteSite24x7 uses Site24x7 as the system-of-record.
	RemoteSite24x7 = "site24x7"

	// RemoteNull does nothing but log create/delete/list events. This is
	// intended for testing purposes only.
	RemoteNull = "null"
)

// RemoteConfig contains the configuration for all supported remote store
// backends.
type RemoteConfig struct {
	HTTPAPI  HTTPAPIConfig  `json:"httpapi"`
	Site24x7 Site24x7Config `json:"site24x7"`
}

// HTTPAPIConfig is the configuration for the HTTP persistence endpoint.
type HTTPAPIConfig struct {
	// Endpoint is the collection URL of the persistence endpoint, e.g.
	// https://store.example.com/monitors. If not specified, the value will
	// be read from the MONITOR_REGISTRY_ENDPOINT environment variable.
	Endpoint string `json:"endpoint"`

	// AuthToken is an optional bearer token sent with every request. If not
	// specified, the value will be read from the MONITOR_REGISTRY_TOKEN
	// environment variable.
	AuthToken string `json:"authToken"`
}

// Site24x7Config is the configuration for the Site24x7 remote store backend.
type Site24x7Config struct {
	// ClientID is the OAuth2 client ID provided by Site24x7. If not
	// specified, the value will be read from the SITE24X7_CLIENT_ID
	// environment variable.
	ClientID string `json:"clientID"`

	// ClientSecret is the OAuth2 client secret provided by Site24x7. If not
	// specified, the value will be read from the SITE24X7_CLIENT_SECRET
	// environment variable.
	ClientSecret string `json:"clientSecret"`

	// RefreshToken is the OAuth2 refresh token provided by Site24x7. If not
	// specified, the value will be read from the SITE24X7_REFRESH_TOKEN
	// environment variable.
	RefreshToken string `json:"refreshToken"`

	// DefaultCadence is the cadence assumed for monitors loaded from
	// Site24x7 whose check frequency cannot be expressed as a cadence.
	DefaultCadence string `json:"defaultCadence"`

	// DefaultContact is the contact address assumed for monitors loaded
	// from Site24x7, which does not store one per monitor.
	DefaultContact string `json:"defaultContact"`
}

// NewDefaultRemoteConfig creates a new default remote store config.
func NewDefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		HTTPAPI: HTTPAPIConfig{
			Endpoint:  os.Getenv("MONITOR_REGISTRY_ENDPOINT"),
			AuthToken: os.Getenv("MONITOR_REGISTRY_TOKEN"),
		},
		Site24x7: Site24x7Config{
			ClientID:       os.Getenv("SITE24X7_CLIENT_ID"),
			ClientSecret:   os.Getenv("SITE24X7_CLIENT_SECRET"),
			RefreshToken:   os.Getenv("SITE24X7_REFRESH_TOKEN"),
			DefaultCadence: "*/5 * * * *",
			DefaultContact: "ops@example.com",
		},
	}
}

// ReadRemoteConfig reads the remote store configuration from given file.
func ReadRemoteConfig(filename string) (*RemoteConfig, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config RemoteConfig

	err = yaml.Unmarshal(buf, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
