package models

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/bonial-oss/monitor-registry/pkg/schedule"
	"github.com/google/uuid"
)

// Monitor is a container for a website monitor.
type Monitor struct {
	// ID is the unique identifier of the monitor. It is assigned exactly
	// once at construction and never reused.
	ID string `json:"id"`

	// Name is the display name of the monitor.
	Name string `json:"name"`

	// URL is the url that the monitor supervises.
	URL string `json:"url"`

	// Cadence is the cron-style expression describing how often the url
	// should be checked. A Monitor never holds an invalid cadence.
	Cadence string `json:"cadence"`

	// Contact is the email address to notify when a check fails.
	Contact string `json:"contact"`

	// CreatedAt is the time the monitor was registered.
	CreatedAt time.Time `json:"createdAt"`
}

// ValidationError describes the first field that failed validation during
// monitor construction.
type ValidationError struct {
	FieldName string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid monitor %s: %s", e.FieldName, e.Reason)
}

// DuplicateIDError indicates an attempt to register a monitor under an ID
// that is already taken. Given random ID generation this is a programming
// error, not a user facing condition.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("monitor with ID %q already registered", e.ID)
}

// New validates the given fields and constructs a Monitor with a fresh
// unique ID. It returns a *ValidationError naming the first failing field;
// no Monitor is constructed on failure.
func New(name, rawurl, cadence, contact string) (*Monitor, error) {
	monitor := &Monitor{
		ID:        uuid.NewString(),
		Name:      name,
		URL:       rawurl,
		Cadence:   cadence,
		Contact:   contact,
		CreatedAt: time.Now().UTC(),
	}

	if err := monitor.Validate(); err != nil {
		return nil, err
	}

	return monitor, nil
}

// Validate checks that the monitor satisfies all field invariants and
// returns a *ValidationError naming the first violated field. It is also
// applied to records loaded from a remote store, which are not trusted to
// be well formed.
func (m *Monitor) Validate() error {
	if m.ID == "" {
		return &ValidationError{FieldName: "id", Reason: "must not be empty"}
	}

	if strings.TrimSpace(m.Name) == "" {
		return &ValidationError{FieldName: "name", Reason: "must not be empty"}
	}

	u, err := url.Parse(m.URL)
	if err != nil {
		return &ValidationError{FieldName: "url", Reason: err.Error()}
	}

	if !u.IsAbs() || u.Host == "" {
		return &ValidationError{FieldName: "url", Reason: fmt.Sprintf("%q is not an absolute url", m.URL)}
	}

	if err := schedule.Validate(m.Cadence); err != nil {
		return &ValidationError{FieldName: "cadence", Reason: err.Error()}
	}

	if _, err := mail.ParseAddress(m.Contact); err != nil {
		return &ValidationError{FieldName: "contact", Reason: fmt.Sprintf("%q is not a valid email address", m.Contact)}
	}

	return nil
}
