package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		monitorName   string
		url           string
		cadence       string
		contact       string
		expectedField string
	}{
		{
			name:        "valid monitor",
			monitorName: "API",
			url:         "https://api.example.com",
			cadence:     "0 * * * *",
			contact:     "a@b.com",
		},
		{
			name:        "url with path and port",
			monitorName: "staging",
			url:         "http://staging.example.com:8080/healthz",
			cadence:     "*/5 * * * *",
			contact:     "ops@example.com",
		},
		{
			name:          "empty name",
			monitorName:   "",
			url:           "https://api.example.com",
			cadence:       "0 * * * *",
			contact:       "a@b.com",
			expectedField: "name",
		},
		{
			name:          "whitespace name",
			monitorName:   "   ",
			url:           "https://api.example.com",
			cadence:       "0 * * * *",
			contact:       "a@b.com",
			expectedField: "name",
		},
		{
			name:          "relative url",
			monitorName:   "API",
			url:           "/healthz",
			cadence:       "0 * * * *",
			contact:       "a@b.com",
			expectedField: "url",
		},
		{
			name:          "url without host",
			monitorName:   "API",
			url:           "https://",
			cadence:       "0 * * * *",
			contact:       "a@b.com",
			expectedField: "url",
		},
		{
			name:          "invalid cadence",
			monitorName:   "API",
			url:           "https://api.example.com",
			cadence:       "60 * * * *",
			contact:       "a@b.com",
			expectedField: "cadence",
		},
		{
			name:          "cadence with wrong field count",
			monitorName:   "API",
			url:           "https://api.example.com",
			cadence:       "* * *",
			contact:       "a@b.com",
			expectedField: "cadence",
		},
		{
			name:          "invalid contact",
			monitorName:   "API",
			url:           "https://api.example.com",
			cadence:       "0 * * * *",
			contact:       "not-an-email",
			expectedField: "contact",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			monitor, err := New(test.monitorName, test.url, test.cadence, test.contact)
			if test.expectedField != "" {
				require.Error(t, err)
				assert.Nil(t, monitor)

				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, test.expectedField, validationErr.FieldName)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, monitor.ID)
			assert.Equal(t, test.monitorName, monitor.Name)
			assert.Equal(t, test.url, monitor.URL)
			assert.Equal(t, test.cadence, monitor.Cadence)
			assert.Equal(t, test.contact, monitor.Contact)
			assert.False(t, monitor.CreatedAt.IsZero())
		})
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		monitor, err := New("API", "https://api.example.com", "0 * * * *", "a@b.com")
		require.NoError(t, err)
		assert.False(t, seen[monitor.ID], "duplicate ID %s", monitor.ID)
		seen[monitor.ID] = true
	}
}
