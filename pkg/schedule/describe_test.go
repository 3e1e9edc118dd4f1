package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		cadence  string
		expected string
	}{
		{
			name:     "every five minutes",
			cadence:  "*/5 * * * *",
			expected: "Every 5 minutes",
		},
		{
			name:     "every minute",
			cadence:  "* * * * *",
			expected: "Every minute",
		},
		{
			name:     "step of one minute",
			cadence:  "*/1 * * * *",
			expected: "Every minute",
		},
		{
			name:     "every hour",
			cadence:  "0 * * * *",
			expected: "Every hour",
		},
		{
			name:     "every hour at fixed minute",
			cadence:  "30 * * * *",
			expected: "Every hour at minute 30",
		},
		{
			name:     "every hour at minute list",
			cadence:  "15,45 * * * *",
			expected: "Every hour at minutes 15 and 45",
		},
		{
			name:     "every two hours",
			cadence:  "0 */2 * * *",
			expected: "Every 2 hours",
		},
		{
			name:     "daily at fixed time",
			cadence:  "30 14 * * *",
			expected: "At 14:30 every day",
		},
		{
			name:     "twice a day",
			cadence:  "0 9,17 * * *",
			expected: "At 09:00 and 17:00 every day",
		},
		{
			name:     "weekly",
			cadence:  "0 8 * * 1",
			expected: "At 08:00 on Monday",
		},
		{
			name:     "weekday list",
			cadence:  "0 8 * * 1,3,5",
			expected: "At 08:00 on Monday, Wednesday and Friday",
		},
		{
			name:     "monthly",
			cadence:  "0 0 1 * *",
			expected: "At 00:00 on day 1 of the month",
		},
		{
			name:     "yearly",
			cadence:  "0 0 1 1 *",
			expected: "At 00:00 on day 1 of the month in January",
		},
		{
			name:     "minute steps on fixed hour",
			cadence:  "*/10 9 * * *",
			expected: "Every 10 minutes of hour 9",
		},
		{
			name:     "stepped day-of-week names the matched days",
			cadence:  "0 0 * * */2",
			expected: "At 00:00 on Sunday, Tuesday, Thursday and Saturday",
		},
		{
			name:     "stepped day-of-week with step three",
			cadence:  "30 8 * * */3",
			expected: "At 08:30 on Sunday, Wednesday and Saturday",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			description, err := Describe(test.cadence)
			require.NoError(t, err)
			assert.Equal(t, test.expected, description)
		})
	}
}

func TestDescribe_Pure(t *testing.T) {
	first, err := Describe(DefaultCadence)
	require.NoError(t, err)

	second, err := Describe(DefaultCadence)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDescribe_InvalidCadence(t *testing.T) {
	_, err := Describe("61 * * * *")
	require.Error(t, err)

	_, err = Describe("not a cadence")
	require.Error(t, err)
}
