package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundsight/pkg/apperrors"
)

func TestParseDate(t *testing.T) {
	t.Run("accepts canonical format", func(t *testing.T) {
		d, err := ParseDate("2024-06-30")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-30", d.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "2024-6-30", "30-06-2024", "2024/06/30", "2024-06-30T00:00:00Z", "yesterday"} {
			_, err := ParseDate(in)
			require.Error(t, err, "input %q", in)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeBadRequest))
		}
	})

	t.Run("rejects calendar-invalid dates", func(t *testing.T) {
		_, err := ParseDate("2024-02-30")
		require.Error(t, err)
		_, err = ParseDate("2023-02-29")
		require.Error(t, err)
	})

	t.Run("accepts leap day in a leap year", func(t *testing.T) {
		_, err := ParseDate("2024-02-29")
		require.NoError(t, err)
	})
}

func TestDateOfIgnoresZone(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("EST", -5*3600)
	d := DateOf(time.Date(2024, 6, 30, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-07-01", d.String())
}

func TestDateOrdering(t *testing.T) {
	may := MustDate("2024-05-31")
	jun := MustDate("2024-06-30")

	assert.True(t, may.Before(jun))
	assert.True(t, jun.After(may))
	assert.True(t, may.Equal(MustDate("2024-05-31")))
	assert.Equal(t, -1, may.Compare(jun))
	assert.Equal(t, 0, jun.Compare(jun))
}

func TestDateJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(MustDate("2024-06-30"))
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-30"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-31"`), &d))
	assert.Equal(t, "2024-05-31", d.String())

	assert.Error(t, json.Unmarshal([]byte(`20240531`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &d))
}
