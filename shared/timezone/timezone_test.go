package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/shared/timezone"
)

func TestNowUsesAppLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", timezone.Format(parsed, time.DateOnly))
	assert.Equal(t, timezone.GetLocation(), parsed.Location())

	_, err = timezone.Parse(time.DateOnly, "10/03/2025")
	assert.Error(t, err)
}

func TestFormatZeroTime(t *testing.T) {
	assert.Empty(t, timezone.Format(time.Time{}, time.RFC3339))
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 10, 15, 45, 12, 0, timezone.GetLocation())
	got := timezone.StartOfDay(in)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, timezone.GetLocation()), got)
}

func TestClocks(t *testing.T) {
	frozen := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, frozen, timezone.FixedClock(frozen).Now())
	assert.WithinDuration(t, time.Now(), timezone.NewClock().Now(), time.Second)
}
