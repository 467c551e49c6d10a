package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsStale(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name           string
		lastVerifiedAt *time.Time
		want           bool
	}{
		{
			name:           "never verified",
			lastVerifiedAt: nil,
			want:           true,
		},
		{
			name:           "verified yesterday",
			lastVerifiedAt: ago(24 * time.Hour),
			want:           false,
		},
		{
			name:           "verified just inside the horizon",
			lastVerifiedAt: ago(89 * 24 * time.Hour),
			want:           false,
		},
		{
			name:           "verified exactly at the horizon",
			lastVerifiedAt: ago(90 * 24 * time.Hour),
			want:           false,
		},
		{
			name:           "verified past the horizon",
			lastVerifiedAt: ago(91 * 24 * time.Hour),
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStale(now, tt.lastVerifiedAt, p))
		})
	}
}

// TestIsStale_AdvancingTimeFlipsClassification pins that staleness needs
// no write to change: only the clock moves.
func TestIsStale_AdvancingTimeFlipsClassification(t *testing.T) {
	p := DefaultPolicy()
	verified := now.Add(-24 * time.Hour)

	assert.False(t, IsStale(now, &verified, p))
	assert.True(t, IsStale(now.Add(120*24*time.Hour), &verified, p))
}

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}
