package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextListenerBackoffDoublesUpToCap(t *testing.T) {
	d := listenerRetryBase
	var seen []time.Duration
	for i := 0; i < 7; i++ {
		d = nextListenerBackoff(d)
		seen = append(seen, d)
	}

	assert.Equal(t, []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}, seen)
}
