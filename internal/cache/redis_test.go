package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	c, err := NewRedisCache("not-a-redis-url")

	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestPresignKey(t *testing.T) {
	assert.Equal(t, "presign:300/first-semester/general/C101/a.pdf", PresignKey("300/first-semester/general/C101/a.pdf"))
}

func TestPresignTTL(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{in: time.Hour, want: 54 * time.Minute},
		{in: 5 * time.Minute, want: 4 * time.Minute},
		{in: time.Minute, want: 0},
		{in: 30 * time.Second, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PresignTTL(tt.in))
		})
	}
}
