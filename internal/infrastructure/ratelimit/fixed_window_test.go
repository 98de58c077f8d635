package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindowLimiter_LimitaPorClave(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Second)
	require.NoError(t, err)

	assert.True(t, limiter.Allow("seller-1"), "la primera petición pasa")
	assert.True(t, limiter.Allow("seller-1"), "la segunda petición pasa")
	assert.False(t, limiter.Allow("seller-1"), "la tercera se bloquea")

	// Otra clave tiene su propia cuota.
	assert.True(t, limiter.Allow("seller-2"))
}

func TestFixedWindowLimiter_FallaCerrado(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	require.NoError(t, err)

	redis.Close()
	assert.False(t, limiter.Allow("seller-1"),
		"con Redis caído el limitador debe fallar cerrado")
}

func TestFixedWindowLimiter_RequiereConfiguracion(t *testing.T) {
	_, err := NewFixedWindowLimiter("", "", "test:ratelimit", 1, time.Second)
	assert.Error(t, err, "sin dirección de Redis el constructor debe fallar")

	_, err = NewFixedWindowLimiter("localhost:6379", "", "", 0, time.Second)
	assert.Error(t, err)
}
