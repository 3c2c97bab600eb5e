package util

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericMapConcurrentStore(t *testing.T) {
	m := NewGenericMap[string, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Store(strconv.Itoa(i), i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
	v, ok := m.Load("7")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	even := m.Values(func(v int) bool { return v%2 == 0 })
	assert.Len(t, even, 25)

	old, loaded := m.LoadAndDelete("7")
	assert.True(t, loaded)
	assert.Equal(t, 7, old)
	_, ok = m.Load("7")
	assert.False(t, ok)

	actual, loaded := m.LoadOrStore("8", 100)
	assert.True(t, loaded)
	assert.Equal(t, 8, actual)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestRSAPrivateKeyRoundTrip(t *testing.T) {
	key, generated, err := InitRSAPrivateKey("")
	require.NoError(t, err)
	assert.True(t, generated)

	parsed, generated, err := InitRSAPrivateKey(EncodeRSAPrivateKeyPEM(key))
	require.NoError(t, err)
	assert.False(t, generated)
	assert.True(t, key.Equal(parsed))

	_, err = ParseRSAPrivateKeyPEM("not a pem")
	assert.Error(t, err)

	pubPEM, err := EncodeRSAPublicKeyPEM(&key.PublicKey)
	require.NoError(t, err)
	pub, err := PEMToRSAPublicKey(pubPEM)
	require.NoError(t, err)
	assert.True(t, pub.Equal(&key.PublicKey))

	_, err = PEMToRSAPublicKey(EncodeRSAPrivateKeyPEM(key))
	assert.Error(t, err)
}

func TestGetMachineIDPrefersEnv(t *testing.T) {
	t.Setenv("MACHINE_ID", "sim-host-1")
	assert.Equal(t, "sim-host-1", GetMachineID())
}
