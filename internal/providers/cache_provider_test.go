package providers_test

import (
	"testing"

	"sld/internal/providers"
	"sld/internal/structures"
	"sld/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestCacheProvider_SetGetDel(t *testing.T) {
	conf := &structures.Config{}
	conf.Cache.Enabled = true
	conf.Cache.Size = 1

	cache := providers.NewCacheProvider(conf, &testutil.MockLogger{})

	_, ok := cache.Get("profiles")
	assert.False(t, ok)

	cache.Set("profiles", []byte(`[{"id":"1"}]`))
	val, ok := cache.Get("profiles")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[{"id":"1"}]`), val)

	cache.Del("profiles")
	_, ok = cache.Get("profiles")
	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	conf := &structures.Config{}
	conf.Cache.Enabled = false

	cache := providers.NewCacheProvider(conf, &testutil.MockLogger{})

	cache.Set("profiles", []byte("x"))
	_, ok := cache.Get("profiles")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeFallsBackToNoop(t *testing.T) {
	conf := &structures.Config{}
	conf.Cache.Enabled = true
	conf.Cache.Size = 0

	cache := providers.NewCacheProvider(conf, &testutil.MockLogger{})

	cache.Set("k", []byte("v"))
	_, ok := cache.Get("k")
	assert.False(t, ok)
}
