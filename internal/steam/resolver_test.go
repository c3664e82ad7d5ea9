package steam

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu     sync.Mutex
	vanity map[string]string
	calls  []string
}

func (f *fakeClient) ResolveVanity(_ context.Context, vanity string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, vanity)
	if id, ok := f.vanity[vanity]; ok {
		return id, nil
	}
	return "", ErrUnresolved
}

func newFakeClient() *fakeClient {
	return &fakeClient{vanity: map[string]string{"gaben": "76561197960287930"}}
}

func TestResolveProfile_BareNumericPassthrough(t *testing.T) {
	client := newFakeClient()
	r := NewResolver(client)

	id, err := r.ResolveProfile(context.Background(), "76561198000000000")
	require.NoError(t, err)
	assert.Equal(t, "76561198000000000", id)
	assert.Empty(t, client.calls, "numeric IDs must not hit the external resolver")
}

func TestResolveProfile_NumericLengthBounds(t *testing.T) {
	r := NewResolver(newFakeClient())

	// 15 and 25 digits pass through unchanged.
	for _, id := range []string{"123456789012345", "1234567890123456789012345"} {
		got, err := r.ResolveProfile(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestResolveProfile_URLCapture(t *testing.T) {
	client := newFakeClient()
	r := NewResolver(client)

	id, err := r.ResolveProfile(context.Background(), "https://steamcommunity.com/profiles/76561198000000000")
	require.NoError(t, err)
	assert.Equal(t, "76561198000000000", id)
	assert.Empty(t, client.calls)
}

func TestResolveProfile_AngleBracketWrapping(t *testing.T) {
	r := NewResolver(newFakeClient())

	id, err := r.ResolveProfile(context.Background(), "<https://steamcommunity.com/profiles/76561198000000000>")
	require.NoError(t, err)
	assert.Equal(t, "76561198000000000", id)
}

func TestResolveProfile_VanityHitsClient(t *testing.T) {
	client := newFakeClient()
	r := NewResolver(client)

	id, err := r.ResolveProfile(context.Background(), "https://steamcommunity.com/id/gaben")
	require.NoError(t, err)
	assert.Equal(t, "76561197960287930", id)
	assert.Equal(t, []string{"gaben"}, client.calls)
}

func TestResolveProfile_UnknownVanityFails(t *testing.T) {
	r := NewResolver(newFakeClient())

	_, err := r.ResolveProfile(context.Background(), "steamcommunity.com/id/nobody")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolveProfile_GarbageFails(t *testing.T) {
	r := NewResolver(newFakeClient())

	_, err := r.ResolveProfile(context.Background(), "!!! not a thing !!!")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolveProfile_InlineFallbackForImportLines(t *testing.T) {
	client := newFakeClient()
	r := NewResolver(client)

	id, err := r.ResolveProfile(context.Background(), "my buddy: steamcommunity.com/profiles/76561198000000000 (eu)")
	require.NoError(t, err)
	assert.Equal(t, "76561198000000000", id)
	assert.Empty(t, client.calls)
}

func TestParseGroup_NumericGID(t *testing.T) {
	ref, ok := ParseGroup("103582791429521412")
	require.True(t, ok)
	assert.Equal(t, "gid:103582791429521412", ref.Key)
	assert.Equal(t, "https://steamcommunity.com/gid/103582791429521412", ref.URL)
	assert.Equal(t, "103582791429521412", ref.GID)
	assert.Empty(t, ref.Name)
}

func TestParseGroup_NameKeepsDisplayCasing(t *testing.T) {
	ref, ok := ParseGroup("https://steamcommunity.com/groups/ValveSoftware")
	require.True(t, ok)
	assert.Equal(t, "groups:valvesoftware", ref.Key)
	assert.Equal(t, "https://steamcommunity.com/groups/ValveSoftware", ref.URL)
	assert.Equal(t, "ValveSoftware", ref.Name)
}

func TestParseGroup_CaseFoldSharesKey(t *testing.T) {
	a, ok := ParseGroup("steamcommunity.com/groups/ValveSoftware")
	require.True(t, ok)
	b, ok := ParseGroup("steamcommunity.com/groups/valvesoftware")
	require.True(t, ok)
	assert.Equal(t, a.Key, b.Key)
	assert.NotEqual(t, a.URL, b.URL)
}

func TestParseGroup_Invalid(t *testing.T) {
	_, ok := ParseGroup("not a group at all ???")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "x", Normalize("  <x>  "))
	assert.Equal(t, "x", Normalize("<<x>>"))
	assert.Equal(t, "", Normalize("  "))
}

func TestPermalinks(t *testing.T) {
	assert.Equal(t, "https://steamcommunity.com/profiles/1", ProfilePermalink("1"))
	assert.Equal(t, "https://steamcommunity.com/gid/2", GroupIDPermalink("2"))
	assert.Equal(t, "https://steamcommunity.com/groups/Ab", GroupNamePermalink("Ab"))
	assert.Equal(t, "groups:ab", GroupNameKey("Ab"))
	assert.Equal(t, "gid:2", GroupIDKey("2"))
}
