package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sld/internal/models"
	"sld/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApiController() (*ApiController, *models.ProfileStore, *models.GroupStore, *testutil.MockCache) {
	profiles := models.NewProfileStore()
	groups := models.NewGroupStore()
	cache := testutil.NewMockCache()
	return NewApiController(&testutil.MockLogger{}, profiles, groups, cache), profiles, groups, cache
}

func TestGetProfiles_ReturnsRecords(t *testing.T) {
	ac, profiles, _, _ := newTestApiController()
	profiles.Upsert("76561198000000001", "friend", time.Now())

	w := httptest.NewRecorder()
	ac.GetProfiles(w, httptest.NewRequest(http.MethodGet, "/profiles", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var recs []models.StoredProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "76561198000000001", recs[0].ID)
	assert.Equal(t, "friend", recs[0].Note)
}

func TestGetProfiles_SecondHitComesFromCache(t *testing.T) {
	ac, profiles, _, cache := newTestApiController()
	profiles.Upsert("76561198000000001", "", time.Now())

	w := httptest.NewRecorder()
	ac.GetProfiles(w, httptest.NewRequest(http.MethodGet, "/profiles", nil))
	first := w.Body.String()

	_, cached := cache.Get("profiles")
	require.True(t, cached)

	// A store change without invalidation is not visible, proving the
	// second response came from the cache.
	profiles.Upsert("76561198000000002", "", time.Now())

	w = httptest.NewRecorder()
	ac.GetProfiles(w, httptest.NewRequest(http.MethodGet, "/profiles", nil))
	assert.Equal(t, first, w.Body.String())
}

func TestGetProfiles_InvalidationRefreshes(t *testing.T) {
	ac, profiles, _, cache := newTestApiController()
	profiles.Upsert("76561198000000001", "", time.Now())

	w := httptest.NewRecorder()
	ac.GetProfiles(w, httptest.NewRequest(http.MethodGet, "/profiles", nil))

	profiles.Upsert("76561198000000002", "", time.Now())
	cache.Del("profiles")

	w = httptest.NewRecorder()
	ac.GetProfiles(w, httptest.NewRequest(http.MethodGet, "/profiles", nil))

	var recs []models.StoredProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	assert.Len(t, recs, 2)
}

func TestGetGroups_ReturnsRecords(t *testing.T) {
	ac, _, groups, _ := newTestApiController()
	groups.Upsert(models.StoredGroup{
		Key:  "groups:valvesoftware",
		URL:  "https://steamcommunity.com/groups/ValveSoftware",
		Name: "ValveSoftware",
	}, "", time.Now())

	w := httptest.NewRecorder()
	ac.GetGroups(w, httptest.NewRequest(http.MethodGet, "/groups", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var recs []models.StoredGroup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "groups:valvesoftware", recs[0].Key)
}

func TestGetProfiles_EmptyCollectionIsJSONArray(t *testing.T) {
	ac, _, _, _ := newTestApiController()

	w := httptest.NewRecorder()
	ac.GetProfiles(w, httptest.NewRequest(http.MethodGet, "/profiles", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
