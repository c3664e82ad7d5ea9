package controllers

import (
	"net/http"
	"sld/internal/models"
	"sld/internal/providers"

	json "github.com/goccy/go-json"
)

// ApiController serves the read-only directory listings. Responses are
// cached; the directory service invalidates the keys on every mutation.
type ApiController struct {
	logger   providers.Logger
	profiles *models.ProfileStore
	groups   *models.GroupStore
	cache    providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, profiles *models.ProfileStore, groups *models.GroupStore, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		profiles: profiles,
		groups:   groups,
		cache:    cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetProfiles(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, "profiles", func() (any, error) {
		return ac.profiles.All(), nil
	})
}

func (ac *ApiController) GetGroups(w http.ResponseWriter, _ *http.Request) {
	ac.serveFromCacheOrCompute(w, "groups", func() (any, error) {
		return ac.groups.All(), nil
	})
}
