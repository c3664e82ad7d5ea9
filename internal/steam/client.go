package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sld/internal/providers"
	"sld/internal/structures"
	"time"

	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"
)

// ErrUnresolved covers every resolution failure the caller may see:
// unknown vanity, service error, timeout. Callers skip, never retry.
var ErrUnresolved = fmt.Errorf("could not resolve")

type SteamClientInterface interface {
	ResolveVanity(ctx context.Context, vanity string) (string, error)
}

// SteamClient calls the Steam Web API ResolveVanityURL endpoint. It
// keeps its own small response cache so repeated vanity lookups within
// the TTL do not leave the process.
type SteamClient struct {
	http     *http.Client
	endpoint string
	apiKey   string
	cache    *freecache.Cache
	cacheTTL int
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

const vanityCacheSize = 512 * 1024

func NewSteamClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) SteamClientInterface {
	return &SteamClient{
		http: &http.Client{
			Timeout: conf.Resolver.Timeout,
		},
		endpoint: conf.Resolver.Endpoint,
		apiKey:   conf.Resolver.APIKey,
		cache:    freecache.NewCache(vanityCacheSize),
		cacheTTL: int(conf.Resolver.CacheTTL.Seconds()),
		logger:   logger,
		metrics:  metrics,
	}
}

type vanityResponse struct {
	Response struct {
		SteamID string `json:"steamid"`
		Success int    `json:"success"`
	} `json:"response"`
}

func (c *SteamClient) ResolveVanity(ctx context.Context, vanity string) (string, error) {
	if cached, err := c.cache.Get([]byte(vanity)); err == nil {
		return string(cached), nil
	}

	start := time.Now()
	id, err := c.resolveRemote(ctx, vanity)
	c.metrics.ObserveResolveDuration(time.Since(start))

	if err != nil {
		c.metrics.IncResolutions("fail")
		c.logger.Debugf(providers.TypeMessage, "Vanity %q not resolved: %s", vanity, err)
		return "", ErrUnresolved
	}

	c.metrics.IncResolutions("ok")
	_ = c.cache.Set([]byte(vanity), []byte(id), c.cacheTTL)
	return id, nil
}

func (c *SteamClient) resolveRemote(ctx context.Context, vanity string) (string, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("vanityurl", vanity)

	reqURL := c.endpoint + "/ISteamUser/ResolveVanityURL/v1/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("steam api status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", err
	}

	var parsed vanityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.Response.Success != 1 || parsed.Response.SteamID == "" {
		return "", fmt.Errorf("vanity not found")
	}
	return parsed.Response.SteamID, nil
}
