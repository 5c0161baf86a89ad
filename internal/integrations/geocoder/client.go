package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client клиент для прямого геокодирования адресов с кешированием в Redis.
// Координаты адреса практически не меняются, поэтому TTL кеша измеряется днями.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента геокодера.
// cache может быть nil - тогда каждый запрос идет напрямую в сервис.
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Geocode возвращает координаты адреса, используя кеш при наличии
func (c *Client) Geocode(ctx context.Context, address string) (*Coordinate, error) {
	normalized := normalizeAddress(address)

	if coord, ok := c.cachedCoordinate(ctx, normalized); ok {
		return coord, nil
	}

	coord, err := c.geocodeRemote(ctx, address)
	if err != nil {
		return nil, err
	}

	c.storeCoordinate(ctx, normalized, coord)

	return coord, nil
}

// GeocodeWithGracefulDegradation возвращает координаты адреса с graceful degradation.
// При недоступности геокодера возвращает ErrServiceDegraded, что позволяет
// выполнить поиск без фильтрации по расстоянию.
func (c *Client) GeocodeWithGracefulDegradation(ctx context.Context, address string) (*Coordinate, error) {
	coord, err := c.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, ErrAddressNotFound) {
			c.log.Info("No geocoding result for address %q", address)
			return nil, err
		}

		c.log.Error("Geocoder unavailable, applying graceful degradation for address %q: %v", address, err)
		return nil, fmt.Errorf("%w: address=%q, error=%v", ErrServiceDegraded, address, err)
	}

	return coord, nil
}

func (c *Client) geocodeRemote(ctx context.Context, address string) (*Coordinate, error) {
	requestURL := fmt.Sprintf("%s/v1/geocode?address=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrAddressNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if len(parsed.Results) == 0 {
		return nil, ErrAddressNotFound
	}

	return &Coordinate{
		Latitude:  parsed.Results[0].Latitude,
		Longitude: parsed.Results[0].Longitude,
	}, nil
}

func (c *Client) cachedCoordinate(ctx context.Context, key string) (*Coordinate, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Geocoder cache read failed for %q: %v", key, err)
		}
		return nil, false
	}

	var coord Coordinate
	if err := json.Unmarshal([]byte(raw), &coord); err != nil {
		c.log.Warn("Geocoder cache entry for %q is corrupted: %v", key, err)
		return nil, false
	}

	return &coord, true
}

func (c *Client) storeCoordinate(ctx context.Context, key string, coord *Coordinate) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(coord)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, cacheKey(key), raw, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Geocoder cache write failed for %q: %v", key, err)
	}
}

func cacheKey(normalized string) string {
	return "geocode:" + normalized
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
