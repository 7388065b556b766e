package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	URL                  string
	RatePerSecond        float64
	MaxRetries           int
	CacheSize            int
	Timeout              time.Duration
	RetryInitialInterval time.Duration
}

func ConfigFromViper() Config {
	return Config{
		URL:                  viper.GetString("OVERPASS_URL"),
		RatePerSecond:        viper.GetFloat64("OVERPASS_RATE_PER_SECOND"),
		MaxRetries:           viper.GetInt("OVERPASS_MAX_RETRIES"),
		CacheSize:            viper.GetInt("OVERPASS_CACHE_SIZE"),
		Timeout:              viper.GetDuration("OVERPASS_TIMEOUT"),
		RetryInitialInterval: time.Second,
	}
}

type response struct {
	Elements []osmparser.Way `json:"elements"`
}

/*
Client. fetches road ways from an overpass api instance.

requests share one rate limiter (the public instances ask for about one request per second),
429 and 5xx answers are retried with exponential backoff up to MaxRetries times.
answers are cached by query text, the same region asked twice is fetched once.
*/
type Client struct {
	httpClient *http.Client
	cfg        Config
	limiter    *rate.Limiter
	cache      *lru.Cache[string, []osmparser.Way]
	log        *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1
	}
	cache, err := lru.New[string, []osmparser.Way](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		cache:      cache,
		log:        log,
	}, nil
}

func (c *Client) FetchWays(ctx context.Context, region geo.Region) ([]osmparser.Way, error) {
	timeoutSec := int(c.cfg.Timeout.Seconds())
	if timeoutSec <= 0 {
		timeoutSec = 25
	}
	query := BuildQuery(region, timeoutSec)
	if ways, ok := c.cache.Get(query); ok {
		c.log.Debug("overpass cache hit", zap.Int("ways", len(ways)))
		return ways, nil
	}

	var body []byte
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		b, err := c.post(ctx, query)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.RetryInitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx)

	err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		c.log.Warn("overpass request failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrUpstream, "overpass query failed")
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, util.WrapErrorf(err, util.ErrUpstream, "decoding overpass response")
	}

	ways := make([]osmparser.Way, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		if el.Type != pkg.WAY_ELEMENT {
			continue
		}
		ways = append(ways, el)
	}

	c.cache.Add(query, ways)
	c.log.Info("overpass ways fetched", zap.Int("ways", len(ways)))
	return ways, nil
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("overpass returned %d: %s", e.status, e.body)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		sErr := &statusError{status: resp.StatusCode, body: truncate(string(body), 200)}
		if retryable(resp.StatusCode) {
			return nil, sErr
		}
		return nil, backoff.Permanent(sErr)
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
