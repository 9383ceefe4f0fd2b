// Package sptrans implements the routes.Provider port against the SPTrans
// Olho Vivo API.
package sptrans

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"sync"
	"time"

	"bussp-service/internal/routes"
	"bussp-service/pkg/redis"
)

const (
	positionsCacheTTL = 15 * time.Second
	searchCacheTTL    = 10 * time.Minute
)

// Client talks to the SPTrans API. The API authenticates a session via
// cookie after a token handshake; the client authenticates lazily and
// re-authenticates once on 401.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	cache   *redis.Client // optional

	mu     sync.Mutex
	authed bool
}

// NewClient creates an SPTrans client. The Redis cache may be nil, in which
// case every call hits the upstream API.
func NewClient(baseURL, token string, cache *redis.Client) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second, Jar: jar},
		baseURL: baseURL,
		token:   token,
		cache:   cache,
	}
}

// Search resolves routes matching a free-text query via /Linha/Buscar.
func (c *Client) Search(ctx context.Context, query string) ([]routes.Route, error) {
	if c.cache != nil {
		if data, err := c.cache.CachedRouteSearch(ctx, query); err == nil {
			var cached []routes.Route
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	var lines []lineInfo
	if err := c.getJSON(ctx, "/Linha/Buscar", url.Values{"termosBusca": {query}}, &lines); err != nil {
		return nil, fmt.Errorf("sptrans: search %q: %w", query, err)
	}

	result := make([]routes.Route, 0, len(lines))
	for _, l := range lines {
		result = append(result, routes.Route{
			Code: l.Code,
			ID: routes.RouteID{
				BusLine:   fmt.Sprintf("%s-%d", l.LineNumber, l.LineSuffix),
				Direction: l.Direction,
			},
		})
	}

	if c.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := c.cache.CacheRouteSearch(ctx, query, data, searchCacheTTL); err != nil {
				log.Printf("[sptrans] search cache write failed: %v", err)
			}
		}
	}
	return result, nil
}

// Positions returns the current vehicle positions for each route via
// /Posicao/Linha. A route whose query fails is skipped, mirroring the
// best-effort nature of the upstream feed.
func (c *Client) Positions(ctx context.Context, rts []routes.Route) ([]routes.Position, error) {
	var all []routes.Position
	for _, rt := range rts {
		positions, err := c.linePositions(ctx, rt)
		if err != nil {
			log.Printf("[sptrans] positions for line %s: %v", rt.ID.BusLine, err)
			continue
		}
		all = append(all, positions...)
	}
	return all, nil
}

func (c *Client) linePositions(ctx context.Context, rt routes.Route) ([]routes.Position, error) {
	if c.cache != nil {
		if data, err := c.cache.CachedLinePositions(ctx, rt.Code); err == nil {
			var cached []routes.Position
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	var resp positionsResponse
	query := url.Values{"codigoLinha": {strconv.FormatInt(rt.Code, 10)}}
	if err := c.getJSON(ctx, "/Posicao/Linha", query, &resp); err != nil {
		return nil, err
	}

	positions := make([]routes.Position, 0, len(resp.Vehicles))
	for _, v := range resp.Vehicles {
		positions = append(positions, routes.Position{
			ID:        rt.ID,
			Coord:     routes.Coordinate{Lat: v.Lat, Lng: v.Lng},
			UpdatedAt: v.UpdatedAt,
		})
	}

	if c.cache != nil {
		if data, err := json.Marshal(positions); err == nil {
			if err := c.cache.CacheLinePositions(ctx, rt.Code, data, positionsCacheTTL); err != nil {
				log.Printf("[sptrans] positions cache write failed: %v", err)
			}
		}
	}
	return positions, nil
}

// ---- session handling ----

func (c *Client) authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authed {
		return nil
	}

	u := c.baseURL + "/Login/Autenticar?token=" + url.QueryEscape(c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "true" {
		return fmt.Errorf("authentication rejected (status %d)", resp.StatusCode)
	}

	c.authed = true
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	if err := c.authenticate(ctx); err != nil {
		return err
	}

	status, err := c.doGet(ctx, path, query, v)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		// Session expired upstream; redo the handshake once.
		c.mu.Lock()
		c.authed = false
		c.mu.Unlock()
		if err := c.authenticate(ctx); err != nil {
			return err
		}
		status, err = c.doGet(ctx, path, query, v)
		if err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", status, path)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, v any) (int, error) {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	return resp.StatusCode, json.NewDecoder(resp.Body).Decode(v)
}
