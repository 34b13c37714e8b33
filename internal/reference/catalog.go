// Package reference loads the marketplace taxonomy (industries and their
// niches) and exposes it as an injectable lookup.
package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/servio/internal/contract"
	"github.com/alexanderramin/servio/internal/transport"
	"github.com/patrickmn/go-cache"
)

// TaxonomyEndpoint is fetched relative to the gateway base URL.
const TaxonomyEndpoint = contract.TaxonomyPath

const taxonomyKey = "taxonomy"

// ErrUnavailable indicates the taxonomy could not be loaded.
var ErrUnavailable = errors.New("reference data unavailable")

// Industry is a top-level category. Its subcategories are the niches roles
// are posted under.
type Industry struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Subcategories []Niche `json:"subcategories"`
}

type Niche struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog is an immutable index over a taxonomy snapshot.
type Catalog struct {
	industries []Industry
	niches     map[int64]Niche
	industryOf map[int64]int64
}

// NewCatalog indexes industries.
func NewCatalog(industries []Industry) *Catalog {
	c := &Catalog{
		industries: industries,
		niches:     make(map[int64]Niche),
		industryOf: make(map[int64]int64),
	}
	for _, ind := range industries {
		for _, n := range ind.Subcategories {
			c.niches[n.ID] = n
			c.industryOf[n.ID] = ind.ID
		}
	}
	return c
}

// HasNiche reports whether id is a known niche.
func (c *Catalog) HasNiche(id int64) bool {
	_, ok := c.niches[id]
	return ok
}

// Niche returns the niche with the given id.
func (c *Catalog) Niche(id int64) (Niche, bool) {
	n, ok := c.niches[id]
	return n, ok
}

// IndustryOf returns the industry id a niche belongs to, or 0.
func (c *Catalog) IndustryOf(nicheID int64) int64 {
	return c.industryOf[nicheID]
}

// Industries returns the taxonomy in server order.
func (c *Catalog) Industries() []Industry {
	return c.industries
}

// Provider fetches the taxonomy through the gateway and caches it for ttl.
type Provider struct {
	gateway transport.Gateway
	cache   *cache.Cache
}

// NewProvider creates a Provider. A non-positive ttl caches forever.
func NewProvider(gw transport.Gateway, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Provider{
		gateway: gw,
		cache:   cache.New(ttl, 10*time.Minute),
	}
}

// Catalog returns the cached catalog, fetching it on a miss.
func (p *Provider) Catalog(ctx context.Context) (*Catalog, error) {
	if v, found := p.cache.Get(taxonomyKey); found {
		if c, ok := v.(*Catalog); ok {
			return c, nil
		}
	}

	var industries []Industry
	resp, err := p.gateway.GetJSON(ctx, TaxonomyEndpoint, &industries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	c := NewCatalog(industries)
	p.cache.Set(taxonomyKey, c, cache.DefaultExpiration)
	return c, nil
}

// Invalidate drops the cached taxonomy.
func (p *Provider) Invalidate() {
	p.cache.Delete(taxonomyKey)
}
