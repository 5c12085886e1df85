// Package site implements site-specific article extraction for platforms
// whose markup defeats generic heuristics. Resolvers are dispatched by URL
// pattern through an ordered registry, so supporting a new platform is an
// additive change.
package site

import (
	"context"

	"github.com/fwojciec/linksum"
)

// Registry holds resolvers in dispatch order; the first whose Match
// accepts the URL handles it.
type Registry struct {
	resolvers []linksum.Resolver
}

// NewRegistry creates a Registry with the given resolvers in dispatch
// order.
func NewRegistry(resolvers ...linksum.Resolver) *Registry {
	return &Registry{resolvers: resolvers}
}

// Register appends a resolver to the dispatch order.
func (r *Registry) Register(resolver linksum.Resolver) {
	r.resolvers = append(r.resolvers, resolver)
}

// Lookup returns the first resolver matching the URL, or nil when no
// site-specific profile applies.
func (r *Registry) Lookup(url string) linksum.Resolver {
	for _, resolver := range r.resolvers {
		if resolver.Match(url) {
			return resolver
		}
	}
	return nil
}

// Resolve dispatches the URL to its resolver. Returns (nil, nil) when no
// profile matches or the resolver found nothing, so the caller escalates.
func (r *Registry) Resolve(ctx context.Context, url string) (*linksum.ExtractResult, error) {
	resolver := r.Lookup(url)
	if resolver == nil {
		return nil, nil
	}
	return resolver.Resolve(ctx, url)
}
