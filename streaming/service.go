package streaming

import (
	"github.com/samber/lo"
	"github.com/sapphirebluet/Movix/log"
)

// Service chains registered providers and resolvers.
// Registration order is significant: both lists are tried front to back and
// the first end-to-end success wins.
type Service struct {
	providers []Provider
	resolvers []Resolver
}

// NewService returns an empty service; callers register providers and
// resolvers explicitly at construction time.
func NewService() *Service {
	return &Service{}
}

// AddProvider appends a catalog provider to the chain.
func (s *Service) AddProvider(p Provider) {
	s.providers = append(s.providers, p)
}

// AddResolver appends a hoster resolver to the chain.
func (s *Service) AddResolver(r Resolver) {
	s.resolvers = append(s.resolvers, r)
}

// GetStreamURL resolves a title to a direct stream URL using the first
// working provider/resolver combination. When every combination fails the
// last error encountered is returned, so the most specific failure reason
// reaches the caller.
func (s *Service) GetStreamURL(title string) (string, error) {
	var lastErr error = NotFoundErr("no providers available")

	for _, p := range s.providers {
		pageURL, err := p.GetStreamPageURL(title)
		if err != nil {
			log.Debugf("provider %s failed for %q: %v", p.Name(), title, err)
			lastErr = err
			continue
		}

		for _, r := range s.resolvers {
			if !r.CanHandle(pageURL) {
				continue
			}

			streamURL, err := r.Resolve(pageURL)
			if err != nil {
				log.Debugf("resolver %s failed for %s: %v", r.Name(), pageURL, err)
				lastErr = err
				continue
			}

			log.Infof("resolved %q via %s/%s", title, p.Name(), r.Name())
			return streamURL, nil
		}
	}

	return "", lastErr
}

// ProviderNames returns registered provider identifiers in chain order.
func (s *Service) ProviderNames() []string {
	return lo.Map(s.providers, func(p Provider, _ int) string { return p.Name() })
}

// ResolverNames returns registered resolver identifiers in chain order.
func (s *Service) ResolverNames() []string {
	return lo.Map(s.resolvers, func(r Resolver, _ int) string { return r.Name() })
}
