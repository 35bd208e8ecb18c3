package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"codetrack/internal/fetcher"
	"codetrack/internal/models"
	"codetrack/internal/normalizer"
	"codetrack/internal/providers"
	"codetrack/internal/store"
	"codetrack/internal/structures"
)

const envelopeWrapped = "wrapped"

type GfgServiceInterface interface {
	Fetch(ctx context.Context, handle string) (*models.GFGRecord, error)
}

type GfgService struct {
	conf    structures.GfgSource
	fetcher fetcher.FetcherInterface
	cache   *RecordCache[models.GFGRecord]
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewGfgService(conf *structures.Config, f fetcher.FetcherInterface, s store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) GfgServiceInterface {
	return &GfgService{
		conf:    conf.Sources.Gfg,
		fetcher: f,
		cache:   NewRecordCache[models.GFGRecord](s, store.KeyGFGCache, conf.Sources.CacheTTL, logger),
		logger:  logger,
		metrics: metrics,
	}
}

// NormalizeHandle is the canonical form of a GFG handle.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// Fetch walks the sources in order: the profile API directly, the same API
// through each proxy, the public profile page through the first proxy, and
// finally the cache.
func (s *GfgService) Fetch(ctx context.Context, handle string) (*models.GFGRecord, error) {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return nil, ErrNoUsername
	}

	var attempts []error
	apiURL := fmt.Sprintf(s.conf.AuthApi, url.QueryEscape(handle))

	rec, err := s.fetchDirect(ctx, apiURL)
	if err == nil {
		return s.live(handle, rec, "direct"), nil
	}
	attempts = append(attempts, err)

	for _, proxy := range s.conf.Proxies {
		proxied, err := s.fetchProxied(ctx, proxy, apiURL)
		if err == nil {
			return s.live(handle, proxied, proxy.Name), nil
		}
		attempts = append(attempts, err)
	}

	rec, err = s.fetchProfilePage(ctx, handle)
	if err == nil {
		return s.live(handle, rec, "profile page"), nil
	}
	attempts = append(attempts, err)

	if cached, ok := s.cache.Load(handle); ok {
		s.logger.Warnf(providers.TypeFetch, "GFG %s served from cache after %d failed attempts", handle, len(attempts))
		s.metrics.IncSourceResult(string(models.PlatformGfg), "cache")
		cached.FromCache = true
		return &cached, nil
	}

	s.metrics.IncSourceResult(string(models.PlatformGfg), "failed")
	exhausted := &SourceExhaustedError{Platform: models.PlatformGfg, Attempts: attempts}
	s.logger.Errorf(providers.TypeFetch, "%s", exhausted)
	return nil, exhausted
}

func (s *GfgService) fetchDirect(ctx context.Context, apiURL string) (models.GFGRecord, error) {
	body, err := s.fetcher.Fetch(ctx, apiURL, s.conf.DirectTimeout)
	if err != nil {
		return models.GFGRecord{}, fmt.Errorf("direct: %w", err)
	}
	rec, ok := normalizer.ParseGfgAPI(body, true)
	if !ok {
		return models.GFGRecord{}, errors.New("direct: unexpected response")
	}
	return rec, nil
}

func (s *GfgService) viaProxy(ctx context.Context, proxy structures.ProxyConfig, target string) ([]byte, error) {
	body, err := s.fetcher.Fetch(ctx, fmt.Sprintf(proxy.Url, url.QueryEscape(target)), s.conf.ProxyTimeout)
	if err != nil {
		return nil, err
	}
	if proxy.Envelope != envelopeWrapped {
		return body, nil
	}
	contents, ok := normalizer.UnwrapContents(body)
	if !ok {
		return nil, errors.New("empty envelope")
	}
	return contents, nil
}

// fetchProxied accepts the API envelope, or any page text that still carries
// the solved-count field.
func (s *GfgService) fetchProxied(ctx context.Context, proxy structures.ProxyConfig, apiURL string) (models.GFGRecord, error) {
	payload, err := s.viaProxy(ctx, proxy, apiURL)
	if err != nil {
		return models.GFGRecord{}, fmt.Errorf("proxy %s: %w", proxy.Name, err)
	}
	if rec, ok := normalizer.ParseGfgAPI(payload, false); ok {
		return rec, nil
	}
	if text := string(payload); normalizer.HasSolvedMarker(text) {
		return normalizer.ScrapeGFG(text), nil
	}
	return models.GFGRecord{}, fmt.Errorf("proxy %s: no profile data", proxy.Name)
}

func (s *GfgService) fetchProfilePage(ctx context.Context, handle string) (models.GFGRecord, error) {
	if len(s.conf.Proxies) == 0 {
		return models.GFGRecord{}, errors.New("profile page: no proxy configured")
	}
	proxy := s.conf.Proxies[0]
	page, err := s.viaProxy(ctx, proxy, fmt.Sprintf(s.conf.ProfileUrl, url.PathEscape(handle)))
	if err != nil {
		return models.GFGRecord{}, fmt.Errorf("profile page: %w", err)
	}
	rec := normalizer.ScrapeGFG(string(page))
	if rec.TotalProblemsSolved <= 0 {
		return models.GFGRecord{}, errors.New("profile page: no solved count")
	}
	return rec, nil
}

func (s *GfgService) live(handle string, rec models.GFGRecord, source string) *models.GFGRecord {
	s.cache.Save(handle, rec)
	s.metrics.IncSourceResult(string(models.PlatformGfg), "live")
	s.logger.Infof(providers.TypeFetch, "GFG %s fetched via %s: solved=%d", handle, source, rec.TotalProblemsSolved)
	return &rec
}
