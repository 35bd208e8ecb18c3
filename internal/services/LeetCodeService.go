package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"codetrack/internal/fetcher"
	"codetrack/internal/models"
	"codetrack/internal/normalizer"
	"codetrack/internal/providers"
	"codetrack/internal/store"
	"codetrack/internal/structures"
)

type LeetCodeServiceInterface interface {
	Fetch(ctx context.Context, username string) (*models.LeetCodeRecord, error)
}

type LeetCodeService struct {
	conf    structures.LeetCodeSource
	fetcher fetcher.FetcherInterface
	cache   *RecordCache[models.LeetCodeRecord]
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

type endpoint struct {
	variant normalizer.Variant
	path    string
}

func primaryEndpoints(username string) []endpoint {
	u := url.PathEscape(username)
	return []endpoint{
		{normalizer.VariantProfile, "/userProfile/" + u},
		{normalizer.VariantSolved, "/" + u + "/solved"},
		{normalizer.VariantSkills, "/skillStats/" + u},
		{normalizer.VariantCalendar, "/" + u + "/calendar"},
	}
}

func NewLeetCodeService(conf *structures.Config, f fetcher.FetcherInterface, s store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) LeetCodeServiceInterface {
	return &LeetCodeService{
		conf:    conf.Sources.LeetCode,
		fetcher: f,
		cache:   NewRecordCache[models.LeetCodeRecord](s, store.KeyLCCache, conf.Sources.CacheTTL, logger),
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Fetch tries the multi-endpoint primary source, then the all-in-one
// alternate, then the cache. An attempt counts only if it carries a solved
// count.
func (s *LeetCodeService) Fetch(ctx context.Context, username string) (*models.LeetCodeRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNoUsername
	}

	var attempts []error

	shapes, errs := s.fetchPrimary(ctx, username)
	attempts = append(attempts, errs...)
	if normalizer.HasSolvedCount(shapes) {
		return s.live(username, shapes, "primary"), nil
	}
	if len(shapes) > 0 {
		attempts = append(attempts, errors.New("primary: no solved count in response"))
	}

	shapes, err := s.fetchAlternate(ctx, username)
	if err == nil && normalizer.HasSolvedCount(shapes) {
		return s.live(username, shapes, "alternate"), nil
	}
	if err == nil {
		err = errors.New("alternate: no solved count in response")
	}
	attempts = append(attempts, err)

	if rec, ok := s.cache.Load(username); ok {
		s.logger.Warnf(providers.TypeFetch, "LeetCode %s served from cache after %d failed attempts", username, len(attempts))
		s.metrics.IncSourceResult(string(models.PlatformLeetCode), "cache")
		rec.FromCache = true
		return &rec, nil
	}

	s.metrics.IncSourceResult(string(models.PlatformLeetCode), "failed")
	exhausted := &SourceExhaustedError{Platform: models.PlatformLeetCode, Attempts: attempts}
	s.logger.Errorf(providers.TypeFetch, "%s", exhausted)
	return nil, exhausted
}

// fetchPrimary queries every endpoint at once. A failed endpoint only loses
// its own fields.
func (s *LeetCodeService) fetchPrimary(ctx context.Context, username string) ([]normalizer.Shape, []error) {
	endpoints := primaryEndpoints(username)
	shapes := make([]*normalizer.Shape, len(endpoints))
	errs := make([]error, len(endpoints))

	var wg sync.WaitGroup
	for i, ep := range endpoints {
		wg.Add(1)
		go func(i int, ep endpoint) {
			defer wg.Done()
			body, err := s.fetcher.Fetch(ctx, s.conf.PrimaryBase+ep.path, s.conf.PrimaryTimeout)
			if err != nil {
				errs[i] = fmt.Errorf("primary %s: %w", ep.variant, err)
				return
			}
			shape, err := normalizer.NewShape(ep.variant, body)
			if err != nil {
				errs[i] = fmt.Errorf("primary: %w", err)
				return
			}
			shapes[i] = &shape
		}(i, ep)
	}
	wg.Wait()

	var (
		got    []normalizer.Shape
		failed []error
	)
	for i := range endpoints {
		if shapes[i] != nil {
			got = append(got, *shapes[i])
		}
		if errs[i] != nil {
			s.logger.Debugf(providers.TypeFetch, "%s", errs[i])
			failed = append(failed, errs[i])
		}
	}
	return got, failed
}

func (s *LeetCodeService) fetchAlternate(ctx context.Context, username string) ([]normalizer.Shape, error) {
	body, err := s.fetcher.Fetch(ctx, s.conf.AlternateBase+"/"+url.PathEscape(username), s.conf.AlternateTimeout)
	if err != nil {
		return nil, fmt.Errorf("alternate: %w", err)
	}
	shapes, err := normalizer.AlternateShapes(body)
	if err != nil {
		return nil, fmt.Errorf("alternate: %w", err)
	}
	return shapes, nil
}

func (s *LeetCodeService) live(username string, shapes []normalizer.Shape, source string) *models.LeetCodeRecord {
	rec := normalizer.MergeLeetCode(shapes, s.now())
	s.cache.Save(username, rec)
	s.metrics.IncSourceResult(string(models.PlatformLeetCode), "live")
	s.logger.Infof(providers.TypeFetch, "LeetCode %s fetched from %s: solved=%d", username, source, rec.TotalSolved)
	return &rec
}
