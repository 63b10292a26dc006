package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// Seeding groups the /seeding endpoints. Each method is a path and query
// composition over the client's generic verbs.
type Seeding struct {
	c *Client
}

var _ ports.SeedingAPI = (*Seeding)(nil)

func (s *Seeding) AvailableClasses(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.c.getJSON(ctx, "/seeding/available-classes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SeedClass seeds count records of one class; count <= 0 means DefaultSeedCount.
func (s *Seeding) SeedClass(ctx context.Context, className string, count int) (domain.SeedResult, error) {
	if count <= 0 {
		count = domain.DefaultSeedCount
	}
	path := "/seeding/seed/" + url.PathEscape(className) + "?count=" + strconv.Itoa(count)

	resp, err := s.c.Post(ctx, path, nil)
	if err != nil {
		return domain.SeedResult{}, err
	}
	var out domain.SeedResult
	if err := decodeInto(resp, path, &out); err != nil {
		return domain.SeedResult{}, err
	}
	return out, nil
}

// SeedClasses seeds several classes; the class names travel in the body.
func (s *Seeding) SeedClasses(ctx context.Context, classNames []string, countPerClass int) (domain.BulkSeedResult, error) {
	if classNames == nil {
		classNames = []string{}
	}
	return s.bulk(ctx, "/seeding/seed/bulk", classNames, countPerClass)
}

// SeedAll seeds every class the backend knows about.
func (s *Seeding) SeedAll(ctx context.Context, countPerClass int) (domain.BulkSeedResult, error) {
	return s.bulk(ctx, "/seeding/seed/all", nil, countPerClass)
}

func (s *Seeding) bulk(ctx context.Context, base string, body any, countPerClass int) (domain.BulkSeedResult, error) {
	if countPerClass <= 0 {
		countPerClass = domain.DefaultSeedCountPerClass
	}
	path := base + "?countPerClass=" + strconv.Itoa(countPerClass)

	resp, err := s.c.Post(ctx, path, body)
	if err != nil {
		return domain.BulkSeedResult{}, err
	}
	var out domain.BulkSeedResult
	if err := decodeInto(resp, path, &out); err != nil {
		return domain.BulkSeedResult{}, err
	}
	return out, nil
}

func (s *Seeding) SeededData(ctx context.Context, className string) ([]domain.ContentItem, error) {
	var out []domain.ContentItem
	if err := s.c.getJSON(ctx, "/seeding/data/"+url.PathEscape(className), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ContentItem{}
	}
	return out, nil
}

func (s *Seeding) AllSeededData(ctx context.Context) (map[string][]domain.ContentItem, error) {
	var out map[string][]domain.ContentItem
	if err := s.c.getJSON(ctx, "/seeding/data", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string][]domain.ContentItem{}
	}
	return out, nil
}

func (s *Seeding) Statistics(ctx context.Context) (domain.SeedStatistics, error) {
	var out domain.SeedStatistics
	if err := s.c.getJSON(ctx, "/seeding/statistics", &out); err != nil {
		return domain.SeedStatistics{}, err
	}
	return out, nil
}

func (s *Seeding) ClearSeededData(ctx context.Context, className string) (domain.StatusMessage, error) {
	return s.clear(ctx, "/seeding/data/"+url.PathEscape(className))
}

func (s *Seeding) ClearAllSeededData(ctx context.Context) (domain.StatusMessage, error) {
	return s.clear(ctx, "/seeding/data")
}

func (s *Seeding) clear(ctx context.Context, path string) (domain.StatusMessage, error) {
	resp, err := s.c.Delete(ctx, path)
	if err != nil {
		return domain.StatusMessage{}, err
	}
	var out domain.StatusMessage
	if len(resp.Data) == 0 {
		return out, nil
	}
	if err := decodeInto(resp, path, &out); err != nil {
		return domain.StatusMessage{}, err
	}
	return out, nil
}
