package catalog

import (
	"context"
	"errors"
	"log/slog"
)

// Service is the read side of the catalog. Fetch failures never reach the
// caller as errors on listing: they are logged and yield an empty result.
type Service struct {
	src    Source
	prefs  []string
	logger *slog.Logger
}

func NewService(src Source, logger *slog.Logger, preferredSizes ...string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{src: src, prefs: preferredSizes, logger: logger}
}

// PreferredSizes are the labels tried first when resolving a variant for
// listings.
func (s *Service) PreferredSizes() []string { return s.prefs }

func (s *Service) List(ctx context.Context, f Filter) []Product {
	all := s.all(ctx)
	if len(f.Prefs) == 0 {
		f.Prefs = s.prefs
	}
	return f.Apply(all)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if id == "" {
		return Product{}, ErrNotFound
	}
	raw, err := s.src.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "catalog_get_failed", slog.String("product_id", id), slog.Any("err", err))
		}
		return Product{}, ErrNotFound
	}
	p, err := Normalize(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "catalog_malformed_product", slog.String("product_id", id), slog.Any("err", err))
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Sizes lists every size label offered anywhere in the catalog.
func (s *Service) Sizes(ctx context.Context) []string {
	seen := map[string]struct{}{}
	var labels []string
	for _, p := range s.all(ctx) {
		for _, v := range p.Variants {
			if _, ok := seen[v.Size]; ok {
				continue
			}
			seen[v.Size] = struct{}{}
			labels = append(labels, v.Size)
		}
	}
	return SortSizes(labels)
}

func (s *Service) all(ctx context.Context) []Product {
	raws, err := s.src.All(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog_fetch_failed", slog.Any("err", err))
		return nil
	}
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		p, err := Normalize(raw)
		if err != nil {
			s.logger.WarnContext(ctx, "catalog_malformed_product", slog.Any("err", err))
			continue
		}
		out = append(out, p)
	}
	return out
}
