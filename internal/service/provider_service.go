package service

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/jjbmsda/ott-mood-app/internal/models"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeProviderName folds a provider name into a comparison key:
// transliterated, lower-cased, "&" as "and", "+" as " plus ", anything
// else non-alphanumeric as a space, whitespace collapsed.
func NormalizeProviderName(name string) string {
	s := strings.ToLower(unidecode.Unidecode(name))
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ReplaceAll(s, "+", " plus ")
	s = nonAlnum.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

type staticProvider struct {
	id     int
	ko, en string
	logo   string
}

// ProviderCatalog configures provider resolution per region.
type ProviderCatalog struct {
	// Static regions are served from a fixed list without calling upstream.
	Static map[models.Region][]staticProvider
	// AllowList holds normalized names worth showing.
	AllowList map[string]struct{}
	// CanonicalNames maps a normalized name to its display name.
	CanonicalNames map[string]string
	// IDNames renames providers by id.
	IDNames map[int]string
	// Order ranks provider ids; unlisted ids sort last.
	Order []int
}

// DefaultProviderCatalog is the KR fixed list plus the US allow-list.
func DefaultProviderCatalog() ProviderCatalog {
	return ProviderCatalog{
		Static: map[models.Region][]staticProvider{
			models.RegionKR: {
				{id: 8, ko: "넷플릭스", en: "Netflix", logo: "logos/netflix.png"},
				{id: 1883, ko: "티빙", en: "TVING", logo: "logos/tving.png"},
				{id: 356, ko: "웨이브", en: "Wavve", logo: "logos/wavve.png"},
				{id: 97, ko: "왓챠", en: "Watcha", logo: "logos/watcha.png"},
				{id: 337, ko: "디즈니플러스", en: "Disney+", logo: "logos/disney.png"},
			},
		},
		AllowList: setOf(
			"netflix",
			"disney plus",
			"hulu",
			"amazon prime video",
			"max",
			"apple tv plus",
			"paramount plus",
			"peacock",
			"peacock premium",
			"paramount",
			"paramount plus essential",
		),
		CanonicalNames: map[string]string{
			"apple tv":        "Apple TV+",
			"apple tv plus":   "Apple TV+",
			"apple tvplus":    "Apple TV+",
			"paramount":       "Paramount+",
			"paramount plus":  "Paramount+",
			"peacock":         "Peacock",
			"peacock premium": "Peacock",
			"disney plus":     "Disney+",
		},
		IDNames: map[int]string{
			350:  "Apple TV+",
			337:  "Disney+",
			1899: "Max",
			531:  "Paramount+",
		},
		Order: []int{8, 337, 15, 9, 1899, 350, 531, 386},
	}
}

func setOf(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}

// ProviderService resolves the streaming services offered for a region.
type ProviderService struct {
	catalog Catalog
	cfg     ProviderCatalog
}

// NewProviderService creates a new ProviderService.
func NewProviderService(catalog Catalog, cfg ProviderCatalog) *ProviderService {
	return &ProviderService{catalog: catalog, cfg: cfg}
}

// ResolveProviders returns the providers to offer in region. Static regions
// never touch the network. Other regions are fetched, filtered to the
// allow-list, deduplicated by id, renamed and ordered. Upstream failure
// yields an empty list.
func (s *ProviderService) ResolveProviders(ctx context.Context, region models.Region, lang models.Language) []models.Provider {
	if static, ok := s.cfg.Static[region]; ok {
		out := make([]models.Provider, 0, len(static))
		for _, p := range static {
			name := p.ko
			if lang.IsEnglish() {
				name = p.en
			}
			out = append(out, models.Provider{ID: p.id, DisplayName: name, LogoURL: p.logo, Region: region})
		}
		return out
	}

	raw, err := s.catalog.RegionProviders(ctx, region, lang)
	if err != nil {
		slog.Error("failed to load region providers", "region", region, "error", err)
		return []models.Provider{}
	}

	picked := s.dedupe(s.allowed(raw))
	s.sortByPreference(picked)
	return picked
}

// ForDetail prepares a movie's providers for the detail view: offer types
// merged and deduplicated by id, filtered to the allow-list unless that
// leaves nothing, then renamed.
func (s *ProviderService) ForDetail(w models.WatchProviders) []models.Provider {
	merged := w.Merged()
	filtered := s.allowed(merged)
	if len(filtered) == 0 {
		filtered = merged
	}
	out := make([]models.Provider, 0, len(filtered))
	for _, p := range filtered {
		p.DisplayName = s.displayName(p)
		out = append(out, p)
	}
	return out
}

func (s *ProviderService) allowed(in []models.Provider) []models.Provider {
	out := make([]models.Provider, 0, len(in))
	for _, p := range in {
		if _, ok := s.cfg.AllowList[NormalizeProviderName(p.DisplayName)]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *ProviderService) dedupe(in []models.Provider) []models.Provider {
	seen := make(map[int]struct{}, len(in))
	out := make([]models.Provider, 0, len(in))
	for _, p := range in {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		p.DisplayName = s.displayName(p)
		out = append(out, p)
	}
	return out
}

func (s *ProviderService) displayName(p models.Provider) string {
	if name, ok := s.cfg.IDNames[p.ID]; ok {
		return name
	}
	if name, ok := s.cfg.CanonicalNames[NormalizeProviderName(p.DisplayName)]; ok {
		return name
	}
	return p.DisplayName
}

func (s *ProviderService) sortByPreference(providers []models.Provider) {
	rank := func(id int) int {
		if i := slices.Index(s.cfg.Order, id); i >= 0 {
			return i
		}
		return len(s.cfg.Order)
	}
	slices.SortStableFunc(providers, func(a, b models.Provider) int {
		return rank(a.ID) - rank(b.ID)
	})
}
