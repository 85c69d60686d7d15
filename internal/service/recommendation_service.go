package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/jjbmsda/ott-mood-app/internal/config"
	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/tmdb"
)

// ErrDiscoverFailed marks a failed primary discover call. Callers show an
// explicit error state instead of an empty list.
var ErrDiscoverFailed = errors.New("discover request failed")

// RecommendationRequest describes one result-list build. A positive
// ProviderID selects the provider flow; zero selects the region flow.
type RecommendationRequest struct {
	Mood               mood.Category
	ProviderID         int
	Region             models.Region
	Language           models.Language
	FilterAvailability *bool
}

// RecommendationResult is a published result list.
type RecommendationResult struct {
	Mood        mood.Category      `json:"mood"`
	MoodLabel   string             `json:"mood_label"`
	ProviderID  int                `json:"provider_id,omitempty"`
	Region      models.Region      `json:"region"`
	Language    models.Language    `json:"language"`
	Movies      []models.MovieView `json:"movies"`
	Notice      string             `json:"notice,omitempty"`
	GeneratedAt string             `json:"generated_at"`
}

type RecommendationService struct {
	catalog            Catalog
	favorites          *repository.FavoritesRepository
	maxConcurrency     int
	filterAvailability bool
	trailerCacheSize   int
}

func NewRecommendationService(
	catalog Catalog,
	favorites *repository.FavoritesRepository,
	cfg config.RecommendationConfig,
) *RecommendationService {
	return &RecommendationService{
		catalog:            catalog,
		favorites:          favorites,
		maxConcurrency:     max(1, cfg.MaxConcurrency),
		filterAvailability: cfg.FilterAvailability,
		trailerCacheSize:   cfg.TrailerCacheSize,
	}
}

type enrichment struct {
	idx       int
	trailer   *string
	available bool
}

// GetRecommendations builds the result list for req and publishes it on
// sess. Page one is discovered, then every movie's trailer (and, in the
// region flow, its availability) is fetched concurrently. The list is
// published only after every fetch has settled, and only if no newer
// request started on the session meanwhile; otherwise ErrStaleBatch is
// returned. A nil sess runs the request on a throwaway session.
func (s *RecommendationService) GetRecommendations(ctx context.Context, sess *Session, req RecommendationRequest) (*RecommendationResult, error) {
	if sess == nil {
		var err error
		if sess, err = NewSession(req.Language, req.Region, s.trailerCacheSize); err != nil {
			return nil, err
		}
	}
	sess.SetMood(req.Mood)
	gen := sess.begin()

	page, err := s.catalog.DiscoverByMood(ctx, req.Mood, req.ProviderID, req.Region, req.Language, 1)
	if err != nil {
		slog.Error("failed to discover movies", "mood", req.Mood, "provider_id", req.ProviderID, "region", req.Region, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrDiscoverFailed, err)
	}

	candidates := make([]models.MovieSummary, 0, len(page.Results))
	for _, m := range page.Results {
		if req.ProviderID > 0 && sess.excludedBy(m.ID, req.ProviderID) {
			continue
		}
		candidates = append(candidates, m)
	}

	filter := s.filterAvailability
	if req.FilterAvailability != nil {
		filter = *req.FilterAvailability
	}
	checkAvailability := filter && req.ProviderID == 0

	outcomes := s.enrich(ctx, sess, candidates, req, checkAvailability)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	favorites := s.favorites.IDs(ctx)
	movies := make([]models.MovieView, 0, len(outcomes))
	for _, o := range outcomes {
		if checkAvailability && !o.available {
			continue
		}
		m := candidates[o.idx]
		_, fav := favorites[m.ID]
		view := models.MovieView{MovieSummary: m, TrailerURL: o.trailer, IsFavorite: fav}
		if checkAvailability {
			available := true
			view.Available = &available
		}
		movies = append(movies, view)
	}

	result := &RecommendationResult{
		Mood:        req.Mood,
		MoodLabel:   req.Mood.Label(req.Language),
		ProviderID:  req.ProviderID,
		Region:      req.Region,
		Language:    req.Language,
		Movies:      movies,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if len(movies) == 0 {
		result.Notice = i18n.T(req.Language, i18n.KeyNoMatches)
	}

	if err := sess.commit(gen, req.ProviderID, result); err != nil {
		slog.Info("discarding superseded results", "session_id", sess.ID, "generation", gen)
		return nil, err
	}
	return result, nil
}

// enrich fetches per-movie data on a bounded pool. Every task settles to a
// value; failures degrade to a nil trailer or an unavailable movie.
func (s *RecommendationService) enrich(
	ctx context.Context,
	sess *Session,
	movies []models.MovieSummary,
	req RecommendationRequest,
	checkAvailability bool,
) []enrichment {
	p := pool.NewWithResults[enrichment]().WithMaxGoroutines(s.maxConcurrency)
	for i, m := range movies {
		p.Go(func() enrichment {
			e := enrichment{idx: i}
			if ctx.Err() != nil {
				return e
			}
			e.trailer = lookupTrailer(ctx, s.catalog, sess, m.ID, req.Language)
			if checkAvailability {
				e.available = s.available(ctx, m.ID, req.Region)
			}
			return e
		})
	}

	results := p.Wait()
	slices.SortFunc(results, func(a, b enrichment) int { return a.idx - b.idx })
	return results
}

func (s *RecommendationService) available(ctx context.Context, movieID int, region models.Region) bool {
	avail, err := s.catalog.WatchProviders(ctx, movieID)
	if err != nil {
		slog.Warn("failed to fetch watch providers", "movie_id", movieID, "error", err)
		return false
	}
	return avail.In(region).HasAny()
}

// lookupTrailer returns the movie's best trailer link, consulting the
// session cache first. Successful lookups are cached, including ones that
// found nothing; failed ones are not.
func lookupTrailer(ctx context.Context, catalog Catalog, sess *Session, movieID int, lang models.Language) *string {
	if sess != nil {
		if link, ok := sess.cachedTrailer(movieID); ok {
			return link
		}
	}

	videos, err := catalog.Videos(ctx, movieID, lang)
	if err != nil {
		slog.Warn("failed to fetch videos", "movie_id", movieID, "error", err)
		return nil
	}

	link := tmdb.SelectBestTrailer(videos)
	if sess != nil {
		sess.cacheTrailer(movieID, link)
	}
	return link
}
