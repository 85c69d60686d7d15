package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
)

// ErrTrailerNotFound is returned when a movie has no playable trailer.
var ErrTrailerNotFound = errors.New("trailer not found")

type MovieService struct {
	catalog   Catalog
	providers *ProviderService
	favorites *repository.FavoritesRepository
}

func NewMovieService(catalog Catalog, providers *ProviderService, favorites *repository.FavoritesRepository) *MovieService {
	return &MovieService{catalog: catalog, providers: providers, favorites: favorites}
}

// Detail loads a movie's detail, its providers in region and its trailer
// concurrently. Each part degrades on its own: a failed detail is nil, failed
// providers are empty, a failed trailer is nil.
func (s *MovieService) Detail(ctx context.Context, sess *Session, id int, lang models.Language, region models.Region) *models.MovieDetailResponse {
	resp := &models.MovieDetailResponse{Providers: []models.Provider{}}

	p := pool.New()
	p.Go(func() {
		detail, err := s.catalog.MovieDetail(ctx, id, lang)
		if err != nil {
			slog.Error("failed to get movie detail", "movie_id", id, "error", err)
			return
		}
		resp.Detail = detail
	})
	p.Go(func() {
		avail, err := s.catalog.WatchProviders(ctx, id)
		if err != nil {
			slog.Error("failed to get watch providers", "movie_id", id, "error", err)
			return
		}
		resp.Providers = s.providers.ForDetail(avail.In(region))
	})
	p.Go(func() {
		resp.TrailerURL = lookupTrailer(ctx, s.catalog, sess, id, lang)
	})
	p.Wait()

	resp.IsFavorite = s.favorites.Contains(ctx, id)
	return resp
}

// Trailer returns the link to open for a movie's trailer.
func (s *MovieService) Trailer(ctx context.Context, sess *Session, id int, lang models.Language) (string, error) {
	link := lookupTrailer(ctx, s.catalog, sess, id, lang)
	if link == nil {
		return "", ErrTrailerNotFound
	}
	return *link, nil
}
