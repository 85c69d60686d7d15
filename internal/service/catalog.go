package service

import (
	"context"

	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
)

// Catalog is the upstream movie catalog. *tmdb.Client implements it.
type Catalog interface {
	DiscoverByMood(ctx context.Context, category mood.Category, providerID int, region models.Region, lang models.Language, page int) (*models.DiscoverPage, error)
	MovieDetail(ctx context.Context, id int, lang models.Language) (*models.MovieDetail, error)
	Videos(ctx context.Context, id int, lang models.Language) ([]models.VideoRecord, error)
	WatchProviders(ctx context.Context, id int) (models.RegionAvailability, error)
	RegionProviders(ctx context.Context, region models.Region, lang models.Language) ([]models.Provider, error)
}
