package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/jjbmsda/ott-mood-app/internal/database"
	"github.com/jjbmsda/ott-mood-app/internal/models"
)

const favoritesKey = "favorites"

// FavoritesRepository keeps the favorites list in memory and mirrors every
// change to the store. Store failures are logged; the in-memory list stays
// authoritative for the life of the process.
type FavoritesRepository struct {
	kv database.KV

	mu     sync.Mutex
	loaded bool
	items  []models.MovieSummary
}

// NewFavoritesRepository creates a new FavoritesRepository.
func NewFavoritesRepository(kv database.KV) *FavoritesRepository {
	return &FavoritesRepository{kv: kv}
}

// Load returns the favorites in insertion order.
func (r *FavoritesRepository) Load(ctx context.Context) []models.MovieSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)
	return slices.Clone(r.items)
}

// Toggle removes the movie when it is a favorite, otherwise appends its
// snapshot. It reports whether the movie is a favorite afterwards.
func (r *FavoritesRepository) Toggle(ctx context.Context, movie models.MovieSummary) ([]models.MovieSummary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	idx := slices.IndexFunc(r.items, func(m models.MovieSummary) bool { return m.ID == movie.ID })
	var next []models.MovieSummary
	added := idx < 0
	if added {
		next = append(slices.Clone(r.items), movie)
	} else {
		next = slices.Delete(slices.Clone(r.items), idx, idx+1)
	}

	r.persist(ctx, next)
	r.items = next
	return slices.Clone(next), added
}

// IDs returns the set of favorite movie ids.
func (r *FavoritesRepository) IDs(ctx context.Context) map[int]struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	ids := make(map[int]struct{}, len(r.items))
	for _, m := range r.items {
		ids[m.ID] = struct{}{}
	}
	return ids
}

// Contains reports whether id is a favorite.
func (r *FavoritesRepository) Contains(ctx context.Context, id int) bool {
	_, ok := r.IDs(ctx)[id]
	return ok
}

func (r *FavoritesRepository) ensureLoaded(ctx context.Context) {
	if r.loaded {
		return
	}
	r.loaded = true
	r.items = []models.MovieSummary{}

	raw, err := r.kv.Get(ctx, favoritesKey)
	if errors.Is(err, database.ErrNotFound) {
		return
	}
	if err != nil {
		slog.Error("failed to load favorites", "error", err)
		return
	}

	var stored []models.MovieSummary
	if err := json.Unmarshal(raw, &stored); err != nil {
		slog.Error("discarding unreadable favorites", "error", err)
		return
	}

	seen := make(map[int]struct{}, len(stored))
	for _, m := range stored {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		r.items = append(r.items, m)
	}
}

func (r *FavoritesRepository) persist(ctx context.Context, items []models.MovieSummary) {
	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("failed to encode favorites", "error", err)
		return
	}
	if err := r.kv.Set(ctx, favoritesKey, data); err != nil {
		slog.Error("failed to save favorites", "error", err)
	}
}
