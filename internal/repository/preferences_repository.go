package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jjbmsda/ott-mood-app/internal/database"
	"github.com/jjbmsda/ott-mood-app/internal/models"
)

const (
	languageKey   = "language"
	regionKey     = "watchRegion"
	onboardingKey = "onboardingComplete"
)

// ErrInvalidPreference is returned when a patch names an unsupported value.
var ErrInvalidPreference = errors.New("invalid preference")

// PreferencesRepository reads and writes user settings, one store key per field.
type PreferencesRepository struct {
	kv database.KV

	mu      sync.Mutex
	current *models.Preferences
}

// NewPreferencesRepository creates a new PreferencesRepository.
func NewPreferencesRepository(kv database.KV) *PreferencesRepository {
	return &PreferencesRepository{kv: kv}
}

// LoadOrDefault returns the stored preferences. Fields never saved take
// their value from deviceLocale, an Accept-Language style list.
func (r *PreferencesRepository) LoadOrDefault(ctx context.Context, deviceLocale string) models.Preferences {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, deviceLocale)
}

// Save merges patch into the current preferences and persists each changed
// field on its own. Picking a region without a language also switches the
// language to the region's default. Onboarding can be completed but never
// reset.
func (r *PreferencesRepository) Save(ctx context.Context, patch models.PreferencesPatch, deviceLocale string) (models.Preferences, error) {
	var (
		lang      models.Language
		region    models.Region
		hasLang   = patch.Language != nil
		hasRegion = patch.Region != nil
	)
	if hasLang {
		l, ok := models.ParseLanguage(*patch.Language)
		if !ok {
			return models.Preferences{}, fmt.Errorf("%w: language %q", ErrInvalidPreference, *patch.Language)
		}
		lang = l
	}
	if hasRegion {
		rg, ok := models.ParseRegion(*patch.Region)
		if !ok {
			return models.Preferences{}, fmt.Errorf("%w: region %q", ErrInvalidPreference, *patch.Region)
		}
		region = rg
		if !hasLang {
			lang, hasLang = rg.DefaultLanguage(), true
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prefs := r.load(ctx, deviceLocale)

	if hasLang {
		prefs.Language = lang
		r.persist(ctx, languageKey, lang)
	}
	if hasRegion {
		prefs.Region = region
		r.persist(ctx, regionKey, region)
	}
	if patch.OnboardingComplete != nil && *patch.OnboardingComplete && !prefs.OnboardingComplete {
		prefs.OnboardingComplete = true
		r.persist(ctx, onboardingKey, true)
	}

	r.current = &prefs
	return prefs, nil
}

func (r *PreferencesRepository) load(ctx context.Context, deviceLocale string) models.Preferences {
	if r.current != nil {
		return *r.current
	}

	prefs := models.PreferencesFromLocale(deviceLocale)
	var stored string
	if r.read(ctx, languageKey, &stored) {
		if l, ok := models.ParseLanguage(stored); ok {
			prefs.Language = l
		}
	}
	if r.read(ctx, regionKey, &stored) {
		if rg, ok := models.ParseRegion(stored); ok {
			prefs.Region = rg
		}
	}
	var onboarded bool
	if r.read(ctx, onboardingKey, &onboarded) {
		prefs.OnboardingComplete = onboarded
	}

	r.current = &prefs
	return prefs
}

func (r *PreferencesRepository) read(ctx context.Context, key string, out any) bool {
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return false
	}
	if err != nil {
		slog.Error("failed to load preference", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Error("discarding unreadable preference", "key", key, "error", err)
		return false
	}
	return true
}

func (r *PreferencesRepository) persist(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("failed to encode preference", "key", key, "error", err)
		return
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		slog.Error("failed to save preference", "key", key, "error", err)
	}
}
