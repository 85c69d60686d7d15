package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
)

type PreferenceHandler struct {
	prefs     *repository.PreferencesRepository
	favorites *repository.FavoritesRepository
	locale    locale
}

func NewPreferenceHandler(prefs *repository.PreferencesRepository, favorites *repository.FavoritesRepository) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, favorites: favorites, locale: locale{prefs: prefs}}
}

// ToggleFavoriteResponse is the favorites list after a toggle.
type ToggleFavoriteResponse struct {
	Favorites  []models.MovieSummary `json:"favorites"`
	IsFavorite bool                  `json:"is_favorite"`
}

// Get returns the saved preferences and the screen a client should open on.
func (h *PreferenceHandler) Get(c fiber.Ctx) error {
	p := h.prefs.LoadOrDefault(c.Context(), c.Get(fiber.HeaderAcceptLanguage))
	return c.JSON(models.PreferencesResponse{Preferences: p, EntryScreen: p.EntryScreen()})
}

// Patch saves the fields present in the body.
func (h *PreferenceHandler) Patch(c fiber.Ctx) error {
	deviceLocale := c.Get(fiber.HeaderAcceptLanguage)
	current := h.prefs.LoadOrDefault(c.Context(), deviceLocale)

	var patch models.PreferencesPatch
	if err := c.Bind().JSON(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, current.Language, i18n.KeyInvalidInput)
	}

	p, err := h.prefs.Save(c.Context(), patch, deviceLocale)
	if err != nil {
		slog.Warn("rejected preferences patch", "error", err)
		return writeError(c, current.Language, err)
	}
	return c.JSON(models.PreferencesResponse{Preferences: p, EntryScreen: p.EntryScreen()})
}

// Favorites lists favorites in insertion order.
func (h *PreferenceHandler) Favorites(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"favorites": h.favorites.Load(c.Context()),
	})
}

// ToggleFavorite adds the movie when absent, removes it otherwise.
func (h *PreferenceHandler) ToggleFavorite(c fiber.Ctx) error {
	lang, _, _ := h.locale.resolve(c)

	var movie models.MovieSummary
	if err := c.Bind().JSON(&movie); err != nil || movie.ID <= 0 {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}

	list, added := h.favorites.Toggle(c.Context(), movie)
	return c.JSON(ToggleFavoriteResponse{Favorites: list, IsFavorite: added})
}

// Strings returns the UI string table of a language.
func (h *PreferenceHandler) Strings(c fiber.Ctx) error {
	lang, _, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}
	return c.JSON(fiber.Map{
		"language": lang,
		"strings":  i18n.All(lang),
	})
}
