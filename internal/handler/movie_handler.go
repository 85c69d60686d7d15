package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/service"
)

// MovieHandler handles provider, movie detail and trailer requests.
type MovieHandler struct {
	movies    *service.MovieService
	providers *service.ProviderService
	sessions  *service.SessionManager
	locale    locale
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(
	movies *service.MovieService,
	providers *service.ProviderService,
	sessions *service.SessionManager,
	prefs *repository.PreferencesRepository,
) *MovieHandler {
	return &MovieHandler{movies: movies, providers: providers, sessions: sessions, locale: locale{prefs: prefs}}
}

// Providers returns the streaming services offered in a region.
// @Summary List providers
// @Tags providers
// @Produce json
// @Param region query string false "KR or US"
// @Param language query string false "ko-KR or en-US"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /providers [get]
func (h *MovieHandler) Providers(c fiber.Ctx) error {
	lang, region, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}

	providers := h.providers.ResolveProviders(c.Context(), region, lang)
	resp := fiber.Map{
		"region":    region,
		"providers": providers,
	}
	if len(providers) == 0 {
		resp["notice"] = i18n.T(lang, i18n.KeyProvidersEmpty)
	}
	return c.JSON(resp)
}

// Detail returns a movie's detail with its providers in a region.
// @Summary Get movie detail
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Param session_id query string false "Session whose trailer cache to use"
// @Success 200 {object} models.MovieDetailResponse
// @Failure 400 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) Detail(c fiber.Ctx) error {
	lang, region, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}

	id := fiber.Params[int](c, "id")
	if id <= 0 {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}

	return c.JSON(h.movies.Detail(c.Context(), h.session(c), id, lang, region))
}

// Trailer redirects to a movie's best trailer.
// @Summary Open trailer
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 302
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/trailer [get]
func (h *MovieHandler) Trailer(c fiber.Ctx) error {
	lang, _, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}

	id := fiber.Params[int](c, "id")
	if id <= 0 {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}

	link, err := h.movies.Trailer(c.Context(), h.session(c), id, lang)
	if err != nil {
		return writeError(c, lang, err)
	}
	return c.Redirect().Status(fiber.StatusFound).To(link)
}

// session returns the session named by the session_id query parameter, or
// nil when absent or unknown.
func (h *MovieHandler) session(c fiber.Ctx) *service.Session {
	id := c.Query("session_id")
	if id == "" {
		return nil
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		return nil
	}
	return sess
}
