package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/service"
)

// ErrorResponse is the standard error response format. Error is localized;
// Code is the stable string key clients can switch on.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	QuestionID string `json:"question_id,omitempty"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "ott-mood",
	})
}

// Handlers bundles every route group of the API.
type Handlers struct {
	Quiz            *QuizHandler
	Recommendations *RecommendationHandler
	Movies          *MovieHandler
	Preferences     *PreferenceHandler
}

// Register mounts all routes on r, normally the /api/v1 group.
func (h Handlers) Register(r fiber.Router) {
	r.Get("/health", Health)

	r.Get("/quiz", h.Quiz.Quiz)
	r.Post("/mood", h.Quiz.ComputeMood)
	r.Post("/sessions", h.Quiz.CreateSession)
	r.Get("/sessions/:id", h.Quiz.GetSession)
	r.Delete("/sessions/:id", h.Quiz.DeleteSession)
	r.Put("/sessions/:id/answers", h.Quiz.Answer)
	r.Post("/sessions/:id/mood", h.Quiz.ResolveMood)
	r.Delete("/sessions/:id/mood", h.Quiz.ResetMood)

	r.Post("/sessions/:id/recommendations", h.Recommendations.Build)
	r.Get("/sessions/:id/recommendations", h.Recommendations.Published)
	r.Get("/recommendations", h.Recommendations.OneShot)

	r.Get("/providers", h.Movies.Providers)
	r.Get("/movies/:id", h.Movies.Detail)
	r.Get("/movies/:id/trailer", h.Movies.Trailer)

	r.Get("/preferences", h.Preferences.Get)
	r.Patch("/preferences", h.Preferences.Patch)
	r.Get("/favorites", h.Preferences.Favorites)
	r.Post("/favorites/toggle", h.Preferences.ToggleFavorite)
	r.Get("/strings", h.Preferences.Strings)
}

var errInvalidLocale = errors.New("invalid language or region")

// locale resolves the language and region of a request: explicit query
// parameters win over saved preferences, which in turn default from the
// Accept-Language header.
type locale struct {
	prefs *repository.PreferencesRepository
}

func (l locale) resolve(c fiber.Ctx) (models.Language, models.Region, error) {
	p := l.prefs.LoadOrDefault(c.Context(), c.Get(fiber.HeaderAcceptLanguage))
	lang, region := p.Language, p.Region

	if v := c.Query("language"); v != "" {
		parsed, ok := models.ParseLanguage(v)
		if !ok {
			return lang, region, errInvalidLocale
		}
		lang = parsed
	}
	if v := c.Query("region"); v != "" {
		parsed, ok := models.ParseRegion(v)
		if !ok {
			return lang, region, errInvalidLocale
		}
		region = parsed
	}
	return lang, region, nil
}

func fail(c fiber.Ctx, status int, lang models.Language, key i18n.Key) error {
	return c.Status(status).JSON(ErrorResponse{
		Error: i18n.T(lang, key),
		Code:  key.Name(),
	})
}

// writeError maps a service error onto a status code and a localized message.
func writeError(c fiber.Ctx, lang models.Language, err error) error {
	var incomplete *mood.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:      i18n.T(lang, i18n.KeyAnswerAll),
			Code:       i18n.KeyAnswerAll.Name(),
			QuestionID: incomplete.QuestionID,
		})
	case errors.Is(err, mood.ErrIncomplete):
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyAnswerAll)
	case errors.Is(err, mood.ErrUnknownQuestion), errors.Is(err, mood.ErrUnknownOption):
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeySelectAnswer)
	case errors.Is(err, errInvalidLocale), errors.Is(err, repository.ErrInvalidPreference):
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	case errors.Is(err, service.ErrSessionNotFound):
		return fail(c, fiber.StatusNotFound, lang, i18n.KeySessionNotFound)
	case errors.Is(err, service.ErrTrailerNotFound):
		return fail(c, fiber.StatusNotFound, lang, i18n.KeyTrailerNotFound)
	case errors.Is(err, service.ErrStaleBatch):
		return fail(c, fiber.StatusConflict, lang, i18n.KeyStaleResults)
	case errors.Is(err, service.ErrDiscoverFailed):
		return fail(c, fiber.StatusBadGateway, lang, i18n.KeyDiscoverFailed)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "request cancelled"})
	}

	slog.Error("unhandled service error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal error"})
}
