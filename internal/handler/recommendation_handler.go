package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/service"
)

type RecommendationHandler struct {
	svc      *service.RecommendationService
	sessions *service.SessionManager
	locale   locale
}

func NewRecommendationHandler(
	svc *service.RecommendationService,
	sessions *service.SessionManager,
	prefs *repository.PreferencesRepository,
) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, sessions: sessions, locale: locale{prefs: prefs}}
}

// BuildRequest selects the flow for a session's result list.
type BuildRequest struct {
	ProviderID         int   `json:"provider_id,omitempty"`
	FilterAvailability *bool `json:"filter_availability,omitempty"`
}

// Build godoc
// POST /api/v1/sessions/:id/recommendations
func (h *RecommendationHandler) Build(c fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		lang, _, _ := h.locale.resolve(c)
		return writeError(c, lang, err)
	}
	lang := sess.Language()

	var req BuildRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
	}
	if req.ProviderID < 0 {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}

	m, ok := sess.Mood()
	if !ok {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyAnswerAll)
	}

	result, err := h.svc.GetRecommendations(c.Context(), sess, service.RecommendationRequest{
		Mood:               m,
		ProviderID:         req.ProviderID,
		Region:             sess.Region(),
		Language:           lang,
		FilterAvailability: req.FilterAvailability,
	})
	if err != nil {
		slog.Error("failed to build recommendations", "session_id", sess.ID, "error", err)
		return writeError(c, lang, err)
	}
	return c.JSON(result)
}

// Published godoc
// GET /api/v1/sessions/:id/recommendations
func (h *RecommendationHandler) Published(c fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		lang, _, _ := h.locale.resolve(c)
		return writeError(c, lang, err)
	}

	result, ok := sess.Published()
	if !ok {
		return fail(c, fiber.StatusNotFound, sess.Language(), i18n.KeyNoMatches)
	}
	return c.JSON(result)
}

// OneShot godoc
// GET /api/v1/recommendations?mood=&provider_id=&region=&language=
func (h *RecommendationHandler) OneShot(c fiber.Ctx) error {
	lang, region, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}

	m, ok := mood.ParseCategory(c.Query("mood"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}
	providerID := fiber.Query(c, "provider_id", 0)
	if providerID < 0 {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}

	req := service.RecommendationRequest{
		Mood:       m,
		ProviderID: providerID,
		Region:     region,
		Language:   lang,
	}
	if v := c.Query("filter_availability"); v != "" {
		filter, err := strconv.ParseBool(v)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
		req.FilterAvailability = &filter
	}

	result, err := h.svc.GetRecommendations(c.Context(), nil, req)
	if err != nil {
		slog.Error("failed to generate recommendations", "mood", m, "provider_id", providerID, "error", err)
		return writeError(c, lang, err)
	}
	return c.JSON(result)
}
