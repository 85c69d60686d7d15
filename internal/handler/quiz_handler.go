package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/service"
)

// QuizHandler serves the mood quiz and the sessions that walk through it.
type QuizHandler struct {
	sessions *service.SessionManager
	locale   locale
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(sessions *service.SessionManager, prefs *repository.PreferencesRepository) *QuizHandler {
	return &QuizHandler{sessions: sessions, locale: locale{prefs: prefs}}
}

// ComputeMoodRequest is a complete answer set scored without a session.
type ComputeMoodRequest struct {
	Answers mood.AnswerSet `json:"answers"`
}

// CreateSessionRequest optionally pins a session's language and region.
type CreateSessionRequest struct {
	Language string `json:"language,omitempty"`
	Region   string `json:"region,omitempty"`
}

// AnswerRequest records one answer.
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
}

// ResolveMoodRequest lets a client pick a mood directly instead of scoring
// the quiz.
type ResolveMoodRequest struct {
	Mood string `json:"mood,omitempty"`
}

// Quiz returns the localized questions.
// @Summary Get the mood quiz
// @Tags quiz
// @Produce json
// @Param language query string false "ko-KR or en-US"
// @Success 200 {object} map[string]interface{}
// @Router /quiz [get]
func (h *QuizHandler) Quiz(c fiber.Ctx) error {
	lang, _, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}
	return c.JSON(fiber.Map{
		"language":  lang,
		"questions": mood.Questions(lang),
	})
}

// ComputeMood scores a full answer set.
func (h *QuizHandler) ComputeMood(c fiber.Ctx) error {
	lang, _, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}

	var req ComputeMoodRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}

	res, err := mood.Resolve(req.Answers, lang)
	if err != nil {
		return writeError(c, lang, err)
	}
	return c.JSON(res)
}

// CreateSession starts a quiz session.
func (h *QuizHandler) CreateSession(c fiber.Ctx) error {
	lang, region, err := h.locale.resolve(c)
	if err != nil {
		return writeError(c, lang, err)
	}

	var req CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
	}
	if req.Language != "" {
		parsed, ok := models.ParseLanguage(req.Language)
		if !ok {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
		lang = parsed
	}
	if req.Region != "" {
		parsed, ok := models.ParseRegion(req.Region)
		if !ok {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
		region = parsed
	}

	sess, err := h.sessions.Create(lang, region)
	if err != nil {
		return writeError(c, lang, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess.State())
}

// GetSession returns a session's state.
func (h *QuizHandler) GetSession(c fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, h.fallbackLanguage(c), err)
	}
	return c.JSON(sess.State())
}

// DeleteSession ends a session.
func (h *QuizHandler) DeleteSession(c fiber.Ctx) error {
	if !h.sessions.Delete(c.Params("id")) {
		return writeError(c, h.fallbackLanguage(c), service.ErrSessionNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Answer records one answer on a session.
func (h *QuizHandler) Answer(c fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, h.fallbackLanguage(c), err)
	}
	lang := sess.Language()

	var req AnswerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
	}
	if req.OptionID == "" {
		return fail(c, fiber.StatusBadRequest, lang, i18n.KeySelectAnswer)
	}
	if err := sess.Answer(req.QuestionID, req.OptionID); err != nil {
		return writeError(c, lang, err)
	}
	return c.JSON(sess.State())
}

// ResolveMood fixes the session's mood from its answers, or from an
// explicitly chosen mood.
func (h *QuizHandler) ResolveMood(c fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, h.fallbackLanguage(c), err)
	}
	lang := sess.Language()

	var req ResolveMoodRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
	}

	if req.Mood != "" {
		m, ok := mood.ParseCategory(req.Mood)
		if !ok {
			return fail(c, fiber.StatusBadRequest, lang, i18n.KeyInvalidInput)
		}
		sess.SetMood(m)
		return c.JSON(mood.Result{Mood: m, Label: m.Label(lang)})
	}

	res, err := sess.ResolveMood()
	if err != nil {
		return writeError(c, lang, err)
	}
	return c.JSON(res)
}

// ResetMood starts the session's quiz over.
func (h *QuizHandler) ResetMood(c fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, h.fallbackLanguage(c), err)
	}
	sess.ResetMood()
	return c.JSON(sess.State())
}

func (h *QuizHandler) fallbackLanguage(c fiber.Ctx) models.Language {
	lang, _, _ := h.locale.resolve(c)
	return lang
}
