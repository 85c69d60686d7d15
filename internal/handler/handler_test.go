package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jjbmsda/ott-mood-app/internal/config"
	"github.com/jjbmsda/ott-mood-app/internal/database"
	"github.com/jjbmsda/ott-mood-app/internal/handler"
	"github.com/jjbmsda/ott-mood-app/internal/i18n"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
	"github.com/jjbmsda/ott-mood-app/internal/repository"
	"github.com/jjbmsda/ott-mood-app/internal/service"
	"github.com/jjbmsda/ott-mood-app/internal/service/mocks"
)

type fixture struct {
	app     *fiber.App
	catalog *mocks.MockCatalog
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)

	kv := database.NewMemoryKV()
	favorites := repository.NewFavoritesRepository(kv)
	prefs := repository.NewPreferencesRepository(kv)

	sessions, err := service.NewSessionManager(8, 16)
	require.NoError(t, err)
	providers := service.NewProviderService(catalog, service.DefaultProviderCatalog())
	recs := service.NewRecommendationService(catalog, favorites, config.RecommendationConfig{MaxConcurrency: 2, TrailerCacheSize: 16})
	movies := service.NewMovieService(catalog, providers, favorites)

	app := fiber.New()
	handler.Handlers{
		Quiz:            handler.NewQuizHandler(sessions, prefs),
		Recommendations: handler.NewRecommendationHandler(recs, sessions, prefs),
		Movies:          handler.NewMovieHandler(movies, providers, sessions, prefs),
		Preferences:     handler.NewPreferenceHandler(prefs, favorites),
	}.Register(app.Group("/api/v1"))

	return fixture{app: app, catalog: catalog}
}

func (f fixture) do(t *testing.T, method, path string, body any, out any, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	var body map[string]string
	resp := f.do(t, http.MethodGet, "/api/v1/health", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestQuiz(t *testing.T) {
	f := newFixture(t)

	var body struct {
		Language  models.Language `json:"language"`
		Questions []mood.Question `json:"questions"`
	}
	resp := f.do(t, http.MethodGet, "/api/v1/quiz?language=en", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.LanguageEnglish, body.Language)
	assert.Equal(t, mood.Questions(models.LanguageEnglish)[0].Prompt, body.Questions[0].Prompt)

	var errBody handler.ErrorResponse
	resp = f.do(t, http.MethodGet, "/api/v1/quiz?language=fr", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalidInput", errBody.Code)
}

func fullAnswers(lang models.Language) mood.AnswerSet {
	answers := mood.AnswerSet{}
	for _, q := range mood.Questions(lang) {
		answers[q.ID] = q.Options[0].ID
	}
	return answers
}

func TestComputeMood(t *testing.T) {
	f := newFixture(t)

	var errBody handler.ErrorResponse
	resp := f.do(t, http.MethodPost, "/api/v1/mood?language=ko-KR", handler.ComputeMoodRequest{
		Answers: mood.AnswerSet{"q2": "q2_o1"},
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "answerAll", errBody.Code)
	assert.Equal(t, "q1", errBody.QuestionID)
	assert.Equal(t, i18n.T(models.LanguageKorean, i18n.KeyAnswerAll), errBody.Error)

	answers := fullAnswers(models.LanguageEnglish)
	var res mood.Result
	resp = f.do(t, http.MethodPost, "/api/v1/mood?language=en-US", handler.ComputeMoodRequest{Answers: answers}, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	want := mood.ComputeMood(answers, mood.Questions(models.LanguageEnglish))
	assert.Equal(t, want, res.Mood)
	assert.Equal(t, want.Label(models.LanguageEnglish), res.Label)
}

func TestSessionFlow(t *testing.T) {
	f := newFixture(t)
	lang := models.LanguageEnglish

	var state service.SessionState
	resp := f.do(t, http.MethodPost, "/api/v1/sessions", handler.CreateSessionRequest{Language: "en-US", Region: "US"}, &state)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, state.ID)
	assert.Equal(t, lang, state.Language)
	assert.Equal(t, models.RegionUS, state.Region)
	base := "/api/v1/sessions/" + state.ID

	// No mood yet.
	var errBody handler.ErrorResponse
	resp = f.do(t, http.MethodPost, base+"/recommendations", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "answerAll", errBody.Code)

	resp = f.do(t, http.MethodPut, base+"/answers", handler.AnswerRequest{QuestionID: "q1", OptionID: "q9_o9"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "selectAnswer", errBody.Code)

	answers := fullAnswers(lang)
	for qid, oid := range answers {
		resp = f.do(t, http.MethodPut, base+"/answers", handler.AnswerRequest{QuestionID: qid, OptionID: oid}, &state)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Len(t, state.Answers, len(answers))

	var res mood.Result
	resp = f.do(t, http.MethodPost, base+"/mood", nil, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	picked := mood.ComputeMood(answers, mood.Questions(lang))
	assert.Equal(t, picked, res.Mood)

	f.catalog.EXPECT().
		DiscoverByMood(gomock.Any(), picked, 8, models.RegionUS, lang, 1).
		Return(&models.DiscoverPage{Page: 1, Results: []models.MovieSummary{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}}, nil)
	f.catalog.EXPECT().Videos(gomock.Any(), 1, lang).Return([]models.VideoRecord{{Site: "YouTube", Type: "Trailer", Key: "k1"}}, nil)
	f.catalog.EXPECT().Videos(gomock.Any(), 2, lang).Return(nil, nil)

	var result service.RecommendationResult
	resp = f.do(t, http.MethodPost, base+"/recommendations", handler.BuildRequest{ProviderID: 8}, &result)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, result.Movies, 2)
	require.NotNil(t, result.Movies[0].TrailerURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=k1", *result.Movies[0].TrailerURL)
	assert.Nil(t, result.Movies[1].TrailerURL)

	var published service.RecommendationResult
	resp = f.do(t, http.MethodGet, base+"/recommendations", nil, &published)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, result.Movies, published.Movies)

	var reset service.SessionState
	resp = f.do(t, http.MethodDelete, base+"/mood", nil, &reset)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, reset.Mood)
	assert.Empty(t, reset.Answers)

	resp = f.do(t, http.MethodGet, base+"/recommendations", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, base, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, base, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "sessionNotFound", errBody.Code)
}

func TestSessionPickMoodDirectly(t *testing.T) {
	f := newFixture(t)

	var state service.SessionState
	resp := f.do(t, http.MethodPost, "/api/v1/sessions", nil, &state)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	// No Accept-Language: Korean defaults.
	assert.Equal(t, models.LanguageKorean, state.Language)
	assert.Equal(t, models.RegionKR, state.Region)

	var res mood.Result
	resp = f.do(t, http.MethodPost, "/api/v1/sessions/"+state.ID+"/mood", handler.ResolveMoodRequest{Mood: "설레요"}, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, mood.Excited, res.Mood)

	var errBody handler.ErrorResponse
	resp = f.do(t, http.MethodPost, "/api/v1/sessions/"+state.ID+"/mood", handler.ResolveMoodRequest{Mood: "grumpy"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOneShotRecommendations(t *testing.T) {
	f := newFixture(t)

	f.catalog.EXPECT().
		DiscoverByMood(gomock.Any(), mood.Blue, 0, models.RegionKR, models.LanguageKorean, 1).
		Return(nil, errors.New("connection refused"))

	var errBody handler.ErrorResponse
	resp := f.do(t, http.MethodGet, "/api/v1/recommendations?mood=blue", nil, &errBody)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "discoverFailed", errBody.Code)
	assert.Equal(t, i18n.T(models.LanguageKorean, i18n.KeyDiscoverFailed), errBody.Error)

	resp = f.do(t, http.MethodGet, "/api/v1/recommendations?mood=sleepy", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.catalog.EXPECT().
		DiscoverByMood(gomock.Any(), mood.Hyped, 337, models.RegionUS, models.LanguageEnglish, 1).
		Return(&models.DiscoverPage{Page: 1}, nil)

	var result service.RecommendationResult
	resp = f.do(t, http.MethodGet, "/api/v1/recommendations?mood=Hyped&provider_id=337&region=US&language=en-US", nil, &result)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, result.Movies)
	assert.Equal(t, i18n.T(models.LanguageEnglish, i18n.KeyNoMatches), result.Notice)
}

func TestProviders(t *testing.T) {
	f := newFixture(t)

	var body struct {
		Region    models.Region     `json:"region"`
		Providers []models.Provider `json:"providers"`
		Notice    string            `json:"notice"`
	}
	resp := f.do(t, http.MethodGet, "/api/v1/providers?region=KR&language=en-US", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Providers, 5)
	assert.Equal(t, "Netflix", body.Providers[0].DisplayName)
	assert.Empty(t, body.Notice)

	f.catalog.EXPECT().RegionProviders(gomock.Any(), models.RegionUS, models.LanguageEnglish).Return(nil, errors.New("timeout"))
	resp = f.do(t, http.MethodGet, "/api/v1/providers?region=US&language=en-US", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Providers)
	assert.Equal(t, i18n.T(models.LanguageEnglish, i18n.KeyProvidersEmpty), body.Notice)
}

func TestMovieDetailAndTrailer(t *testing.T) {
	f := newFixture(t)
	lang := models.LanguageKorean

	f.catalog.EXPECT().MovieDetail(gomock.Any(), 42, lang).Return(&models.MovieDetail{MovieSummary: models.MovieSummary{ID: 42, Title: "기생충"}}, nil)
	f.catalog.EXPECT().WatchProviders(gomock.Any(), 42).Return(models.RegionAvailability{
		"KR": {Flatrate: []models.Provider{{ID: 8, DisplayName: "Netflix"}}},
	}, nil)
	f.catalog.EXPECT().Videos(gomock.Any(), 42, lang).Return([]models.VideoRecord{{Site: "YouTube", Type: "Trailer", Key: "abc"}}, nil).Times(2)

	var detail models.MovieDetailResponse
	resp := f.do(t, http.MethodGet, "/api/v1/movies/42", nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, detail.Detail)
	assert.Equal(t, "기생충", detail.Detail.Title)
	require.Len(t, detail.Providers, 1)

	resp = f.do(t, http.MethodGet, "/api/v1/movies/42/trailer", nil, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", resp.Header.Get("Location"))

	f.catalog.EXPECT().Videos(gomock.Any(), 43, lang).Return(nil, nil)
	var errBody handler.ErrorResponse
	resp = f.do(t, http.MethodGet, "/api/v1/movies/43/trailer", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "trailerNotFound", errBody.Code)

	resp = f.do(t, http.MethodGet, "/api/v1/movies/abc", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)

	var prefs models.PreferencesResponse
	resp := f.do(t, http.MethodGet, "/api/v1/preferences", nil, &prefs, "Accept-Language", "en-US,en;q=0.9")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.LanguageEnglish, prefs.Language)
	assert.Equal(t, models.RegionUS, prefs.Region)
	assert.Equal(t, models.EntryScreenSettings, prefs.EntryScreen)

	region := "KR"
	resp = f.do(t, http.MethodPatch, "/api/v1/preferences", models.PreferencesPatch{Region: &region}, &prefs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.RegionKR, prefs.Region)
	assert.Equal(t, models.LanguageKorean, prefs.Language)

	done := true
	resp = f.do(t, http.MethodPatch, "/api/v1/preferences", models.PreferencesPatch{OnboardingComplete: &done}, &prefs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.EntryScreenMood, prefs.EntryScreen)

	bad := "JP"
	var errBody handler.ErrorResponse
	resp = f.do(t, http.MethodPatch, "/api/v1/preferences", models.PreferencesPatch{Region: &bad}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, i18n.T(models.LanguageKorean, i18n.KeyInvalidInput), errBody.Error)
}

func TestFavorites(t *testing.T) {
	f := newFixture(t)

	var toggled handler.ToggleFavoriteResponse
	resp := f.do(t, http.MethodPost, "/api/v1/favorites/toggle", models.MovieSummary{ID: 7, Title: "Seven"}, &toggled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, toggled.IsFavorite)
	require.Len(t, toggled.Favorites, 1)

	var list struct {
		Favorites []models.MovieSummary `json:"favorites"`
	}
	resp = f.do(t, http.MethodGet, "/api/v1/favorites", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, "Seven", list.Favorites[0].Title)

	resp = f.do(t, http.MethodPost, "/api/v1/favorites/toggle", models.MovieSummary{ID: 7, Title: "Seven"}, &toggled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, toggled.IsFavorite)
	assert.Empty(t, toggled.Favorites)

	var errBody handler.ErrorResponse
	resp = f.do(t, http.MethodPost, "/api/v1/favorites/toggle", models.MovieSummary{Title: "no id"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStrings(t *testing.T) {
	f := newFixture(t)

	var body struct {
		Language models.Language   `json:"language"`
		Strings  map[string]string `json:"strings"`
	}
	resp := f.do(t, http.MethodGet, "/api/v1/strings?language=en-US", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Favorites", body.Strings["favoritesTitle"])
}

func TestRegisterSwagger(t *testing.T) {
	app := fiber.New()
	handler.RegisterSwagger(app, []byte("openapi: 3.0.3\n"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.yaml", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.3\n", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
