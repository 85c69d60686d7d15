package i18n

import "github.com/jjbmsda/ott-mood-app/internal/models"

// Key identifies a localized string.
type Key int

const (
	KeyMoodTopLabel Key = iota
	KeyPrev
	KeyNext
	KeyViewResult
	KeyWhereToWatch
	KeyWhereToWatchDesc
	KeyProvidersEmpty
	KeyTrailerNotFound
	KeyTrailerOpenFail
	KeyYearNA
	KeyNoOverview
	KeyFavoriteOn
	KeyFavoriteOff
	KeyYoutubeTrailer
	KeyRecommendLineSuffix
	KeyMoodReset
	KeyFavoritesTitle
	KeyLoading
	KeyClose
	KeyBaseInfo
	KeyReleaseDate
	KeyInfoNA
	KeyRating
	KeyOverview
	KeySettingsTitle
	KeySettingsLanguage
	KeySettingsRegion
	KeyNoMatches
	KeyDiscoverFailed
	KeyAnswerAll
	KeySelectAnswer
	KeyStaleResults
	KeyInvalidInput
	KeySessionNotFound
	KeyMovieNotFound

	numKeys
)

// Table holds every string of one language, indexed by Key.
type Table [numKeys]string

var names = [numKeys]string{
	KeyMoodTopLabel:        "moodTopLabel",
	KeyPrev:                "prev",
	KeyNext:                "next",
	KeyViewResult:          "viewResult",
	KeyWhereToWatch:        "whereToWatch",
	KeyWhereToWatchDesc:    "whereToWatchDesc",
	KeyProvidersEmpty:      "empty",
	KeyTrailerNotFound:     "trailerNotFound",
	KeyTrailerOpenFail:     "trailerOpenFail",
	KeyYearNA:              "yearNA",
	KeyNoOverview:          "noOverview",
	KeyFavoriteOn:          "favoriteOn",
	KeyFavoriteOff:         "favoriteOff",
	KeyYoutubeTrailer:      "youtubeTrailer",
	KeyRecommendLineSuffix: "recommendLineSuffix",
	KeyMoodReset:           "moodReset",
	KeyFavoritesTitle:      "favoritesTitle",
	KeyLoading:             "loading",
	KeyClose:               "close",
	KeyBaseInfo:            "baseInfo",
	KeyReleaseDate:         "releaseDate",
	KeyInfoNA:              "infoNA",
	KeyRating:              "rating",
	KeyOverview:            "overview",
	KeySettingsTitle:       "settingsTitle",
	KeySettingsLanguage:    "lang",
	KeySettingsRegion:      "region",
	KeyNoMatches:           "noMatches",
	KeyDiscoverFailed:      "discoverFailed",
	KeyAnswerAll:           "answerAll",
	KeySelectAnswer:        "selectAnswer",
	KeyStaleResults:        "staleResults",
	KeyInvalidInput:        "invalidInput",
	KeySessionNotFound:     "sessionNotFound",
	KeyMovieNotFound:       "movieNotFound",
}

var korean = Table{
	KeyMoodTopLabel:        "오늘의 기분 체크",
	KeyPrev:                "이전",
	KeyNext:                "다음",
	KeyViewResult:          "결과 보기",
	KeyWhereToWatch:        "어디에서 볼까요?",
	KeyWhereToWatchDesc:    "지금 가입해 둔 OTT를 선택하면,\n그 안에서 볼 수 있는 작품만 골라 드릴게요.",
	KeyProvidersEmpty:      "OTT 목록을 불러오지 못했어요.",
	KeyTrailerNotFound:     "예고편을 찾지 못했어요.",
	KeyTrailerOpenFail:     "예고편을 열 수 없어요.",
	KeyYearNA:              "연도 정보 없음",
	KeyNoOverview:          "줄거리 정보가 없어요.",
	KeyFavoriteOn:          "찜 해제",
	KeyFavoriteOff:         "찜하기",
	KeyYoutubeTrailer:      "유튜브 예고편",
	KeyRecommendLineSuffix: "기분에 어울리는 작품이에요.",
	KeyMoodReset:           "기분 다시 선택",
	KeyFavoritesTitle:      "찜한 작품",
	KeyLoading:             "불러오는 중...",
	KeyClose:               "닫기",
	KeyBaseInfo:            "기본 정보",
	KeyReleaseDate:         "개봉일",
	KeyInfoNA:              "정보 없음",
	KeyRating:              "평점",
	KeyOverview:            "줄거리",
	KeySettingsTitle:       "언어 / 지역 선택",
	KeySettingsLanguage:    "언어",
	KeySettingsRegion:      "지역",
	KeyNoMatches:           "조건에 맞는 작품을 찾지 못했습니다.",
	KeyDiscoverFailed:      "영화 목록을 가져오는 중 오류가 발생했습니다.",
	KeyAnswerAll:           "모든 질문에 답해 주세요.",
	KeySelectAnswer:        "현재 질문에 대한 답을 선택해 주세요.",
	KeyStaleResults:        "이전 요청의 결과라서 무시했어요.",
	KeyInvalidInput:        "입력값이 올바르지 않아요.",
	KeySessionNotFound:     "세션을 찾을 수 없어요.",
	KeyMovieNotFound:       "작품 정보를 찾을 수 없어요.",
}

var english = Table{
	KeyMoodTopLabel:        "Today's mood check",
	KeyPrev:                "Back",
	KeyNext:                "Next",
	KeyViewResult:          "See results",
	KeyWhereToWatch:        "Where will you watch?",
	KeyWhereToWatchDesc:    "Pick a streaming service you use,\nthen I'll recommend titles available there.",
	KeyProvidersEmpty:      "No OTT providers found.",
	KeyTrailerNotFound:     "No trailer found.",
	KeyTrailerOpenFail:     "Couldn't open the trailer.",
	KeyYearNA:              "Year N/A",
	KeyNoOverview:          "No overview available.",
	KeyFavoriteOn:          "Remove from favorites",
	KeyFavoriteOff:         "Add to favorites",
	KeyYoutubeTrailer:      "YouTube trailer",
	KeyRecommendLineSuffix: "picks that match your mood.",
	KeyMoodReset:           "Pick mood again",
	KeyFavoritesTitle:      "Favorites",
	KeyLoading:             "Loading...",
	KeyClose:               "Close",
	KeyBaseInfo:            "Info",
	KeyReleaseDate:         "Release date",
	KeyInfoNA:              "N/A",
	KeyRating:              "Rating",
	KeyOverview:            "Overview",
	KeySettingsTitle:       "Language / Region",
	KeySettingsLanguage:    "Language",
	KeySettingsRegion:      "Region",
	KeyNoMatches:           "No titles matched your picks.",
	KeyDiscoverFailed:      "Something went wrong while loading movies.",
	KeyAnswerAll:           "Please answer all questions.",
	KeySelectAnswer:        "Please select an answer.",
	KeyStaleResults:        "Ignored results from an earlier request.",
	KeyInvalidInput:        "Invalid input.",
	KeySessionNotFound:     "Session not found.",
	KeyMovieNotFound:       "Movie not found.",
}

func table(lang models.Language) *Table {
	if lang == models.LanguageKorean {
		return &korean
	}
	return &english
}

// T returns the string for key in lang. Unknown languages use English.
func T(lang models.Language, key Key) string {
	if key < 0 || key >= numKeys {
		return ""
	}
	if s := table(lang)[key]; s != "" {
		return s
	}
	return english[key]
}

// Name is the stable client-facing identifier of key.
func (k Key) Name() string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return names[k]
}

// All returns every string of lang keyed by Name.
func All(lang models.Language) map[string]string {
	out := make(map[string]string, numKeys)
	for k := Key(0); k < numKeys; k++ {
		out[names[k]] = T(lang, k)
	}
	return out
}
