package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjbmsda/ott-mood-app/internal/config"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]url.Values) {
	t.Helper()
	var seen []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query())
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return NewClient(config.TMDBConfig{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		ImageBaseURL: "https://img/w500",
		LogoBaseURL:  "https://img/w92",
		Timeout:      2 * time.Second,
	}), &seen
}

func TestDiscoverByMoodParams(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		w.Write([]byte(`{"page":1,"total_pages":3,"total_results":2,"results":[
			{"id":1,"title":"Up","overview":"o","poster_path":"/p.jpg","release_date":"2009-05-28","vote_average":7.9},
			{"id":2,"title":"Blank","release_date":"","vote_average":null}
		]}`))
	})

	page, err := client.DiscoverByMood(context.Background(), mood.Happy, 8, models.RegionKR, models.LanguageKorean, 1)
	require.NoError(t, err)
	require.Len(t, *seen, 1)

	q := (*seen)[0]
	assert.Equal(t, "test-key", q.Get("api_key"))
	assert.Equal(t, "ko-KR", q.Get("language"))
	assert.Equal(t, "KR", q.Get("region"))
	assert.Equal(t, "popularity.desc", q.Get("sort_by"))
	assert.Equal(t, "false", q.Get("include_adult"))
	assert.Equal(t, "false", q.Get("include_video"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "35,10751", q.Get("with_genres"))
	assert.Equal(t, "8", q.Get("with_watch_providers"))
	assert.Equal(t, "KR", q.Get("watch_region"))

	require.Len(t, page.Results, 2)
	first := page.Results[0]
	assert.Equal(t, "Up", first.Title)
	assert.Equal(t, "https://img/w500/p.jpg", first.PosterURL)
	require.NotNil(t, first.Rating)
	assert.InDelta(t, 7.9, *first.Rating, 0.001)
	require.NotNil(t, first.ReleaseYear)
	assert.Equal(t, 2009, *first.ReleaseYear)

	second := page.Results[1]
	assert.Nil(t, second.Rating)
	assert.Nil(t, second.ReleaseYear)
	assert.Empty(t, second.PosterURL)
}

func TestDiscoverAnyMoodOmitsGenres(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[]}`))
	})

	_, err := client.DiscoverByMood(context.Background(), mood.Any, 0, models.RegionUS, models.LanguageEnglish, 1)
	require.NoError(t, err)

	q := (*seen)[0]
	_, hasGenres := q["with_genres"]
	assert.False(t, hasGenres)
	_, hasProviders := q["with_watch_providers"]
	assert.False(t, hasProviders)
	_, hasWatchRegion := q["watch_region"]
	assert.False(t, hasWatchRegion)
}

func TestNonSuccessStatusIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	})

	page, err := client.Discover(context.Background(), DiscoverParams{Language: models.LanguageEnglish, Region: models.RegionUS})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Nil(t, page)

	videos, err := client.Videos(context.Background(), 1, models.LanguageEnglish)
	assert.Error(t, err)
	assert.Empty(t, videos)
}

func TestDecodeFailureIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.MovieDetail(context.Background(), 1, models.LanguageEnglish)
	assert.Error(t, err)
}

func TestMovieDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		w.Write([]byte(`{"id":550,"title":"Fight Club","overview":"x","release_date":"1999-10-15",
			"runtime":139,"tagline":"Mischief.","genres":[{"id":18,"name":"Drama"}],"vote_average":8.4}`))
	})

	d, err := client.MovieDetail(context.Background(), 550, models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", d.Title)
	assert.Equal(t, 139, d.Runtime)
	assert.Equal(t, "1999-10-15", d.ReleaseDate)
	assert.Equal(t, []models.Genre{{ID: 18, Name: "Drama"}}, d.Genres)
	assert.Equal(t, 1999, *d.ReleaseYear)
}

func TestBestTrailer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/7/videos", r.URL.Path)
		w.Write([]byte(`{"results":[
			{"site":"YouTube","type":"Teaser","name":"Teaser","key":"T"},
			{"site":"YouTube","type":"Trailer","name":"Official Trailer","key":"A"}
		]}`))
	})

	link, err := client.BestTrailer(context.Background(), 7, models.LanguageEnglish)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "https://www.youtube.com/watch?v=A", *link)
}

func TestWatchProviders(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/9/watch/providers", r.URL.Path)
		w.Write([]byte(`{"id":9,"results":{
			"US":{"flatrate":[{"provider_id":8,"provider_name":"Netflix","logo_path":"/n.png"}],
			      "rent":[{"provider_id":2,"provider_name":"Apple TV","logo_path":"/a.png"}]},
			"KR":{}
		}}`))
	})

	avail, err := client.WatchProviders(context.Background(), 9)
	require.NoError(t, err)

	us := avail.In(models.RegionUS)
	assert.True(t, us.HasAny())
	require.Len(t, us.Flatrate, 1)
	assert.Equal(t, "https://img/w92/n.png", us.Flatrate[0].LogoURL)
	assert.Equal(t, models.RegionUS, us.Flatrate[0].Region)

	assert.False(t, avail.In(models.RegionKR).HasAny())
}

func TestRegionProviders(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/watch/providers/movie", r.URL.Path)
		w.Write([]byte(`{"results":[{"provider_id":15,"provider_name":"Hulu","logo_path":"/h.png"}]}`))
	})

	providers, err := client.RegionProviders(context.Background(), models.RegionUS, models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "US", (*seen)[0].Get("watch_region"))
	assert.Equal(t, []models.Provider{{ID: 15, DisplayName: "Hulu", LogoURL: "https://img/w92/h.png", Region: models.RegionUS}}, providers)
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Videos(ctx, 1, models.LanguageEnglish)
	assert.ErrorIs(t, err, context.Canceled)
}
