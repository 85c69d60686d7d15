package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jjbmsda/ott-mood-app/internal/config"
	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
)

// ErrUnexpectedStatus is returned when TMDB answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected TMDB status")

// Client is the TMDB API client. It does not retry.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	logoBaseURL  string
	http         *http.Client
}

// NewClient creates a new TMDB API client with a hard request timeout.
func NewClient(cfg config.TMDBConfig) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: cfg.ImageBaseURL,
		logoBaseURL:  cfg.LogoBaseURL,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ---- TMDB Response Types (internal, not exposed to consumers) ----

type discoverResponse struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbMovie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
}

type tmdbMovieDetail struct {
	tmdbMovie
	Runtime int            `json:"runtime"`
	Tagline string         `json:"tagline"`
	Genres  []models.Genre `json:"genres"`
}

type videosResponse struct {
	Results []models.VideoRecord `json:"results"`
}

type tmdbProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

type tmdbRegionProviders struct {
	Flatrate []tmdbProvider `json:"flatrate"`
	Rent     []tmdbProvider `json:"rent"`
	Buy      []tmdbProvider `json:"buy"`
}

type watchProvidersResponse struct {
	Results map[string]tmdbRegionProviders `json:"results"`
}

type providerListResponse struct {
	Results []tmdbProvider `json:"results"`
}

// ---- Client Methods ----

// DiscoverParams narrows a discover query.
type DiscoverParams struct {
	GenreIDs   []int
	ProviderID int
	Region     models.Region
	Language   models.Language
	Page       int
}

// Discover fetches one page of movies sorted by popularity.
func (c *Client) Discover(ctx context.Context, p DiscoverParams) (*models.DiscoverPage, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	q := url.Values{}
	q.Set("language", string(p.Language))
	q.Set("region", string(p.Region))
	q.Set("sort_by", "popularity.desc")
	q.Set("include_adult", "false")
	q.Set("include_video", "false")
	q.Set("page", strconv.Itoa(p.Page))
	if len(p.GenreIDs) > 0 {
		ids := make([]string, 0, len(p.GenreIDs))
		for _, id := range p.GenreIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		q.Set("with_genres", strings.Join(ids, ","))
	}
	if p.ProviderID > 0 {
		q.Set("with_watch_providers", strconv.Itoa(p.ProviderID))
		q.Set("watch_region", string(p.Region))
	}

	slog.Debug("fetching TMDB discover", "page", p.Page, "provider_id", p.ProviderID, "region", p.Region)
	var result discoverResponse
	if err := c.getJSON(ctx, "/discover/movie", q, &result); err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}

	page := &models.DiscoverPage{
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
		Results:      make([]models.MovieSummary, 0, len(result.Results)),
	}
	for _, m := range result.Results {
		page.Results = append(page.Results, c.summary(m))
	}
	return page, nil
}

// DiscoverByMood discovers movies for a mood, optionally limited to one
// provider in region. A zero providerID searches the whole region.
func (c *Client) DiscoverByMood(ctx context.Context, m mood.Category, providerID int, region models.Region, lang models.Language, page int) (*models.DiscoverPage, error) {
	return c.Discover(ctx, DiscoverParams{
		GenreIDs:   m.GenreIDs(),
		ProviderID: providerID,
		Region:     region,
		Language:   lang,
		Page:       page,
	})
}

// MovieDetail fetches detailed movie info.
func (c *Client) MovieDetail(ctx context.Context, id int, lang models.Language) (*models.MovieDetail, error) {
	q := url.Values{}
	q.Set("language", string(lang))

	slog.Debug("fetching TMDB movie detail", "tmdb_id", id)
	var result tmdbMovieDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), q, &result); err != nil {
		return nil, fmt.Errorf("movie detail %d: %w", id, err)
	}

	genres := result.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return &models.MovieDetail{
		MovieSummary: c.summary(result.tmdbMovie),
		ReleaseDate:  result.ReleaseDate,
		Runtime:      result.Runtime,
		Genres:       genres,
		Tagline:      result.Tagline,
	}, nil
}

// Videos fetches a movie's video list.
func (c *Client) Videos(ctx context.Context, id int, lang models.Language) ([]models.VideoRecord, error) {
	q := url.Values{}
	q.Set("language", string(lang))

	var result videosResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/videos", id), q, &result); err != nil {
		return nil, fmt.Errorf("movie videos %d: %w", id, err)
	}
	return result.Results, nil
}

// BestTrailer fetches a movie's videos and selects the best trailer link.
func (c *Client) BestTrailer(ctx context.Context, id int, lang models.Language) (*string, error) {
	videos, err := c.Videos(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	return SelectBestTrailer(videos), nil
}

// WatchProviders fetches where a movie can be watched, keyed by region.
func (c *Client) WatchProviders(ctx context.Context, id int) (models.RegionAvailability, error) {
	var result watchProvidersResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/watch/providers", id), url.Values{}, &result); err != nil {
		return nil, fmt.Errorf("watch providers %d: %w", id, err)
	}

	out := make(models.RegionAvailability, len(result.Results))
	for code, rp := range result.Results {
		region := models.Region(strings.ToUpper(code))
		out[string(region)] = models.WatchProviders{
			Flatrate: c.providers(rp.Flatrate, region),
			Rent:     c.providers(rp.Rent, region),
			Buy:      c.providers(rp.Buy, region),
		}
	}
	return out, nil
}

// RegionProviders fetches the catalog of movie providers for a region.
func (c *Client) RegionProviders(ctx context.Context, region models.Region, lang models.Language) ([]models.Provider, error) {
	q := url.Values{}
	q.Set("watch_region", string(region))
	q.Set("language", string(lang))

	var result providerListResponse
	if err := c.getJSON(ctx, "/watch/providers/movie", q, &result); err != nil {
		return nil, fmt.Errorf("region providers %s: %w", region, err)
	}
	return c.providers(result.Results, region), nil
}

// LogoURL resolves a provider logo path against the logo base.
func (c *Client) LogoURL(path string) string {
	if path == "" {
		return ""
	}
	return c.logoBaseURL + path
}

func (c *Client) summary(m tmdbMovie) models.MovieSummary {
	title := m.Title
	if title == "" {
		title = m.Name
	}
	s := models.MovieSummary{
		ID:       m.ID,
		Title:    title,
		Overview: m.Overview,
		Rating:   m.VoteAverage,
	}
	if m.PosterPath != "" {
		s.PosterURL = c.imageBaseURL + m.PosterPath
	}
	if len(m.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			s.ReleaseYear = &year
		}
	}
	return s
}

func (c *Client) providers(in []tmdbProvider, region models.Region) []models.Provider {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Provider, 0, len(in))
	for _, p := range in {
		out = append(out, models.Provider{
			ID:          p.ProviderID,
			DisplayName: p.ProviderName,
			LogoURL:     c.LogoURL(p.LogoPath),
			Region:      region,
		})
	}
	return out
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := c.doGet(ctx, path, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	q.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}
	return resp, nil
}
