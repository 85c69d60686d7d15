package tmdb

import (
	"strings"

	"github.com/jjbmsda/ott-mood-app/internal/models"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

func scoreTrailerCandidate(v models.VideoRecord) int {
	score := 0
	if v.Site == "YouTube" {
		score += 5
	}

	typeLower := strings.ToLower(v.Type)
	if strings.Contains(typeLower, "trailer") {
		score += 5
	}
	if strings.Contains(typeLower, "teaser") {
		score += 3
	}

	nameLower := strings.ToLower(v.Name)
	if strings.Contains(nameLower, "official") || strings.Contains(nameLower, "공식") {
		score += 2
	}
	if strings.Contains(nameLower, "teaser") || strings.Contains(nameLower, "티저") {
		score += 1
	}
	if strings.Contains(nameLower, "trailer") {
		score += 1
	}
	return score
}

// SelectBestTrailer picks the highest scoring video, first one on ties, and
// returns its YouTube watch URL. It returns nil when the list is empty or
// the winner is not a keyed YouTube video.
func SelectBestTrailer(videos []models.VideoRecord) *string {
	if len(videos) == 0 {
		return nil
	}

	best := 0
	bestScore := scoreTrailerCandidate(videos[0])
	for i := 1; i < len(videos); i++ {
		if s := scoreTrailerCandidate(videos[i]); s > bestScore {
			best, bestScore = i, s
		}
	}

	winner := videos[best]
	if winner.Key == "" || winner.Site != "YouTube" {
		return nil
	}
	link := youtubeWatchURL + winner.Key
	return &link
}
