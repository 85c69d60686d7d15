package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jjbmsda/ott-mood-app/internal/models"
	"github.com/jjbmsda/ott-mood-app/internal/mood"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStaleBatch      = errors.New("result batch superseded by a newer request")
)

// Session is one user's pass through the quiz and its results. It owns the
// per-session trailer cache, the provider first-seen map and the generation
// token that discards superseded result batches.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	language   models.Language
	region     models.Region
	answers    mood.AnswerSet
	mood       mood.Category
	hasMood    bool
	generation uint64
	firstSeen  map[int]int
	published  *RecommendationResult

	trailers *lru.Cache[int, *string]
}

// NewSession creates a session with a trailer cache of trailerCacheSize entries.
func NewSession(lang models.Language, region models.Region, trailerCacheSize int) (*Session, error) {
	cache, err := lru.New[int, *string](max(1, trailerCacheSize))
	if err != nil {
		return nil, fmt.Errorf("create trailer cache: %w", err)
	}
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		language:  lang,
		region:    region,
		answers:   mood.AnswerSet{},
		firstSeen: make(map[int]int),
		trailers:  cache,
	}, nil
}

// SessionState is a point-in-time view of a session.
type SessionState struct {
	ID        string          `json:"id"`
	Language  models.Language `json:"language"`
	Region    models.Region   `json:"region"`
	Answers   mood.AnswerSet  `json:"answers"`
	Mood      *mood.Category  `json:"mood,omitempty"`
	Questions []mood.Question `json:"questions"`
	CreatedAt time.Time       `json:"created_at"`
}

// State snapshots the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(mood.AnswerSet, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	st := SessionState{
		ID:        s.ID,
		Language:  s.language,
		Region:    s.region,
		Answers:   answers,
		Questions: mood.Questions(s.language),
		CreatedAt: s.CreatedAt,
	}
	if s.hasMood {
		m := s.mood
		st.Mood = &m
	}
	return st
}

// Language returns the session's UI language.
func (s *Session) Language() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Region returns the session's watch region.
func (s *Session) Region() models.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

// Answer records one quiz answer after validating it.
func (s *Session) Answer(questionID, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := mood.ValidateAnswer(mood.Questions(s.language), questionID, optionID); err != nil {
		return err
	}
	s.answers[questionID] = optionID
	return nil
}

// ResolveMood validates the answers and fixes the session's mood. A mood
// different from the previous one clears the provider first-seen map.
func (s *Session) ResolveMood() (*mood.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := mood.Resolve(s.answers, s.language)
	if err != nil {
		return nil, err
	}
	s.setMoodLocked(res.Mood)
	return res, nil
}

// SetMood picks a mood directly, skipping the quiz.
func (s *Session) SetMood(m mood.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setMoodLocked(m)
}

func (s *Session) setMoodLocked(m mood.Category) {
	if !s.hasMood || s.mood != m {
		clear(s.firstSeen)
	}
	s.mood, s.hasMood = m, true
}

// Mood returns the resolved mood, if any.
func (s *Session) Mood() (mood.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mood, s.hasMood
}

// ResetMood starts the quiz over. Answers, mood, first-seen map and the
// last published results are cleared, and in-flight batches become stale.
func (s *Session) ResetMood() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = mood.AnswerSet{}
	s.mood, s.hasMood = "", false
	clear(s.firstSeen)
	s.published = nil
	s.generation++
}

// Published returns the last committed result set.
func (s *Session) Published() (*RecommendationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published, s.published != nil
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// excludedBy reports whether movieID was first surfaced under a provider
// other than providerID.
func (s *Session) excludedBy(movieID, providerID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.firstSeen[movieID]
	return ok && owner != providerID
}

// commit publishes result when gen is still current and claims the
// provider's movies in the first-seen map.
func (s *Session) commit(gen uint64, providerID int, result *RecommendationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrStaleBatch
	}
	if providerID > 0 {
		for _, m := range result.Movies {
			if _, ok := s.firstSeen[m.ID]; !ok {
				s.firstSeen[m.ID] = providerID
			}
		}
	}
	s.published = result
	return nil
}

func (s *Session) cachedTrailer(movieID int) (*string, bool) {
	return s.trailers.Get(movieID)
}

func (s *Session) cacheTrailer(movieID int, link *string) {
	s.trailers.Add(movieID, link)
}

// SessionManager keeps the most recently used sessions in memory.
type SessionManager struct {
	sessions         *lru.Cache[string, *Session]
	trailerCacheSize int
}

// NewSessionManager creates a registry holding up to capacity sessions.
func NewSessionManager(capacity, trailerCacheSize int) (*SessionManager, error) {
	cache, err := lru.New[string, *Session](max(1, capacity))
	if err != nil {
		return nil, fmt.Errorf("create session registry: %w", err)
	}
	return &SessionManager{sessions: cache, trailerCacheSize: trailerCacheSize}, nil
}

// Create starts and registers a new session.
func (m *SessionManager) Create(lang models.Language, region models.Region) (*Session, error) {
	sess, err := NewSession(lang, region, m.trailerCacheSize)
	if err != nil {
		return nil, err
	}
	m.sessions.Add(sess.ID, sess)
	return sess, nil
}

// Get looks a session up by id.
func (m *SessionManager) Get(id string) (*Session, error) {
	sess, ok := m.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Delete ends a session.
func (m *SessionManager) Delete(id string) bool {
	return m.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	return m.sessions.Len()
}
