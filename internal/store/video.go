package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/validate"
)

// Messages stored in VideoState.Error
const (
	MsgInvalidURL = "Invalid YouTube URL. Please enter a valid YouTube video URL."
	MsgNoTitle    = "No title found"
)

// VideoStore tracks the URL being inspected
type VideoStore struct {
	*Writable[model.VideoState]
	resolver VideoResolver
	logger   zerolog.Logger

	mu          sync.Mutex
	lastFetched string
}

// NewVideoStore creates an empty VideoStore
func NewVideoStore(resolver VideoResolver) *VideoStore {
	return &VideoStore{
		Writable: NewWritable(model.NewVideoState()),
		resolver: resolver,
		logger:   logging.Get("store.video"),
	}
}

// SetURL stores the URL as typed, without fetching
func (s *VideoStore) SetURL(url string) {
	s.Update(func(st model.VideoState) model.VideoState {
		st.URL = url
		return st
	})
}

// ValidateAndFetch validates url and loads its metadata and formats.
// A URL equal to the last fetched one is ignored.
func (s *VideoStore) ValidateAndFetch(ctx context.Context, url string) {
	trimmed := strings.TrimSpace(url)

	s.mu.Lock()
	if trimmed == s.lastFetched {
		s.mu.Unlock()
		return
	}

	if trimmed == "" {
		s.lastFetched = ""
		s.mu.Unlock()
		s.Set(model.NewVideoState())
		return
	}

	if !validate.IsValidVideoURL(trimmed) {
		s.lastFetched = ""
		s.mu.Unlock()
		st := model.NewVideoState()
		st.URL = trimmed
		st.Error = MsgInvalidURL
		s.Set(st)
		return
	}

	s.lastFetched = trimmed
	s.mu.Unlock()

	s.Update(func(st model.VideoState) model.VideoState {
		st.URL = trimmed
		st.Loading = true
		st.Error = ""
		st.IsValid = true
		st.ShowDownloadSection = false
		return st
	})

	next := s.fetch(ctx, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFetched != trimmed {
		// superseded by a newer URL
		return
	}
	if next.Error != "" {
		s.lastFetched = ""
	}
	s.Set(next)
}

func (s *VideoStore) fetch(ctx context.Context, url string) model.VideoState {
	st := model.NewVideoState()
	st.URL = url

	info, err := s.resolver.VideoInfo(ctx, url)
	if err == nil && info.Title == "" {
		err = errNoTitle
	}
	if err != nil {
		st.Error = err.Error()
		return st
	}

	formats, err := s.resolver.VideoFormats(ctx, url)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("Failed to load video formats")
		formats = nil
	}

	st.Title = info.Title
	st.Formats = formats
	st.IsValid = true
	st.ShowDownloadSection = true
	return st
}

// SetQuality selects a format id, or "best"
func (s *VideoStore) SetQuality(quality string) {
	s.Update(func(st model.VideoState) model.VideoState {
		st.SelectedQuality = quality
		return st
	})
}

// Reset clears the state and the last fetched URL
func (s *VideoStore) Reset() {
	s.mu.Lock()
	s.lastFetched = ""
	s.mu.Unlock()
	s.Set(model.NewVideoState())
}

var errNoTitle = errors.New(MsgNoTitle)
