package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// Defaults of a DownloadStore
const (
	DefaultMaxOutputLines   = 3
	DefaultClearOutputAfter = 2 * time.Second
)

// Texts stored in DownloadState
const (
	ButtonDownload     = "Download Video"
	ButtonDownloading  = "Downloading..."
	StatusDownloading  = "Downloading video..."
	StatusCancelled    = "Download cancelled"
	StatusFailedPrefix = "Download failed: "
)

// ErrBusy is returned by Start while a download is running
var ErrBusy = errors.New("a download is already in progress")

// DownloadStore drives a download and keeps its latest output lines
type DownloadStore struct {
	*Writable[model.DownloadState]
	downloader Downloader
	maxLines   int
	clearAfter time.Duration
	logger     zerolog.Logger

	mu         sync.Mutex
	running    bool
	unlisten   []events.Unlisten
	clearTimer *time.Timer
}

// NewDownloadStore creates an idle DownloadStore. Non-positive limits use the defaults.
func NewDownloadStore(downloader Downloader, maxLines int, clearAfter time.Duration) *DownloadStore {
	if maxLines <= 0 {
		maxLines = DefaultMaxOutputLines
	}
	if clearAfter <= 0 {
		clearAfter = DefaultClearOutputAfter
	}
	return &DownloadStore{
		Writable:   NewWritable(idleDownloadState()),
		downloader: downloader,
		maxLines:   maxLines,
		clearAfter: clearAfter,
		logger:     logging.Get("store.download"),
	}
}

func idleDownloadState() model.DownloadState {
	return model.DownloadState{
		StatusType: model.StatusMuted,
		ButtonText: ButtonDownload,
	}
}

// Start runs a download and blocks until it ends. Output lines are kept while
// the download is active; the result is reflected in the status.
func (s *DownloadStore) Start(ctx context.Context, url, quality string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrBusy
	}
	s.running = true
	s.stopClearTimerLocked()
	s.mu.Unlock()

	s.Set(model.DownloadState{
		InProgress: true,
		Active:     true,
		Status:     StatusDownloading,
		StatusType: model.StatusPrimary,
		ButtonText: ButtonDownloading,
		ShowCancel: true,
	})

	bus := s.downloader.Events()
	unlisten := []events.Unlisten{
		bus.Listen(events.TopicDownloadOutput, s.appendLine),
		bus.Listen(events.TopicDownloadError, func(msg string) {
			s.logger.Warn().Str("error", msg).Msg("Download output error")
		}),
	}
	s.mu.Lock()
	s.unlisten = unlisten
	s.mu.Unlock()

	result, err := s.downloader.Download(ctx, url, quality)

	s.mu.Lock()
	s.unlistenLocked()
	s.running = false
	s.mu.Unlock()

	if err != nil {
		st := idleDownloadState()
		if isCancellation(err) {
			st.Status = StatusCancelled
		} else {
			st.Status = StatusFailedPrefix + err.Error()
			st.StatusType = model.StatusError
		}
		s.Set(st)
		return err
	}

	s.Update(func(st model.DownloadState) model.DownloadState {
		st.InProgress = false
		st.Active = false
		st.Status = result
		st.StatusType = model.StatusSuccess
		st.ButtonText = ButtonDownload
		st.ShowCancel = false
		return st
	})

	s.mu.Lock()
	s.clearTimer = time.AfterFunc(s.clearAfter, s.clearOutput)
	s.mu.Unlock()
	return nil
}

// Cancel stops listening for output and asks the backend to cancel
func (s *DownloadStore) Cancel() error {
	s.mu.Lock()
	s.unlistenLocked()
	s.mu.Unlock()

	if err := s.downloader.CancelDownload(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cancel download")
		return err
	}

	st := idleDownloadState()
	st.Status = StatusCancelled
	s.Set(st)
	return nil
}

// SetStatus sets the status line
func (s *DownloadStore) SetStatus(status string, statusType model.StatusType) {
	s.Update(func(st model.DownloadState) model.DownloadState {
		st.Status = status
		st.StatusType = statusType
		return st
	})
}

// Reset returns to the idle state
func (s *DownloadStore) Reset() {
	s.mu.Lock()
	s.stopClearTimerLocked()
	s.mu.Unlock()
	s.Set(idleDownloadState())
}

func (s *DownloadStore) appendLine(line string) {
	s.Update(func(st model.DownloadState) model.DownloadState {
		if !st.Active {
			return st
		}
		lines := append(append([]string(nil), st.OutputLines...), line)
		if len(lines) > s.maxLines {
			lines = lines[len(lines)-s.maxLines:]
		}
		st.OutputLines = lines
		st.ShowProgress = true
		return st
	})
}

func (s *DownloadStore) clearOutput() {
	s.Update(func(st model.DownloadState) model.DownloadState {
		if st.InProgress {
			return st
		}
		st.OutputLines = nil
		st.ShowProgress = false
		return st
	})
}

func (s *DownloadStore) unlistenLocked() {
	for _, fn := range s.unlisten {
		fn()
	}
	s.unlisten = nil
}

func (s *DownloadStore) stopClearTimerLocked() {
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
}

func isCancellation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "cancelled") || strings.Contains(msg, "Cancel")
}
