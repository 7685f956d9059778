package backend

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Messages published and returned by Download
const (
	MsgDownloadCompleted   = "Download completed successfully"
	MsgDownloadCompletedTo = "Download completed to: "
	MsgReadErrorPrefix     = "Error reading output: "
	SessionIDPrefix        = "download-"
	DefaultOutputTemplate  = "%(title)s.%(ext)s"
	maxLineBytes           = 1024 * 1024

	// pipeDrainDelay bounds how long output is read after a cancel
	pipeDrainDelay = 2 * time.Second
)

// Options configures a Service
type Options struct {
	YtdlpPath      string
	ResourcesDir   string
	OutputTemplate string
	AppVersion     string
	Locations      LocationStore
}

// session is one running download
type session struct {
	id      string
	url     string
	cancel  context.CancelFunc
	started time.Time
}

// Service runs yt-dlp on behalf of the application
type Service struct {
	locator        *Locator
	locations      LocationStore
	outputTemplate string
	appVersion     string
	bus            *events.Bus
	logger         zerolog.Logger

	mu     sync.Mutex
	active *session
}

// NewService creates a new backend service
func NewService(opts Options) *Service {
	template := opts.OutputTemplate
	if template == "" {
		template = DefaultOutputTemplate
	}
	return &Service{
		locator:        NewLocator(opts.YtdlpPath, opts.ResourcesDir),
		locations:      opts.Locations,
		outputTemplate: template,
		appVersion:     opts.AppVersion,
		bus:            events.NewBus(),
		logger:         logging.Get("backend"),
	}
}

// Locator returns the executable locator
func (s *Service) Locator() *Locator {
	return s.locator
}

// Events returns the bus download output is published on
func (s *Service) Events() *events.Bus {
	return s.bus
}

// AppVersion returns the application version
func (s *Service) AppVersion() string {
	return s.appVersion
}

// YtdlpVersion returns the version of the located yt-dlp executable
func (s *Service) YtdlpVersion(ctx context.Context) (model.VersionInfo, error) {
	path, source, err := s.locator.Locate()
	if err != nil {
		return model.VersionInfo{}, err
	}

	out, err := s.run(ctx, path, VersionArgs()...)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to get yt-dlp version: %w", err)
	}

	return model.VersionInfo{
		Version: strings.TrimSpace(string(out)),
		Source:  source,
	}, nil
}

// VideoInfo resolves metadata for a video URL
func (s *Service) VideoInfo(ctx context.Context, url string) (model.VideoInfo, error) {
	path, _, err := s.locator.Locate()
	if err != nil {
		return model.VideoInfo{}, err
	}

	out, err := s.run(ctx, path, InfoArgs(url)...)
	if err != nil {
		return model.VideoInfo{}, err
	}

	return ParseVideoInfo(out)
}

// VideoFormats lists the selectable formats for a video URL
func (s *Service) VideoFormats(ctx context.Context, url string) ([]model.VideoFormat, error) {
	path, _, err := s.locator.Locate()
	if err != nil {
		return nil, err
	}

	out, err := s.run(ctx, path, FormatsArgs(url)...)
	if err != nil {
		return nil, err
	}

	return ParseFormats(out)
}

// Download runs a download into the configured location and blocks until it ends.
// Only one download may run at a time.
func (s *Service) Download(ctx context.Context, url, quality string) (string, error) {
	dir, err := s.DownloadLocation()
	if err != nil {
		return "", err
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path, _, err := s.locator.Locate()
	if err != nil {
		return "", err
	}

	sessCtx, sess, err := s.beginSession(ctx, url)
	if err != nil {
		return "", err
	}
	defer s.endSession(sess)

	args := DownloadArgs(dir, s.outputTemplate, quality, url)
	cmd := exec.CommandContext(sessCtx, path, args...)
	configureProcess(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	s.logger.Debug().Str("session", sess.id).Str("path", path).Strs("args", args).Msg("Starting download")
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	var tail lineTail
	var wg sync.WaitGroup
	wg.Add(2)
	go s.monitorOutput(stdout, nil, &wg)
	go s.monitorOutput(stderr, &tail, &wg)
	s.awaitOutput(sessCtx, &wg, stdout, stderr)

	err = cmd.Wait()
	elapsed := time.Since(sess.started)

	if err != nil && sessCtx.Err() != nil {
		s.logger.Info().Str("session", sess.id).Dur("elapsed", elapsed).Msg("Download cancelled")
		return "", ErrDownloadCancelled
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("session", sess.id).Str("stderr", tail.String()).Msg("Download failed")
		return "", &ProcessError{
			Args:   args,
			Stderr: tail.String(),
			Err:    fmt.Errorf("%w: %v", ErrDownloadFailed, err),
		}
	}

	s.logger.Info().Str("session", sess.id).Dur("elapsed", elapsed).Str("dir", dir).Msg("Download completed")
	s.bus.Emit(events.TopicDownloadOutput, MsgDownloadCompleted)
	return MsgDownloadCompletedTo + dir, nil
}

// CancelDownload stops the running download, if any
func (s *Service) CancelDownload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}

	s.logger.Debug().Str("session", s.active.id).Msg("Cancelling download")
	s.active.cancel()
	return nil
}

// ActiveDownload returns the URL of the running download
func (s *Service) ActiveDownload() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return "", false
	}
	return s.active.url, true
}

// DownloadLocation returns the stored download location, or the platform
// Downloads directory when the stored one is missing or invalid
func (s *Service) DownloadLocation() (string, error) {
	if s.locations != nil {
		if dir := s.locations.GetDownloadLocation(); dir != "" && platform.ValidateDirectory(dir) == nil {
			return dir, nil
		}
	}

	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve download location: %w", err)
	}
	return dir, nil
}

// SetDownloadLocation stores dir after checking that it is an existing directory
func (s *Service) SetDownloadLocation(dir string) error {
	if err := platform.ValidateDirectory(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	if s.locations == nil {
		return fmt.Errorf("%w: no preference store", ErrInvalidLocation)
	}
	if err := s.locations.SetDownloadLocation(dir); err != nil {
		return fmt.Errorf("failed to save download location: %w", err)
	}
	s.logger.Info().Str("dir", dir).Msg("Download location saved")
	return nil
}

// run executes yt-dlp and returns its stdout
func (s *Service) run(ctx context.Context, path string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr

	start := time.Now()
	out, err := cmd.Output()
	if err != nil {
		s.logger.Warn().Err(err).Strs("args", args).Str("stderr", lastLine(stderr.String())).Msg("yt-dlp failed")
		return nil, &ProcessError{Args: args, Stderr: stderr.String(), Err: err}
	}

	s.logger.Debug().Strs("args", args).Dur("elapsed", time.Since(start)).Msg("yt-dlp finished")
	return out, nil
}

// beginSession registers a new download session
func (s *Service) beginSession(ctx context.Context, url string) (context.Context, *session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, nil, ErrDownloadInProgress
	}

	sessCtx, cancel := context.WithCancel(ctx)
	sess := &session{
		id:      generateSessionID(),
		url:     url,
		cancel:  cancel,
		started: time.Now(),
	}
	s.active = sess
	return sessCtx, sess, nil
}

// endSession releases the session if it is still the active one
func (s *Service) endSession(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.cancel()
	if s.active == sess {
		s.active = nil
	}
}

// monitorOutput publishes each non-empty line read from r
func (s *Service) monitorOutput(r io.ReadCloser, tail *lineTail, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if tail != nil {
			tail.add(line)
		}
		s.bus.Emit(events.TopicDownloadOutput, line)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) && !errors.Is(err, os.ErrClosed) {
		s.bus.Emit(events.TopicDownloadError, MsgReadErrorPrefix+err.Error())
	}
}

// awaitOutput waits for the monitors to finish. Once ctx is done the pipes are
// closed after pipeDrainDelay, since a process outside our reach may still hold
// their write ends.
func (s *Service) awaitOutput(ctx context.Context, wg *sync.WaitGroup, pipes ...io.Closer) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
	}

	timer := time.NewTimer(pipeDrainDelay)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		s.logger.Warn().Msg("Output still open after cancel, closing pipes")
		for _, p := range pipes {
			_ = p.Close()
		}
		<-done
	}
}

// lineTail keeps the last few lines written to it
type lineTail struct {
	mu    sync.Mutex
	lines []string
}

const tailSize = 5

func (t *lineTail) add(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, line)
	if len(t.lines) > tailSize {
		t.lines = t.lines[len(t.lines)-tailSize:]
	}
}

func (t *lineTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}

// generateSessionID generates a time-ordered session ID
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(SessionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SessionIDPrefix + id.String()
}

var _ Bridge = (*Service)(nil)
