package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// fakeYtdlp imitates the yt-dlp command line for the flags the service uses.
// The last argument selects the behaviour of a download.
const fakeYtdlp = `#!/bin/sh
for last; do :; done
printf '%s\n' "$@" > "$(dirname "$0")/args.txt"
case "$1" in
--version)
	echo "2024.08.06"
	;;
--dump-json)
	if [ "$last" = "https://youtu.be/missing" ]; then
		echo "ERROR: [youtube] missing: Video unavailable" >&2
		exit 1
	fi
	echo '{"title": "Test Video", "duration": 125, "view_count": 1234, "uploader": "Tester"}'
	;;
-J)
	echo '{"formats": [{"format_id": "18", "ext": "mp4", "vcodec": "avc1", "resolution": "640x360", "fps": 25}, {"format_id": "140", "ext": "m4a", "vcodec": "none"}]}'
	;;
--output)
	case "$last" in
	*fail*)
		echo "[youtube] fail: Downloading webpage"
		echo "ERROR: [youtube] fail: Sign in to confirm your age" >&2
		exit 1
		;;
	*slow*)
		echo "[download]   1.0% of 10.00MiB at  1.00MiB/s ETA 00:09"
		exec sleep 30
		;;
	*child*)
		echo "[download] Destination: video.f137.mp4"
		sleep 20
		echo "[Merger] Merging formats into video.mp4"
		;;
	*)
		printf '[download] Destination: video.mp4\r\n'
		echo ""
		echo "[download]  50.0% of 10.00MiB at  2.00MiB/s ETA 00:03"
		echo "[download] 100% of 10.00MiB in 00:05"
		;;
	esac
	;;
esac
`

type memLocations struct {
	mu  sync.Mutex
	dir string
}

func (m *memLocations) GetDownloadLocation() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dir
}

func (m *memLocations) SetDownloadLocation(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dir = dir
	return nil
}

type recorder struct {
	mu     sync.Mutex
	output []string
	errs   []string
}

func (r *recorder) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.output...)
}

func listen(bus *events.Bus) *recorder {
	r := &recorder{}
	bus.Listen(events.TopicDownloadOutput, func(line string) {
		r.mu.Lock()
		r.output = append(r.output, line)
		r.mu.Unlock()
	})
	bus.Listen(events.TopicDownloadError, func(msg string) {
		r.mu.Lock()
		r.errs = append(r.errs, msg)
		r.mu.Unlock()
	})
	return r
}

func newTestService(t *testing.T) (*Service, string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a shell script")
	}

	binDir := t.TempDir()
	script := filepath.Join(binDir, "yt-dlp")
	require.NoError(t, os.WriteFile(script, []byte(fakeYtdlp), 0755))

	downloads := t.TempDir()
	svc := NewService(Options{
		YtdlpPath:  script,
		AppVersion: "1.2.3",
		Locations:  &memLocations{dir: downloads},
	})
	return svc, binDir, downloads
}

func recordedArgs(t *testing.T, binDir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(binDir, "args.txt"))
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestService_YtdlpVersion(t *testing.T) {
	svc, _, _ := newTestService(t)

	info, err := svc.YtdlpVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.VersionInfo{Version: "2024.08.06", Source: model.SourcePath}, info)
	assert.Equal(t, "1.2.3", svc.AppVersion())
}

func TestService_VideoInfo(t *testing.T) {
	svc, binDir, _ := newTestService(t)

	info, err := svc.VideoInfo(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, "Test Video", info.Title)
	assert.Equal(t, "Tester", info.Uploader)
	assert.Equal(t, "02:05", info.DurationString())
	assert.Equal(t, []string{"--dump-json", "--no-download", "--no-warnings", "https://youtu.be/abc"}, recordedArgs(t, binDir))
}

func TestService_VideoInfo_Error(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.VideoInfo(context.Background(), "https://youtu.be/missing")
	require.Error(t, err)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Contains(t, procErr.Stderr, "Video unavailable")
	assert.Equal(t, "ERROR: [youtube] missing: Video unavailable", err.Error())
}

func TestService_VideoFormats(t *testing.T) {
	svc, _, _ := newTestService(t)

	formats, err := svc.VideoFormats(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	require.Len(t, formats, 1)
	assert.Equal(t, "18", formats[0].FormatID)
	assert.Equal(t, "640x360 (MP4) @ 25fps", formats[0].QualityLabel)
}

func TestService_Download(t *testing.T) {
	svc, binDir, downloads := newTestService(t)
	rec := listen(svc.Events())

	msg, err := svc.Download(context.Background(), "https://youtu.be/abc", "best")
	require.NoError(t, err)
	assert.Equal(t, "Download completed to: "+downloads, msg)

	lines := rec.lines()
	assert.Contains(t, lines, "[download] Destination: video.mp4")
	assert.Contains(t, lines, "[download]  50.0% of 10.00MiB at  2.00MiB/s ETA 00:03")
	assert.NotContains(t, lines, "")
	assert.Equal(t, MsgDownloadCompleted, lines[len(lines)-1])

	args := recordedArgs(t, binDir)
	assert.Equal(t, "--output", args[0])
	assert.Equal(t, filepath.Join(downloads, DefaultOutputTemplate), args[1])
	assert.Contains(t, args, SelectorBest)

	_, active := svc.ActiveDownload()
	assert.False(t, active)
}

func TestService_Download_Failure(t *testing.T) {
	svc, _, _ := newTestService(t)
	rec := listen(svc.Events())

	_, err := svc.Download(context.Background(), "https://youtu.be/fail", "best")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.Contains(t, err.Error(), "Sign in to confirm your age")
	assert.NotContains(t, rec.lines(), MsgDownloadCompleted)
}

func TestService_Download_Cancel(t *testing.T) {
	svc, _, _ := newTestService(t)

	started := make(chan struct{})
	var once sync.Once
	svc.Events().Listen(events.TopicDownloadOutput, func(string) {
		once.Do(func() { close(started) })
	})

	result := make(chan error, 1)
	go func() {
		_, err := svc.Download(context.Background(), "https://youtu.be/slow", "best")
		result <- err
	}()

	select {
	case <-started:
	case <-time.After(10 * time.Second):
		t.Fatal("download did not produce output")
	}

	url, active := svc.ActiveDownload()
	assert.True(t, active)
	assert.Equal(t, "https://youtu.be/slow", url)

	_, err := svc.Download(context.Background(), "https://youtu.be/other", "best")
	assert.ErrorIs(t, err, ErrDownloadInProgress)

	require.NoError(t, svc.CancelDownload())

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrDownloadCancelled)
		assert.Contains(t, err.Error(), "cancelled")
	case <-time.After(10 * time.Second):
		t.Fatal("download was not cancelled")
	}

	_, active = svc.ActiveDownload()
	assert.False(t, active)
}

func TestService_Download_CancelKillsChildProcesses(t *testing.T) {
	svc, _, _ := newTestService(t)

	started := make(chan struct{})
	var once sync.Once
	svc.Events().Listen(events.TopicDownloadOutput, func(string) {
		once.Do(func() { close(started) })
	})

	result := make(chan error, 1)
	go func() {
		_, err := svc.Download(context.Background(), "https://youtu.be/child", "best")
		result <- err
	}()

	select {
	case <-started:
	case <-time.After(10 * time.Second):
		t.Fatal("download did not produce output")
	}

	require.NoError(t, svc.CancelDownload())

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrDownloadCancelled)
	case <-time.After(5 * time.Second):
		t.Fatal("download still running after cancel")
	}

	_, active := svc.ActiveDownload()
	assert.False(t, active)

	msg, err := svc.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "best")
	require.NoError(t, err)
	assert.Contains(t, msg, MsgDownloadCompletedTo)
}

func TestService_AwaitOutputClosesHeldPipes(t *testing.T) {
	svc := NewService(Options{})
	rec := listen(svc.Events())

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go svc.monitorOutput(r, nil, &wg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	svc.awaitOutput(ctx, &wg, r)
	assert.Less(t, time.Since(start), pipeDrainDelay+3*time.Second)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.errs)
}

func TestService_CancelWithoutDownload(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.NoError(t, svc.CancelDownload())
}

func TestService_DownloadLocation(t *testing.T) {
	store := &memLocations{}
	svc := NewService(Options{Locations: store})

	// nothing stored: platform default
	dir, err := svc.DownloadLocation()
	require.NoError(t, err)
	assert.Equal(t, "Downloads", filepath.Base(dir))

	valid := t.TempDir()
	require.NoError(t, svc.SetDownloadLocation(valid))
	assert.Equal(t, valid, store.GetDownloadLocation())

	dir, err = svc.DownloadLocation()
	require.NoError(t, err)
	assert.Equal(t, valid, dir)

	err = svc.SetDownloadLocation(filepath.Join(valid, "missing"))
	assert.ErrorIs(t, err, ErrInvalidLocation)
	assert.Equal(t, valid, store.GetDownloadLocation())

	file := filepath.Join(valid, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.ErrorIs(t, svc.SetDownloadLocation(file), ErrInvalidLocation)

	// a stored path that disappeared falls back to the default
	store.dir = filepath.Join(valid, "gone")
	dir, err = svc.DownloadLocation()
	require.NoError(t, err)
	assert.Equal(t, "Downloads", filepath.Base(dir))
}

func TestService_MissingExecutable(t *testing.T) {
	svc := NewService(Options{YtdlpPath: filepath.Join(t.TempDir(), "missing")})

	_, err := svc.YtdlpVersion(context.Background())
	assert.ErrorIs(t, err, ErrYtdlpNotFound)
}
