// Package updater replaces the bundled yt-dlp binary with the latest GitHub release.
package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/backend"
	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// HTTP constants
const (
	UserAgent      = "ytdlp-gui-updater"
	AcceptHeader   = "application/vnd.github+json"
	DefaultTimeout = 60 * time.Second
)

// Asset name filters
const (
	signatureMarker = ".sig"
	zipSuffix       = ".zip"
	tarGzSuffix     = ".tar.gz"
	exeSuffix       = ".exe"
)

// ErrNoAsset is returned when no release asset matches the platform
var ErrNoAsset = errors.New("no suitable yt-dlp binary found")

// Release is the subset of the GitHub release payload used here
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Version returns the tag without a leading "v"
func (r *Release) Version() string {
	return strings.TrimPrefix(strings.TrimSpace(r.TagName), "v")
}

// Status compares the installed version with the latest release
type Status struct {
	Current   string `json:"current"`
	Latest    string `json:"latest"`
	Available bool   `json:"available"`
}

// Versioner reports the installed yt-dlp version
type Versioner interface {
	YtdlpVersion(ctx context.Context) (model.VersionInfo, error)
}

// Updater checks for and installs yt-dlp releases
type Updater struct {
	releasesURL string
	client      *http.Client
	locator     *backend.Locator
	versioner   Versioner
	goos        string
	goarch      string
	logger      zerolog.Logger
}

// New creates an updater. A zero timeout uses DefaultTimeout.
func New(releasesURL string, timeout time.Duration, locator *backend.Locator, versioner Versioner) *Updater {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Updater{
		releasesURL: releasesURL,
		client:      &http.Client{Timeout: timeout},
		locator:     locator,
		versioner:   versioner,
		goos:        runtime.GOOS,
		goarch:      runtime.GOARCH,
		logger:      logging.Get("updater"),
	}
}

// LatestRelease fetches the latest release description
func (u *Updater) LatestRelease(ctx context.Context) (*Release, error) {
	resp, err := u.get(ctx, u.releasesURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release info: %w", err)
	}
	return &release, nil
}

// CheckUpdate reports whether the latest release differs from the installed version
func (u *Updater) CheckUpdate(ctx context.Context) (Status, error) {
	current, err := u.versioner.YtdlpVersion(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("failed to get current version: %w", err)
	}

	release, err := u.LatestRelease(ctx)
	if err != nil {
		return Status{}, err
	}

	status := Status{
		Current:   current.Version,
		Latest:    release.Version(),
		Available: current.Version != release.Version(),
	}
	u.logger.Debug().Str("current", status.Current).Str("latest", status.Latest).Msg("Checked for update")
	return status, nil
}

// Update downloads the platform binary of the latest release into the bundled
// resources directory
func (u *Updater) Update(ctx context.Context) (string, error) {
	release, err := u.LatestRelease(ctx)
	if err != nil {
		return "", err
	}

	name := backend.BinaryName(u.goos, u.goarch)
	asset, err := SelectAsset(release.Assets, name, u.goos, u.goarch)
	if err != nil {
		return "", err
	}

	dir := u.locator.BundledDir()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create resource directory: %w", err)
	}

	target := filepath.Join(dir, name)
	u.logger.Info().Str("asset", asset.Name).Str("target", target).Msg("Downloading yt-dlp")
	if err := u.download(ctx, asset.BrowserDownloadURL, target); err != nil {
		return "", err
	}

	return fmt.Sprintf("Updated to version %s", release.Version()), nil
}

// SelectAsset picks the asset for a platform: exact name, then a name containing it,
// then any yt-dlp binary whose name mentions the platform
func SelectAsset(assets []Asset, name, goos, goarch string) (Asset, error) {
	for _, a := range assets {
		if a.Name == name {
			return a, nil
		}
	}

	for _, a := range assets {
		if strings.Contains(a.Name, name) && !strings.Contains(a.Name, signatureMarker) {
			return a, nil
		}
	}

	patterns := platformPatterns(goos, goarch)
	wantExe := goos == platform.OSWindows
	for _, a := range assets {
		if !strings.Contains(a.Name, backend.CommandName) ||
			strings.Contains(a.Name, signatureMarker) ||
			strings.HasSuffix(a.Name, tarGzSuffix) ||
			strings.HasSuffix(a.Name, zipSuffix) {
			continue
		}
		if strings.HasSuffix(a.Name, exeSuffix) != wantExe {
			continue
		}
		lower := strings.ToLower(a.Name)
		for _, p := range patterns {
			if strings.Contains(lower, p) {
				return a, nil
			}
		}
	}

	return Asset{}, fmt.Errorf("%w for platform: %s", ErrNoAsset, name)
}

func platformPatterns(goos, goarch string) []string {
	switch goos {
	case platform.OSWindows:
		return []string{exeSuffix}
	case platform.OSDarwin:
		return []string{"macos"}
	default:
		if goarch == "arm64" {
			return []string{"linux", "arm64", "aarch64"}
		}
		return []string{"linux"}
	}
}

func (u *Updater) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", AcceptHeader)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp, nil
}

// download writes url to target through a temporary file in the same directory
func (u *Updater) download(ctx context.Context, url, target string) error {
	resp, err := u.get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write yt-dlp binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write yt-dlp binary: %w", err)
	}
	if err := os.Chmod(tmp.Name(), platform.ExecutablePermissions); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to install yt-dlp binary: %w", err)
	}
	return nil
}
