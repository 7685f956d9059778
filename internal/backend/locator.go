package backend

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Executable names
const (
	CommandName      = "yt-dlp"
	BinaryWindows    = "yt-dlp.exe"
	BinaryMacOS      = "yt-dlp_macos"
	BinaryLinux      = "yt-dlp_linux"
	BinaryLinuxARM64 = "yt-dlp_linux_arm64"
	ResourcesDirName = "resources"
	archARM64        = "arm64"
)

// bundledDirs are searched relative to the application executable
var bundledDirs = []string{
	ResourcesDirName,
	filepath.Join("..", ResourcesDirName),
	filepath.Join("..", "Resources", ResourcesDirName),
	filepath.Join("..", "..", ResourcesDirName),
}

// Locator resolves the yt-dlp executable
type Locator struct {
	ConfiguredPath string
	ResourcesDir   string
	ExecutableDir  string
	GOOS           string
	GOARCH         string
	LookPath       func(file string) (string, error)
}

// NewLocator creates a locator for the running platform
func NewLocator(configuredPath, resourcesDir string) *Locator {
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	return &Locator{
		ConfiguredPath: configuredPath,
		ResourcesDir:   resourcesDir,
		ExecutableDir:  exeDir,
		GOOS:           runtime.GOOS,
		GOARCH:         runtime.GOARCH,
		LookPath:       exec.LookPath,
	}
}

// BinaryName returns the release asset name of yt-dlp for a platform
func BinaryName(goos, goarch string) string {
	switch goos {
	case platform.OSWindows:
		return BinaryWindows
	case platform.OSDarwin:
		return BinaryMacOS
	case platform.OSLinux:
		if goarch == archARM64 {
			return BinaryLinuxARM64
		}
		return BinaryLinux
	default:
		return CommandName
	}
}

// BinaryName returns the platform binary name
func (l *Locator) BinaryName() string {
	return BinaryName(l.GOOS, l.GOARCH)
}

// SearchDirs returns the bundled resource directories in lookup order
func (l *Locator) SearchDirs() []string {
	var dirs []string
	if l.ExecutableDir != "" {
		for _, rel := range bundledDirs {
			dirs = append(dirs, filepath.Clean(filepath.Join(l.ExecutableDir, rel)))
		}
	}
	if l.ResourcesDir != "" {
		dirs = append(dirs, filepath.Clean(l.ResourcesDir))
	}
	return dirs
}

// Locate returns the path of yt-dlp and where it was found
func (l *Locator) Locate() (string, model.VersionSource, error) {
	if l.ConfiguredPath != "" {
		if platform.IsExecutableFile(l.ConfiguredPath) {
			return l.ConfiguredPath, model.SourcePath, nil
		}
		return "", "", fmt.Errorf("configured path %s: %w", l.ConfiguredPath, ErrYtdlpNotFound)
	}

	name := l.BinaryName()
	for _, dir := range l.SearchDirs() {
		candidate := filepath.Join(dir, name)
		if platform.IsExecutableFile(candidate) {
			return candidate, model.SourceBundled, nil
		}
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath(CommandName); err == nil {
		return path, model.SourcePath, nil
	}

	return "", "", ErrYtdlpNotFound
}

// BundledDir returns the directory an updated binary is installed into:
// the first existing search directory, else the configured resources dir,
// else resources next to the executable.
func (l *Locator) BundledDir() string {
	dirs := l.SearchDirs()
	for _, dir := range dirs {
		if platform.ValidateDirectory(dir) == nil {
			return dir
		}
	}
	if l.ResourcesDir != "" {
		return l.ResourcesDir
	}
	if l.ExecutableDir != "" {
		return filepath.Join(l.ExecutableDir, ResourcesDirName)
	}
	return ResourcesDirName
}
