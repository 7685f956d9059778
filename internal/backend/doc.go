// Package backend bridges the application to the yt-dlp executable.
//
// It locates the executable (configured path, bundled resources, then PATH),
// resolves video metadata and formats, and runs downloads as cancellable
// sessions whose output is published on an events.Bus.
package backend
