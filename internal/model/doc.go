// Package model defines the data exchanged with the yt-dlp bridge (video info,
// formats, version) and the state shapes mirrored by the reactive stores.
package model
