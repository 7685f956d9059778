// Package cli defines the ytdlp-gui command tree.
//
// Running the binary without a subcommand opens the desktop window. The
// other commands expose the same bridge from a terminal or a browser.
package cli
