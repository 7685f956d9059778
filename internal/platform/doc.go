// Package platform contains OS integration helpers: the default downloads
// directory, directory validation, executable checks and revealing a folder
// in the system file manager.
package platform
