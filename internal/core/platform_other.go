//go:build !windows

package core

// archiveExt is the Go distribution archive format for this platform.
const archiveExt = "tar.gz"
