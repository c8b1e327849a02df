// Package fileutil holds shared filesystem conventions.
package fileutil

import "os"

// ReadableByAll is the file permission mode for generated module files,
// which are source code meant to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644
