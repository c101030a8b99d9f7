package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for downloaded and generated files: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for album folders: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755
)

// OverwriteFileFlags opens a file for writing, truncating whatever was there before.
const OverwriteFileFlags = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
