// Package misc holds build identification used by the CLI and reporting.
package misc

// Overwritten at build time via -ldflags.
var (
	appName = "ppxcss"
	version = "0.0.0-dev"
	gitHash = "unknown"
)

// GetAppName returns short program name.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set at build time.
func GetVersion() string {
	return version
}

// GetGitHash returns git hash of the sources program was built from.
func GetGitHash() string {
	return gitHash
}
