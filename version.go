package souqna

// Version information for the Souqna session core
const (
	// Version is the current release version
	Version = "development"

	// APIVersion is the current HTTP API version
	APIVersion = "v1"

	// BuildDate is set during build time
	BuildDate = "development"

	// GitCommit is set during build time
	GitCommit = "unknown"
)
