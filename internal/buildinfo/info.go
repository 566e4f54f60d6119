package buildinfo

// Set via -ldflags "-X github.com/agencia-dev/agencia/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
