package version

// Build information set by ldflags
var (
	Version = "dev"     // Set at build time: -X hanoibak/internal/version.Version=<tag>
	Commit  = "unknown" // Set at build time: -X hanoibak/internal/version.Commit=<sha>
	Date    = "unknown" // Set at build time: -X hanoibak/internal/version.Date=<date>
)
