package storygraph

// Config holds configuration for the source-list scraper.
type Config struct {
	// SolverURL is the FlareSolverr endpoint used to bypass the source
	// site's anti-bot protection.
	SolverURL string `mapstructure:"solver_url" default:"http://localhost:8191/v1"`
	// BaseURL is the source site root.
	BaseURL string `mapstructure:"base_url" default:"https://app.thestorygraph.com"`
	// TimeoutSeconds is the HTTP timeout for each solver call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// SolverTimeoutMS is the maxTimeout handed to the solver session.
	SolverTimeoutMS int `mapstructure:"solver_timeout_ms" default:"120000"`
	// MaxPages caps pagination when the list page carries no result count.
	MaxPages int `mapstructure:"max_pages" default:"50"`
}
