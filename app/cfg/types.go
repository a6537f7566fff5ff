package cfg

import "time"

type Cfg struct {
	// Storage locations
	ConfigDir string
	DataDir   string

	// Fetching
	WorkerCount  int
	FetchTimeout time.Duration
	FetchRetries int
	UserAgent    string

	// HTTP server
	Port         string
	APIAccessKey string

	// Application metadata
	Timezone  string
	Debug     bool
	LogFormat string
	Version   string
}
