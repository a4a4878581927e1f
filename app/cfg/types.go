package cfg

type Cfg struct {
	// Upstream configuration
	YouTubeAPIKey string

	// Application configuration
	DataDir          string
	Port             string
	BaseUrl          string
	ImportFile       string
	VideosPerChannel int
	SearchMaxResults int
	RSSFallback      bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
