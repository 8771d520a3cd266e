package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Naver open API credentials; both must be set for the source to be enabled
	NaverClientID     string
	NaverClientSecret string

	// Google News RSS locale
	GoogleNewsHL   string
	GoogleNewsGL   string
	GoogleNewsCEID string

	// Crawl tuning
	DedupeThreshold float64
	PageSize        int
	MaxFetch        int
	SourceTimeout   int

	// Report tuning
	ReportWindowHours int
	ReportMaxItems    int
	RiskTerms         string

	// Email delivery (Resend)
	ResendAPIKey    string
	ReportEmailTo   string
	ReportEmailFrom string

	// Lark webhook delivery
	LarkWebhookURL    string
	LarkMaxTextLength int

	// Service configuration
	KeywordsDir           string
	Port                  string
	WorkerCount           int
	CrawlIntervalMinutes  int
	ReportIntervalMinutes int
	APIAccessKey          string
	UserAgent             string
	Timezone              string
	Debug                 bool
	Version               string
}
