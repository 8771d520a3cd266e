package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const (
	pageSizeFloor   = 10
	pageSizeCeiling = 100
	maxFetchCeiling = 1000
)

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"newsclip_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"newsclip_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"newsclip" description:"Database name"`

	// Source configuration
	NaverClientID     string `long:"naver-client-id" env:"NAVER_CLIENT_ID" description:"Naver open API client ID (source disabled when empty)"`
	NaverClientSecret string `long:"naver-client-secret" env:"NAVER_CLIENT_SECRET" description:"Naver open API client secret (source disabled when empty)"`
	GoogleNewsHL      string `long:"google-news-hl" env:"GOOGLE_NEWS_HL" default:"ko" description:"Google News interface language"`
	GoogleNewsGL      string `long:"google-news-gl" env:"GOOGLE_NEWS_GL" default:"KR" description:"Google News country code"`
	GoogleNewsCEID    string `long:"google-news-ceid" env:"GOOGLE_NEWS_CEID" default:"KR:ko" description:"Google News country:language edition"`

	// Crawl tuning
	DedupeThreshold float64 `long:"dedupe-threshold" env:"DEDUPE_TITLE_THRESHOLD" default:"0.82" description:"Jaccard similarity threshold for title dedup"`
	PageSize        int     `long:"page-size" env:"CRAWL_PAGE_SIZE" default:"100" description:"Items requested per provider page (clamped to 10..100)"`
	MaxFetch        int     `long:"max-fetch" env:"CRAWL_MAX_FETCH" default:"300" description:"Maximum items fetched per keyword per source (capped at 1000)"`
	SourceTimeout   int     `long:"source-timeout" env:"SOURCE_TIMEOUT" default:"20" description:"Per-source fetch timeout in seconds"`

	// Report tuning
	ReportWindowHours int    `long:"report-window-hours" env:"REPORT_WINDOW_HOURS" default:"24" description:"Trailing window for digest reports in hours"`
	ReportMaxItems    int    `long:"report-max-items" env:"REPORT_MAX_ARTICLES" default:"200" description:"Maximum articles included in a digest report"`
	RiskTerms         string `long:"risk-terms" env:"REPORT_RISK_TERMS" description:"Comma-separated risk terms overriding the built-in list"`

	// Delivery channels
	ResendAPIKey      string `long:"resend-api-key" env:"RESEND_API_KEY" description:"Resend API key (email channel disabled when empty)"`
	ReportEmailTo     string `long:"report-email-to" env:"REPORT_EMAIL_TO" description:"Digest recipient address"`
	ReportEmailFrom   string `long:"report-email-from" env:"REPORT_EMAIL_FROM" description:"Digest sender address"`
	LarkWebhookURL    string `long:"lark-webhook-url" env:"LARK_WEBHOOK_URL" description:"Lark webhook URL (chat channel disabled when empty)"`
	LarkMaxTextLength int    `long:"lark-max-text-length" env:"LARK_MAX_TEXT_LENGTH" default:"3500" description:"Maximum text length for Lark messages before truncation"`

	// Service configuration
	KeywordsDir           string `long:"keywords-dir" env:"KEYWORDS_DIR" default:"./keywords" description:"Directory containing keyword seed files"`
	Port                  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount           int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background task workers"`
	CrawlIntervalMinutes  int    `long:"crawl-interval" env:"CRAWL_INTERVAL_MINUTES" default:"60" description:"Minutes between scheduled crawl runs"`
	ReportIntervalMinutes int    `long:"report-interval" env:"REPORT_INTERVAL_MINUTES" default:"0" description:"Minutes between scheduled digest deliveries (0 disables)"`
	APIAccessKey          string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	UserAgent             string `long:"user-agent" env:"USER_AGENT" default:"NewsClip/1.0" description:"User agent string for HTTP requests"`
	Timezone              string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Seoul)"`
	Debug                 bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:                raw.DBHost,
		DBPort:                raw.DBPort,
		DBUser:                raw.DBUser,
		DBPassword:            raw.DBPassword,
		DBName:                raw.DBName,
		NaverClientID:         raw.NaverClientID,
		NaverClientSecret:     raw.NaverClientSecret,
		GoogleNewsHL:          raw.GoogleNewsHL,
		GoogleNewsGL:          raw.GoogleNewsGL,
		GoogleNewsCEID:        raw.GoogleNewsCEID,
		DedupeThreshold:       raw.DedupeThreshold,
		PageSize:              clamp(raw.PageSize, pageSizeFloor, pageSizeCeiling),
		MaxFetch:              min(raw.MaxFetch, maxFetchCeiling),
		SourceTimeout:         raw.SourceTimeout,
		ReportWindowHours:     raw.ReportWindowHours,
		ReportMaxItems:        raw.ReportMaxItems,
		RiskTerms:             raw.RiskTerms,
		ResendAPIKey:          raw.ResendAPIKey,
		ReportEmailTo:         raw.ReportEmailTo,
		ReportEmailFrom:       raw.ReportEmailFrom,
		LarkWebhookURL:        raw.LarkWebhookURL,
		LarkMaxTextLength:     raw.LarkMaxTextLength,
		KeywordsDir:           raw.KeywordsDir,
		Port:                  raw.Port,
		WorkerCount:           raw.WorkerCount,
		CrawlIntervalMinutes:  raw.CrawlIntervalMinutes,
		ReportIntervalMinutes: raw.ReportIntervalMinutes,
		APIAccessKey:          raw.APIAccessKey,
		UserAgent:             raw.UserAgent,
		Timezone:              raw.Timezone,
		Debug:                 raw.Debug,
		Version:               GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Used by tests.
func Set(c *Cfg) {
	globalCfg = c
}

func clamp(v, floor, ceiling int) int {
	if v < floor {
		return floor
	}
	if v > ceiling {
		return ceiling
	}
	return v
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
