package config

import (
	yamlenv "github.com/ifuryst/go-yaml-env"
	"github.com/jwlee-dev/blogpilot/pkg/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Logger    logger.Config   `yaml:"logger"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Unsplash  UnsplashConfig  `yaml:"unsplash"`
	Blogger   BloggerConfig   `yaml:"blogger"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	Host     string `yaml:"host"`
	Mode     string `yaml:"mode"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	TimeZone string `yaml:"timezone"`
}

type OpenAIConfig struct {
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	VisionModel string `yaml:"vision_model"`
	MaxTokens   int    `yaml:"max_tokens"`
}

type YouTubeConfig struct {
	APIKey         string   `yaml:"api_key"`
	SearchKeywords []string `yaml:"search_keywords"`
	MaxPerKeyword  int      `yaml:"max_per_keyword"`
	MaxVideos      int      `yaml:"max_videos"`
	LookbackDays   int      `yaml:"lookback_days"`
	MinDescription int      `yaml:"min_description"`
}

type UnsplashConfig struct {
	AccessKey   string `yaml:"access_key"`
	PerKeyword  int    `yaml:"per_keyword"`
	Orientation string `yaml:"orientation"`
}

type BloggerConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	BlogID       string `yaml:"blog_id"`
}

type SchedulerConfig struct {
	Enabled           bool   `yaml:"enabled"`
	CronSpec          string `yaml:"cron_spec"`
	InformationalHour int    `yaml:"informational_hour"`
	DefaultKeywords   string `yaml:"default_keywords"`
}

type AuthConfig struct {
	TOTPSecret string `yaml:"totp_secret"`
}

func LoadConfig(configPath string) (*Config, error) {
	cfg, err := yamlenv.LoadConfig[Config](configPath)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5620
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.TimeZone == "" {
		cfg.Database.TimeZone = "UTC"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.VisionModel == "" {
		cfg.OpenAI.VisionModel = cfg.OpenAI.Model
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = 4000
	}
	if len(cfg.YouTube.SearchKeywords) == 0 {
		cfg.YouTube.SearchKeywords = []string{
			"재테크", "주식 투자", "부동산 전망", "경제 뉴스",
			"ETF 추천", "미국 주식", "절세", "금융 상식",
		}
	}
	if cfg.YouTube.MaxPerKeyword == 0 {
		cfg.YouTube.MaxPerKeyword = 2
	}
	if cfg.YouTube.MaxVideos == 0 {
		cfg.YouTube.MaxVideos = 2
	}
	if cfg.YouTube.LookbackDays == 0 {
		cfg.YouTube.LookbackDays = 7
	}
	if cfg.YouTube.MinDescription == 0 {
		cfg.YouTube.MinDescription = 100
	}
	if cfg.Unsplash.PerKeyword == 0 {
		cfg.Unsplash.PerKeyword = 2
	}
	if cfg.Unsplash.Orientation == "" {
		cfg.Unsplash.Orientation = "landscape"
	}
	if cfg.Scheduler.CronSpec == "" {
		cfg.Scheduler.CronSpec = "0 * * * *"
	}
	if cfg.Scheduler.DefaultKeywords == "" {
		cfg.Scheduler.DefaultKeywords = "금리, 주식, 부동산, 투자, 경제"
	}
}
