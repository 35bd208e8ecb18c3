package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver" validate:"required|in:file,sqlite"`
	FilePath string `yaml:"filePath" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

// CacheConfig sizes the in-memory response cache of the HTTP adapter.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ProfileConfig holds the usernames used until the user stores their own.
type ProfileConfig struct {
	LeetCode string `yaml:"leetcode"`
	Gfg      string `yaml:"gfg"`
}

type LeetCodeSource struct {
	PrimaryBase      string        `yaml:"primaryBase" validate:"required"`
	AlternateBase    string        `yaml:"alternateBase" validate:"required"`
	PrimaryTimeout   time.Duration `yaml:"primaryTimeout" validate:"required|min:1"`
	AlternateTimeout time.Duration `yaml:"alternateTimeout" validate:"required|min:1"`
}

// ProxyConfig describes one CORS proxy mirror. Url is a fmt template taking
// the escaped target URL. Envelope is "direct" (body passed through) or
// "wrapped" (body inside a JSON "contents" field).
type ProxyConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Url      string `yaml:"url" validate:"required"`
	Envelope string `yaml:"envelope" validate:"required|in:direct,wrapped"`
}

type GfgSource struct {
	AuthApi       string        `yaml:"authApi" validate:"required"`
	ProfileUrl    string        `yaml:"profileUrl" validate:"required"`
	DirectTimeout time.Duration `yaml:"directTimeout" validate:"required|min:1"`
	ProxyTimeout  time.Duration `yaml:"proxyTimeout" validate:"required|min:1"`
	Proxies       []ProxyConfig `yaml:"proxies"`
}

type SourcesConfig struct {
	LeetCode LeetCodeSource `yaml:"leetcode"`
	Gfg      GfgSource      `yaml:"gfg"`
	CacheTTL time.Duration  `yaml:"cacheTTL" validate:"required|min:1"`
}

type LedgerConfig struct {
	MaxEntries int `yaml:"maxEntries" validate:"required|min:1"`
	DailyGoal  int `yaml:"dailyGoal" validate:"required|min:1"`
	WeeklyGoal int `yaml:"weeklyGoal" validate:"required|min:1"`
}

type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Profile   ProfileConfig `yaml:"profile"`
	Sources   SourcesConfig `yaml:"sources"`
	Ledger    LedgerConfig  `yaml:"ledger"`
	Refresh   RefreshConfig `yaml:"refresh"`
}
