package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type DiscordConfig struct {
	Token string `yaml:"token" validate:"required"`
	// GuildID limits slash-command registration to one guild when set.
	// Empty registers the commands globally.
	GuildID string `yaml:"guildID"`
}

type ResolverConfig struct {
	APIKey   string        `yaml:"apiKey" validate:"required"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" validate:"required|min:1"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

type Persistence struct {
	Dir  string `yaml:"dir" validate:"required|unixPath"`
	Mode uint32 `yaml:"mode"`
}

type BackupConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Dir      string        `yaml:"dir"`
	Interval time.Duration `yaml:"interval"`
	TTL      time.Duration `yaml:"ttl"`
}

type GuardConfig struct {
	UserCooldown time.Duration `yaml:"userCooldown" validate:"required|min:1"`
	MessageTTL   time.Duration `yaml:"messageTTL" validate:"required|min:1"`
}

type ImportConfig struct {
	MaxItems           int   `yaml:"maxItems"`
	MaxAttachmentBytes int64 `yaml:"maxAttachmentBytes"`
}

type DirectoryConfig struct {
	PageSize int `yaml:"pageSize"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Discord     DiscordConfig   `yaml:"discord"`
	Resolver    ResolverConfig  `yaml:"resolver"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Backup      BackupConfig    `yaml:"backup"`
	Guard       GuardConfig     `yaml:"guard"`
	Import      ImportConfig    `yaml:"import"`
	Directory   DirectoryConfig `yaml:"directory"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
