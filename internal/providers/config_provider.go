package providers

import (
	"fmt"
	"path/filepath"
	"sld/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("discord.token", "SLD_DISCORD_TOKEN")
	viper.BindEnv("resolver.apiKey", "SLD_STEAM_API_KEY")
	viper.BindEnv("logger.level", "SLD_LOG_LEVEL")
	viper.BindEnv("webServer.port", "SLD_PORT")
	viper.BindEnv("guard.userCooldown", "SLD_USER_COOLDOWN")
	viper.BindEnv("guard.messageTTL", "SLD_MESSAGE_TTL")
	viper.BindEnv("cache.enabled", "SLD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SLD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SteamLinkDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Resolver.Endpoint == "" {
		conf.Resolver.Endpoint = "https://api.steampowered.com"
	}
	if conf.Resolver.Timeout == 0 {
		conf.Resolver.Timeout = 5 * time.Second
	}
	if conf.Resolver.CacheTTL == 0 {
		conf.Resolver.CacheTTL = 5 * time.Minute
	}
	if conf.Guard.UserCooldown == 0 {
		conf.Guard.UserCooldown = 30 * time.Second
	}
	if conf.Guard.MessageTTL == 0 {
		conf.Guard.MessageTTL = 10 * time.Minute
	}
	if conf.Directory.PageSize == 0 {
		conf.Directory.PageSize = 10
	}
	if conf.Import.MaxItems == 0 {
		conf.Import.MaxItems = 100
	}
	if conf.Import.MaxAttachmentBytes == 0 {
		conf.Import.MaxAttachmentBytes = 1 << 20
	}
	if conf.Persistence.Mode == 0 {
		conf.Persistence.Mode = 0644
	}
	if conf.Backup.Interval == 0 {
		conf.Backup.Interval = 6 * time.Hour
	}
	if conf.Backup.TTL == 0 {
		conf.Backup.TTL = 72 * time.Hour
	}
}
