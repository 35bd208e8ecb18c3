package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codetrack/internal/structures"
)

const AppName = "CodeTrack"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8787)

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.filePath", "./data/codetrack.db")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 4)
	v.SetDefault("cache.ttl", 30*time.Second)

	v.SetDefault("metrics.enabled", false)

	v.SetDefault("sources.cacheTTL", time.Hour)
	v.SetDefault("sources.leetcode.primaryBase", "https://alfa-leetcode-api.onrender.com")
	v.SetDefault("sources.leetcode.alternateBase", "https://leetcode-api-faisalshohag.vercel.app")
	v.SetDefault("sources.leetcode.primaryTimeout", 12*time.Second)
	v.SetDefault("sources.leetcode.alternateTimeout", 15*time.Second)
	v.SetDefault("sources.gfg.authApi", "https://authapi.geeksforgeeks.org/api-get/user-profile-info/?handle=%s")
	v.SetDefault("sources.gfg.profileUrl", "https://www.geeksforgeeks.org/profile/%s")
	v.SetDefault("sources.gfg.directTimeout", 6*time.Second)
	v.SetDefault("sources.gfg.proxyTimeout", 15*time.Second)
	v.SetDefault("sources.gfg.proxies", []map[string]any{
		{"name": "codetabs", "url": "https://api.codetabs.com/v1/proxy/?quest=%s", "envelope": "direct"},
		{"name": "allorigins", "url": "https://api.allorigins.win/get?url=%s", "envelope": "wrapped"},
		{"name": "corsproxy", "url": "https://corsproxy.io/?%s", "envelope": "direct"},
	})

	v.SetDefault("ledger.maxEntries", 90)
	v.SetDefault("ledger.dailyGoal", 3)
	v.SetDefault("ledger.weeklyGoal", 21)

	v.SetDefault("refresh.interval", 0)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	dir := filepath.Dir(flags.ConfigPath)
	filename := filepath.Base(flags.ConfigPath)

	// a missing .env is fine, real env vars always win over it
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	v.BindEnv("logger.level", "CODETRACK_LOG_LEVEL")
	v.BindEnv("profile.leetcode", "CODETRACK_LC_USER")
	v.BindEnv("profile.gfg", "CODETRACK_GFG_USER")
	v.BindEnv("storage.driver", "CODETRACK_STORAGE_DRIVER")
	v.BindEnv("refresh.interval", "CODETRACK_REFRESH_INTERVAL")
	v.BindEnv("sources.cacheTTL", "CODETRACK_CACHE_TTL")

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
