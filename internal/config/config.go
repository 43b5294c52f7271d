package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("provider.base_url", "https://www.ilmateenistus.ee")
	viper.SetDefault("provider.forecast_path", "/wp-content/themes/ilm2020/meteogram.php")
	viper.SetDefault("provider.search_path", "/wp-json/emhi/locationAutocomplete")
	viper.SetDefault("provider.timeout", "10s")
	viper.SetDefault("provider.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	viper.SetDefault("provider.accept_language", "et,en;q=0.9")
	viper.SetDefault("location.coordinates", "59.0218292;25.0982156")
	viper.SetDefault("location.language", "et")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("display.key", "weather:display")
	viper.SetDefault("display.ttl", "2h")
}

func initConfig() {
	once.Do(func() {
		setDefaults()

		root, err := getProjectRoot()
		if err != nil {
			// installed binaries run outside the source tree
			root = "."
		}
		_ = godotenv.Load(filepath.Join(root, ".env"))

		viper.SetEnvPrefix("weather")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Debugw("Config file not loaded, using defaults", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Debugw("Test config file not merged", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetBaseURL() string {
	initConfig()
	return strings.TrimRight(viper.GetString("provider.base_url"), "/")
}

func GetForecastPath() string {
	initConfig()
	return viper.GetString("provider.forecast_path")
}

func GetSearchPath() string {
	initConfig()
	return viper.GetString("provider.search_path")
}

// GetRequestTimeout returns the per-request HTTP timeout. Defaults to 10s if not set or invalid.
func GetRequestTimeout() time.Duration {
	initConfig()
	return durationOrDefault(viper.GetString("provider.timeout"), 10*time.Second)
}

func GetUserAgent() string {
	initConfig()
	return viper.GetString("provider.user_agent")
}

func GetAcceptLanguage() string {
	initConfig()
	return viper.GetString("provider.accept_language")
}

// GetDefaultCoordinates returns the fallback location in "lat;lon" form.
func GetDefaultCoordinates() string {
	initConfig()
	return viper.GetString("location.coordinates")
}

func GetDefaultLanguage() string {
	initConfig()
	return viper.GetString("location.language")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetDisplayKey() string {
	initConfig()
	return viper.GetString("display.key")
}

// GetDisplayTTL returns how long a published display text stays readable. Defaults to 2h.
func GetDisplayTTL() time.Duration {
	initConfig()
	return durationOrDefault(viper.GetString("display.ttl"), 2*time.Hour)
}

func durationOrDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
