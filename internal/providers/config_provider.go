package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
	"warboard/internal/structures"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "WarBoard"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8617)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("clash.baseUrl", "https://api.clashofclans.com/v1")
	v.SetDefault("clash.timeout", 10*time.Second)
	v.SetDefault("poller.interval", 1500*time.Millisecond)
	v.SetDefault("scoreboard.page", "scoreboard.html")
	v.SetDefault("scoreboard.name", "scoreboard")
	v.SetDefault("scoreboard.width", 320)
	v.SetDefault("scoreboard.height", 391)
	v.SetDefault("scoreboard.transparent", true)
	v.SetDefault("scoreboard.decorated", false)
	v.SetDefault("mainWindow.width", 550)
	v.SetDefault("mainWindow.height", 370)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	dir := filepath.Dir(flags.ConfigPath)
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	_ = v.BindEnv("logger.level", "WARBOARD_LOG_LEVEL")
	_ = v.BindEnv("logger.dir", "WARBOARD_LOG_DIR")
	_ = v.BindEnv("clash.token", "WARBOARD_CLASH_TOKEN")
	_ = v.BindEnv("clash.baseUrl", "WARBOARD_CLASH_URL")
	_ = v.BindEnv("poller.interval", "WARBOARD_POLL_INTERVAL")
	_ = v.BindEnv("cache.enabled", "WARBOARD_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "WARBOARD_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
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
