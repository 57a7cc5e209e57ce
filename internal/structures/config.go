package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Method  string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ClashConfig struct {
	BaseUrl string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Token   string        `yaml:"token" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type PollerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

// ScoreboardConfig describes the companion window requested from the host.
type ScoreboardConfig struct {
	Page        string  `yaml:"page" validate:"required"`
	Name        string  `yaml:"name" validate:"required"`
	Width       float64 `yaml:"width" validate:"required|min:1"`
	Height      float64 `yaml:"height" validate:"required|min:1"`
	Transparent bool    `yaml:"transparent"`
	Decorated   bool    `yaml:"decorated"`
}

type WindowConfig struct {
	Width  float64 `yaml:"width" validate:"required|min:1"`
	Height float64 `yaml:"height" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	WebServer  Server           `yaml:"webServer"`
	Logger     LoggerConfig     `yaml:"logger"`
	Clash      ClashConfig      `yaml:"clash"`
	Poller     PollerConfig     `yaml:"poller"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
	MainWindow WindowConfig     `yaml:"mainWindow"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}
