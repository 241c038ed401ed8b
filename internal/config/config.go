package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"audition_backend/internal/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

// Модули, которые может поднимать cmd/web
const (
	ModuleUser     = "user"
	ModuleAudition = "audition"
	ModuleMedia    = "media"
)

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Env          string        `yaml:"env"`
	Modules      []string      `yaml:"modules"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // postgres, mysql, sqlite
	DSN             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
	LogLevel        string        `yaml:"log_level"` // silent, error, warn, info
	SlowThreshold   time.Duration `yaml:"slow_threshold"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	TTL    int    `yaml:"ttl"` // минуты
	Issuer string `yaml:"issuer"`
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	UseTLS       bool   `yaml:"use_tls"`
	FrontendURL  string `yaml:"frontend_url"`
}

type SocialConfig struct {
	GoogleURL   string        `yaml:"google_url"`
	KakaoURL    string        `yaml:"kakao_url"`
	NaverURL    string        `yaml:"naver_url"`
	FacebookURL string        `yaml:"facebook_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ApplicationConfig struct {
	Fee float64 `yaml:"fee"`
}

type ScreeningConfig struct {
	EnforceRoundOrder        bool `yaml:"enforce_round_order"`
	EnforceStatusTransitions bool `yaml:"enforce_status_transitions"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type WorkersConfig struct {
	Enabled          bool          `yaml:"enabled"`
	AuditionSchedule string        `yaml:"audition_schedule"`
	OfferSchedule    string        `yaml:"offer_schedule"`
	OfferTTL         time.Duration `yaml:"offer_ttl"`
}

type GatewayConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	UserServiceURL     string        `yaml:"user_service_url"`
	AuditionServiceURL string        `yaml:"audition_service_url"`
	MediaServiceURL    string        `yaml:"media_service_url"`
	Timeout            time.Duration `yaml:"timeout"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	JWT         JWTConfig         `yaml:"jwt"`
	Email       EmailConfig       `yaml:"email"`
	Social      SocialConfig      `yaml:"social"`
	Application ApplicationConfig `yaml:"application"`
	Screening   ScreeningConfig   `yaml:"screening"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Workers     WorkersConfig     `yaml:"workers"`
	Gateway     GatewayConfig     `yaml:"gateway"`
}

var AppConfig *Config

// Default возвращает конфигурацию, с которой сервис стартует без файла
func Default() *Config {
	cfg := &Config{}

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.Modules = []string{ModuleUser, ModuleAudition, ModuleMedia}
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.CORSOrigins = []string{"*"}

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.Database.AutoMigrate = true
	cfg.Database.LogLevel = "warn"
	cfg.Database.SlowThreshold = 200 * time.Millisecond

	cfg.JWT.TTL = 24 * 60
	cfg.JWT.Issuer = "audition-platform"

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Audition Platform"
	cfg.Email.UseTLS = true

	cfg.Social.GoogleURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	cfg.Social.KakaoURL = "https://kapi.kakao.com/v2/user/me"
	cfg.Social.NaverURL = "https://openapi.naver.com/v1/nid/me"
	cfg.Social.FacebookURL = "https://graph.facebook.com/v18.0/me"
	cfg.Social.Timeout = 10 * time.Second

	cfg.Application.Fee = 5.00

	cfg.Screening.EnforceStatusTransitions = true

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 5
	cfg.RateLimit.Burst = 10

	cfg.Workers.Enabled = true
	cfg.Workers.AuditionSchedule = "@hourly"
	cfg.Workers.OfferSchedule = "@every 30m"
	cfg.Workers.OfferTTL = 30 * 24 * time.Hour

	cfg.Gateway.Host = "0.0.0.0"
	cfg.Gateway.Port = 8000
	cfg.Gateway.UserServiceURL = "http://localhost:8081"
	cfg.Gateway.AuditionServiceURL = "http://localhost:8082"
	cfg.Gateway.MediaServiceURL = "http://localhost:8083"
	cfg.Gateway.Timeout = 30 * time.Second

	return cfg
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл,
// затем переменные окружения (в том числе из .env).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}

	if err := loadFile(cfg, configPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig загружает конфигурацию в AppConfig и завершает процесс при ошибке
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	envString("SERVER_HOST", &cfg.Server.Host)
	collect(envInt("SERVER_PORT", &cfg.Server.Port))
	envString("SERVER_ENV", &cfg.Server.Env)
	envList("SERVER_MODULES", &cfg.Server.Modules)
	envList("CORS_ORIGINS", &cfg.Server.CORSOrigins)

	envString("DATABASE_DRIVER", &cfg.Database.Driver)
	envString("DATABASE_URL", &cfg.Database.DSN)
	collect(envBool("DATABASE_AUTO_MIGRATE", &cfg.Database.AutoMigrate))
	envString("DATABASE_LOG_LEVEL", &cfg.Database.LogLevel)

	envString("JWT_SECRET", &cfg.JWT.Secret)
	collect(envInt("JWT_TTL_MINUTES", &cfg.JWT.TTL))

	collect(envBool("EMAIL_ENABLED", &cfg.Email.Enabled))
	envString("SMTP_HOST", &cfg.Email.SMTPHost)
	collect(envInt("SMTP_PORT", &cfg.Email.SMTPPort))
	envString("SMTP_USER", &cfg.Email.SMTPUsername)
	envString("SMTP_PASSWORD", &cfg.Email.SMTPPassword)
	envString("SMTP_FROM", &cfg.Email.FromEmail)
	envString("FRONTEND_URL", &cfg.Email.FrontendURL)

	collect(envFloat("APPLICATION_FEE", &cfg.Application.Fee))
	collect(envBool("SCREENING_ENFORCE_ROUND_ORDER", &cfg.Screening.EnforceRoundOrder))
	collect(envBool("SCREENING_ENFORCE_STATUS_TRANSITIONS", &cfg.Screening.EnforceStatusTransitions))

	collect(envBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled))
	collect(envBool("WORKERS_ENABLED", &cfg.Workers.Enabled))
	collect(envDuration("OFFER_TTL", &cfg.Workers.OfferTTL))

	collect(envInt("GATEWAY_PORT", &cfg.Gateway.Port))
	envString("USER_SERVICE_URL", &cfg.Gateway.UserServiceURL)
	envString("AUDITION_SERVICE_URL", &cfg.Gateway.AuditionServiceURL)
	envString("MEDIA_SERVICE_URL", &cfg.Gateway.MediaServiceURL)

	return errors.Join(errs...)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("jwt secret is required outside development")
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %d", c.JWT.TTL)
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	for _, m := range c.Server.Modules {
		switch m {
		case ModuleUser, ModuleAudition, ModuleMedia:
		default:
			return fmt.Errorf("unknown module %q", m)
		}
	}
	if c.Application.Fee < 0 {
		return errors.New("application fee must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "test"
}

// ModuleEnabled сообщает, подключен ли модуль в этом процессе
func (c *Config) ModuleEnabled(name string) bool {
	for _, m := range c.Server.Modules {
		if m == name {
			return true
		}
	}
	return false
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envList(key string, dst *[]string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
