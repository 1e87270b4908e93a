package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		Env          string `yaml:"env"`
		ReadTimeout  int    `yaml:"read_timeout"`  // seconds
		WriteTimeout int    `yaml:"write_timeout"` // seconds
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Email struct {
		Driver       string `yaml:"driver"` // smtp | log
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		StaffEmail   string `yaml:"staff_email"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	App struct {
		PublicURL string `yaml:"public_url"`
		LoginPath string `yaml:"login_path"`
	} `yaml:"app"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	RateLimit struct {
		Requests int `yaml:"requests"`
		Window   int `yaml:"window"` // seconds
	} `yaml:"rate_limit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// Default returns a configuration usable for local development.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.ReadTimeout = 15
	cfg.Server.WriteTimeout = 15

	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5

	cfg.Email.Driver = "log"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "office@poolservice.local"
	cfg.Email.FromName = "Pool Service"
	cfg.Email.StaffEmail = "office@poolservice.local"

	cfg.JWT.Secret = "change-me"
	cfg.JWT.TTL = 60 * 12

	cfg.App.PublicURL = "http://localhost:8080"
	cfg.App.LoginPath = "/login"

	cfg.RateLimit.Requests = 5
	cfg.RateLimit.Window = 60

	cfg.CORS.AllowedOrigins = []string{"*"}
	return &cfg
}

// LoadConfig reads .env, then the YAML file at CONFIG_PATH (if present),
// then applies environment overrides.
func LoadConfig() {
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded environment from %s", path)
			break
		}
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if err := loadFile(configPath, cfg); err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		log.Printf("Config file %s not found, using defaults and environment", configPath)
	}

	applyEnv(cfg)
	AppConfig = cfg
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTL, "JWT_TTL_MINUTES")

	setString(&cfg.Email.Driver, "MAIL_DRIVER")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "MAIL_FROM")
	setString(&cfg.Email.FromName, "MAIL_FROM_NAME")
	setString(&cfg.Email.StaffEmail, "STAFF_EMAIL")
	setString(&cfg.Email.TemplatesDir, "MAIL_TEMPLATES_DIR")

	setString(&cfg.App.PublicURL, "APP_URL")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setInt(&cfg.RateLimit.Requests, "RATE_LIMIT_REQUESTS")
	setInt(&cfg.RateLimit.Window, "RATE_LIMIT_WINDOW")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	setString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.Window) * time.Second
}

// LoginURL is the link sent to newly hired technicians.
func (c *Config) LoginURL() string {
	return strings.TrimRight(c.App.PublicURL, "/") + c.App.LoginPath
}
