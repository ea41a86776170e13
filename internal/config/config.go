package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode   `yaml:"mode"`
	HTTPAddr string `yaml:"http_addr"`
	LogMode  string `yaml:"log_mode"` // dev|prod

	StoreDriver string `yaml:"store_driver"` // memory|sqlite|postgres|bolt|mongo|redis
	DBDSN       string `yaml:"db_dsn"`
	BoltPath    string `yaml:"bolt_path"`
	MongoURL    string `yaml:"mongodb_url"`
	MongoDB     string `yaml:"mongodb_db"`
	RedisAddr   string `yaml:"redis_addr"`

	// External OCR tooling
	TesseractPath  string        `yaml:"tesseract_path"`
	PopplerBinPath string        `yaml:"poppler_bin_path"`
	OCRLang        string        `yaml:"ocr_lang"`
	OCRDPI         int           `yaml:"ocr_dpi"`
	OCRTimeout     time.Duration `yaml:"ocr_timeout"`

	PDFFontPath    string `yaml:"pdf_font_path"` // UTF-8 TTF for exports
	TempDir        string `yaml:"temp_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	EnableAuth     bool   `yaml:"enable_auth"`
	AuthHMACSecret string `yaml:"auth_hmac_secret"`
	AdminUser      string `yaml:"admin_user"`
	AdminPassHash  string `yaml:"admin_pass_hash"` // bcrypt

	CORSOrigins []string `yaml:"cors_origins"`
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8000"),
		LogMode:  envOr("LOG_MODE", "dev"),

		StoreDriver: envOr("STORE_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		BoltPath:    envOr("BOLT_PATH", "./data/quizzes.bolt"),
		MongoURL:    envOr("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDB:     envOr("MONGODB_DB", "quiz_app"),
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),

		TesseractPath:  envOr("TESSERACT_PATH", "tesseract"),
		PopplerBinPath: os.Getenv("POPPLER_BIN_PATH"),
		OCRLang:        envOr("OCR_LANG", "eng"),
		OCRDPI:         envInt("OCR_DPI", 200),
		OCRTimeout:     envDuration("OCR_TIMEOUT", 20*time.Second),

		PDFFontPath:    os.Getenv("PDF_FONT_PATH"),
		TempDir:        os.Getenv("TEMP_DIR"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 25<<20)),

		EnableAuth:     envBool("ENABLE_AUTH", mode == ModeOnline),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
	}
}

// Load starts from FromEnv and, when path is set, overlays the YAML file.
// Keys missing from the file keep their env value.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case "memory", "sqlite", "postgres", "bolt", "mongo", "redis":
	default:
		return fmt.Errorf("unsupported store driver: %q", c.StoreDriver)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.PDFFontPath != "" {
		if _, err := os.Stat(c.PDFFontPath); err != nil {
			return fmt.Errorf("pdf_font_path: %w", err)
		}
	}
	if c.EnableAuth && c.AuthHMACSecret == "" {
		return fmt.Errorf("auth enabled without auth_hmac_secret")
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
