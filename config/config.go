package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-change-in-production"

type AuthConfig struct {
	JWTSecret         string
	JWTExpires        time.Duration
	AdminSignupSecret string
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type StorageConfig struct {
	Provider        string // "gcs", "r2" or empty when uploads are disabled
	GCSBucket       string
	CredentialsFile string
	R2Bucket        string
	R2AccessKeyID   string
	R2SecretKey     string
	R2Endpoint      string
	R2PublicDomain  string
	MaxUploadMB     int
	AllowedExts     []string
	AllowedMimes    []string
}

type MailerConfig struct {
	URL          string
	APIKey       string
	SupportEmail string
	SourceName   string
}

func (m MailerConfig) Enabled() bool {
	return m.URL != "" && m.APIKey != ""
}

type Config struct {
	Port           string
	MongoURI       string
	DatabaseName   string
	ClientURL      string
	AllowedOrigins []string
	Auth           AuthConfig
	Admin          AdminConfig
	Storage        StorageConfig
	Mailer         MailerConfig
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can inject values.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	expires, err := ParseExpires(get("JWT_EXPIRES", "7d"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES: %w", err)
	}

	secret := getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set, falling back to the development secret")
		secret = defaultJWTSecret
	}

	maxMB := 5
	if v := getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxMB = parsed
		}
	}

	cfg := Config{
		Port:           get("PORT", "5000"),
		MongoURI:       get("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:   get("DATABASE_NAME", "pep_interview_db"),
		ClientURL:      strings.TrimRight(get("CLIENT_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS"), false),
		Auth: AuthConfig{
			JWTSecret:         secret,
			JWTExpires:        expires,
			AdminSignupSecret: getenv("ADMIN_SIGNUP_SECRET"),
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(get("ADMIN_EMAIL", "admin@example.com")),
			Password: get("ADMIN_PASSWORD", "admin123"),
			Name:     get("ADMIN_NAME", "Admin User"),
		},
		Storage: StorageConfig{
			Provider:        strings.ToLower(getenv("STORAGE_PROVIDER")),
			GCSBucket:       getenv("GCS_BUCKET"),
			CredentialsFile: getenv("CREDENTIALS_FILE_LOCATION"),
			R2Bucket:        getenv("R2_BUCKET"),
			R2AccessKeyID:   getenv("R2_ACCESS_KEY_ID"),
			R2SecretKey:     getenv("R2_SECRET_ACCESS_KEY"),
			R2Endpoint:      getenv("R2_ENDPOINT"),
			R2PublicDomain:  strings.TrimRight(getenv("R2_PUBLIC_DOMAIN"), "/"),
			MaxUploadMB:     maxMB,
			AllowedExts:     splitList(get("ALLOWED_FILE_EXTENSIONS", ".pdf,.doc,.docx"), true),
			AllowedMimes: splitList(get("ALLOWED_FILE_MIME_TYPES",
				"application/pdf,application/msword,application/zip,application/octet-stream"), true),
		},
		Mailer: MailerConfig{
			URL:          getenv("BREVO_API_URL"),
			APIKey:       getenv("BREVO_API_KEY"),
			SupportEmail: getenv("SUPPORT_EMAIL"),
			SourceName:   get("MAILER_SOURCE_NAME", "PEP Interview"),
		},
	}
	return cfg, nil
}

// ParseExpires understands the jsonwebtoken style spans ("7d", "12h", "30m",
// "45s", a bare number of seconds) as well as Go duration strings.
func ParseExpires(v string) (time.Duration, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(v, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "d"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", v)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

func splitList(raw string, lower bool) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if lower {
			item = strings.ToLower(item)
		}
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
