package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr     string
	GinMode     string
	MockLatency time.Duration
	PageSize    int

	AuthRequired      bool
	JWTSecret         string
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	TwoFactorCode     string

	CORSAllowedOrigins []string

	// StoreDriver is memory, sqlite, mysql or pgx.
	StoreDriver string
	StoreDSN    string

	ExportS3Bucket    string
	ExportS3Region    string
	ExportS3Endpoint  string
	ExportS3PathStyle bool
}

// Persistent reports whether a SQL snapshot store is configured.
func (e Env) Persistent() bool {
	return e.StoreDriver != "" && e.StoreDriver != "memory"
}

// NewViper returns a viper instance reading environment variables and, when
// present, blackpiston.yaml from the working directory or configFile.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("MOCK_LATENCY", "0s")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("JWT_SECRET", "blackpiston-dev-secret")
	v.SetDefault("ADMIN_EMAIL", "admin@blackpiston.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("TWO_FACTOR_CODE", "123456")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("STORE_DSN", "")
	v.SetDefault("EXPORT_S3_BUCKET", "")
	v.SetDefault("EXPORT_S3_REGION", "eu-west-2")
	v.SetDefault("EXPORT_S3_ENDPOINT", "")
	v.SetDefault("EXPORT_S3_PATH_STYLE", false)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("blackpiston")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

// LoadEnv reads configuration from the environment only.
func LoadEnv() Env {
	v, err := NewViper("")
	if err != nil {
		v = viper.New()
		v.AutomaticEnv()
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) Env {
	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 10
	}
	appAddr := strings.TrimSpace(v.GetString("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(v.GetString("GIN_MODE")),
		MockLatency: v.GetDuration("MOCK_LATENCY"),
		PageSize:    pageSize,

		AuthRequired:      v.GetBool("AUTH_REQUIRED"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AdminEmail:        strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		TwoFactorCode:     v.GetString("TWO_FACTOR_CODE"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		StoreDriver: strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		StoreDSN:    v.GetString("STORE_DSN"),

		ExportS3Bucket:    v.GetString("EXPORT_S3_BUCKET"),
		ExportS3Region:    v.GetString("EXPORT_S3_REGION"),
		ExportS3Endpoint:  v.GetString("EXPORT_S3_ENDPOINT"),
		ExportS3PathStyle: v.GetBool("EXPORT_S3_PATH_STYLE"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
