package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	CORSAllowedOrigins []string
	RateLimitPerMin    int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UPIID          string
	UPIPayeeName   string
	WhatsAppNumber string
	BankAccountNo  string
	BankIFSC       string
	BankName       string
}

// IsProduction reports whether APP_ENV asks for production logging and gin mode.
func (e Env) IsProduction() bool {
	return strings.EqualFold(e.AppEnv, "production")
}

// LoadEnv reads configuration from the environment and, when present, a
// config.yaml in the working directory or ./config.
func LoadEnv() Env {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	// missing file is fine, env vars and defaults still apply
	_ = v.ReadInConfig()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "helishuttle")

	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("RATE_LIMIT_PER_MIN", 120)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")

	v.SetDefault("UPI_ID", "")
	v.SetDefault("UPI_PAYEE_NAME", "")
	v.SetDefault("WHATSAPP_NUMBER", "")
	v.SetDefault("BANK_ACCOUNT_NO", "")
	v.SetDefault("BANK_IFSC", "")
	v.SetDefault("BANK_NAME", "")
}

func fromViper(v *viper.Viper) Env {
	trim := func(key string) string { return strings.TrimSpace(v.GetString(key)) }

	origins := []string{}
	for _, o := range strings.Split(trim("CORS_ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr: trim("APP_ADDR"),
		GinMode: trim("GIN_MODE"),
		AppEnv:  trim("APP_ENV"),

		DBHost:     trim("DB_HOST"),
		DBPort:     trim("DB_PORT"),
		DBUser:     trim("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     trim("DB_NAME"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		AdminEmail:    trim("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		CORSAllowedOrigins: origins,
		RateLimitPerMin:    v.GetInt("RATE_LIMIT_PER_MIN"),

		RedisAddr:     trim("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		CloudinaryCloudName: trim("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    trim("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: trim("CLOUDINARY_API_SECRET"),

		UPIID:          trim("UPI_ID"),
		UPIPayeeName:   trim("UPI_PAYEE_NAME"),
		WhatsAppNumber: trim("WHATSAPP_NUMBER"),
		BankAccountNo:  trim("BANK_ACCOUNT_NO"),
		BankIFSC:       trim("BANK_IFSC"),
		BankName:       trim("BANK_NAME"),
	}
}
