package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// EnvPrefix is prepended to every environment override, e.g. STOREFRONT_JWT_SECRET.
const EnvPrefix = "STOREFRONT"

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort       string          `mapstructure:"httpPort"`
		Timeout        time.Duration   `mapstructure:"httpTimeout"`
		ReadTimeout    time.Duration   `mapstructure:"readTimeout"`
		WriteTimeout   time.Duration   `mapstructure:"writeTimeout"`
		IdleTimeout    time.Duration   `mapstructure:"idleTimeout"`
		APIPrefix      string          `mapstructure:"apiPrefix"`
		AllowedOrigins []string        `mapstructure:"allowedOrigins"`
		RateLimit      RateLimitConfig `mapstructure:"rateLimit"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"sslmode"`
			MaxConns          int32  `mapstructure:"maxConns"`
			MAXCONWAITINGTIME int    `mapstructure:"maxConWaitingTime"`
		} `mapstructure:"postgres"`
		Redis RedisConfig `mapstructure:"redis"`
	} `mapstructure:"repositories"`
	JWT           JWTConfig    `mapstructure:"jwt"`
	Upload        UploadConfig `mapstructure:"upload"`
	Admin         AdminConfig  `mapstructure:"admin"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"observability"`
}

// JWTConfig holds the signing secret and lifetimes of every token kind.
type JWTConfig struct {
	SecretKey       string        `mapstructure:"secret"`
	Issuer          string        `mapstructure:"issuer"`
	Audience        string        `mapstructure:"audience"`
	AccessTokenTTL  time.Duration `mapstructure:"accessTokenTTL"`
	RefreshTokenTTL time.Duration `mapstructure:"refreshTokenTTL"`
	ResetTokenTTL   time.Duration `mapstructure:"resetTokenTTL"`
	BcryptCost      int           `mapstructure:"bcryptCost"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// RedisConfig is optional. An empty Addr keeps token revocation in process memory.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
}

type UploadConfig struct {
	Dir            string        `mapstructure:"dir"`
	MaxSizeBytes   int64         `mapstructure:"maxSizeBytes"`
	Primary        string        `mapstructure:"primary"`
	PrimaryTimeout time.Duration `mapstructure:"primaryTimeout"`
	FTP            FTPConfig     `mapstructure:"ftp"`
	S3             S3Config      `mapstructure:"s3"`
}

type FTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	Dir        string `mapstructure:"dir"`
	BaseURL    string `mapstructure:"baseURL"`
	PublicPath string `mapstructure:"publicPath"`
}

type S3Config struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"accessKey"`
	SecretKey     string `mapstructure:"secretKey"`
	PublicBaseURL string `mapstructure:"publicBaseURL"`
	UsePathStyle  bool   `mapstructure:"usePathStyle"`
}

// AdminConfig describes the bootstrap administrator ensured at startup.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	FullName string `mapstructure:"fullName"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret must be set")
	}
	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= 0 || c.JWT.ResetTokenTTL <= 0 {
		return fmt.Errorf("jwt token lifetimes must be positive")
	}
	switch c.Upload.Primary {
	case "", "none", "ftp", "s3":
	default:
		return fmt.Errorf("upload.primary must be one of none, ftp, s3; got %q", c.Upload.Primary)
	}
	return nil
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Mode == "" || c.Mode == "development"
}
