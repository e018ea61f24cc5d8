package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	App struct {
		Port       string `mapstructure:"port"`
		Env        string `mapstructure:"env"`
		CORSOrigin string `mapstructure:"cors_origin"`
	} `mapstructure:"app"`
	DB struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
		CookieName    string        `mapstructure:"cookie_name"`
		CookieSecure  bool          `mapstructure:"cookie_secure"`
	} `mapstructure:"auth"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoadConfig reads .env and config.yaml from the given paths (the working
// directory when none are given), then environment variables on top.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	v := viper.New()

	for _, p := range paths {
		if err := godotenv.Load(strings.TrimSuffix(p, "/") + "/.env"); err == nil {
			break
		}
		log.Println("warning: .env file not found in " + p + ", use default.")
	}

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT", "PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.cors_origin", "CORS_ORIGIN")
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("mongo.uri", "MONGO_URL")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.cache_ttl", "REDIS_CACHE_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.cookie_name", "COOKIE_NAME")
	v.BindEnv("auth.cookie_secure", "COOKIE_SECURE")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}

	// KAFKA_BROKERS arrives as one comma separated string.
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "4000")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.cors_origin", "http://localhost:5173")
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "profile_playground")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("auth.jwt_secret", "dev_secret")
	v.SetDefault("auth.token_lifespan", 7*24*time.Hour)
	v.SetDefault("auth.cookie_name", "token")
}
