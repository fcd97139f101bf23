package config

import (
	"github.com/inboundhq/domainstack/internal/logger"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/services/ses"
)

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"12223"`
	APIKey  string `env:"API_KEY,required"`
}

type DatabaseConfig struct {
	Host            string `env:"DOMAINSTACK_POSTGRES_HOST,required"`
	Port            string `env:"DOMAINSTACK_POSTGRES_PORT,required"`
	User            string `env:"DOMAINSTACK_POSTGRES_USER,required"`
	DBName          string `env:"DOMAINSTACK_POSTGRES_DB_NAME,required"`
	Password        string `env:"DOMAINSTACK_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"DOMAINSTACK_POSTGRES_DB_MAX_CONN" envDefault:"50"`
	MaxIdleConn     int    `env:"DOMAINSTACK_POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"DOMAINSTACK_POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"DOMAINSTACK_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"DOMAINSTACK_POSTGRES_SSL_MODE" envDefault:"require"`
}

type Config struct {
	AppConfig      *AppConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
	DatabaseConfig *DatabaseConfig
	SESConfig      *ses.Config
}
