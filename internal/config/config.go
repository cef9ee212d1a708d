package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Google         Google         `mapstructure:",squash"`
	Stripe         Stripe         `mapstructure:",squash"`
	Resend         Resend         `mapstructure:",squash"`
	TrackingSync   TrackingSync   `mapstructure:",squash"`
	RetentionPrune RetentionPrune `mapstructure:",squash"`
	Scan           Scan           `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
	CronSecret     string         `mapstructure:"cron_secret"`
	BaseURL        string         `mapstructure:"base_url"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Google struct {
	MapsBaseURL string `mapstructure:"google_maps_base_url"`
	APIKey      string `mapstructure:"google_maps_api_key"`
}

type Stripe struct {
	SecretKey     string `mapstructure:"stripe_secret_key"`
	WebhookSecret string `mapstructure:"stripe_webhook_secret"`
	PriceMonthly  string `mapstructure:"stripe_price_monthly"`
	PriceYearly   string `mapstructure:"stripe_price_yearly"`
	TrialDays     int    `mapstructure:"stripe_trial_days"`
}

type Resend struct {
	BaseURL   string `mapstructure:"resend_base_url"`
	APIKey    string `mapstructure:"resend_api_key"`
	FromEmail string `mapstructure:"alerts_from_email"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type TrackingSync struct {
	CronSchedule string `mapstructure:"tracking_sync_cron"`
	Enabled      bool   `mapstructure:"tracking_sync_enabled"`
}

type RetentionPrune struct {
	CronSchedule    string `mapstructure:"retention_prune_cron"`
	Enabled         bool   `mapstructure:"retention_prune_enabled"`
	SnapshotDays    int    `mapstructure:"retention_days"`
	AlertDays       int    `mapstructure:"alert_retention_days"`
	DeleteBatchSize int    `mapstructure:"retention_prune_batch_size"`
}

type Scan struct {
	MaxPages       int `mapstructure:"scan_max_pages"`
	MaxDepth       int `mapstructure:"scan_max_depth"`
	TimeoutSeconds int `mapstructure:"scan_timeout_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/localseo")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")

	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("STRIPE_PRICE_MONTHLY", "")
	viper.SetDefault("STRIPE_PRICE_YEARLY", "")
	viper.SetDefault("STRIPE_TRIAL_DAYS", 7)

	viper.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("ALERTS_FROM_EMAIL", "")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("CRON_SECRET", "")
	viper.SetDefault("BASE_URL", "http://localhost:3000")

	// Defaults da sincronização de rastreamento. O agendador roda de hora em
	// hora, em ponto; o predicado de due de cada agendamento decide quem executa.
	viper.SetDefault("TRACKING_SYNC_CRON", "0 * * * *")
	viper.SetDefault("TRACKING_SYNC_ENABLED", true)

	// Defaults da limpeza de retenção
	viper.SetDefault("RETENTION_PRUNE_CRON", "30 2 * * *") // Todos os dias às 2h30
	viper.SetDefault("RETENTION_PRUNE_ENABLED", true)
	viper.SetDefault("RETENTION_DAYS", 90)
	viper.SetDefault("ALERT_RETENTION_DAYS", 120)
	viper.SetDefault("RETENTION_PRUNE_BATCH_SIZE", 500)

	// Defaults da auditoria de sites
	viper.SetDefault("SCAN_MAX_PAGES", 20)
	viper.SetDefault("SCAN_MAX_DEPTH", 2)
	viper.SetDefault("SCAN_TIMEOUT_SECONDS", 30)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Retenção mínima de 7 e máxima de 365 dias, como proteção contra
	// configuração acidental que apagaria histórico inteiro
	config.RetentionPrune.SnapshotDays = clampRetentionDays(config.RetentionPrune.SnapshotDays, 90)
	config.RetentionPrune.AlertDays = clampRetentionDays(config.RetentionPrune.AlertDays, 120)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func clampRetentionDays(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	if value < 7 {
		return 7
	}
	if value > 365 {
		return 365
	}
	return value
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
