package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Jellyfin        Jellyfin        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	ReportRetention ReportRetention `mapstructure:",squash"`
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

// Jellyfin guarda a identificação que enviamos ao servidor de mídia em cada
// requisição. A URL do servidor NÃO fica aqui: ela chega por requisição,
// dentro das credenciais do usuário.
type Jellyfin struct {
	ClientName     string `mapstructure:"jellyfin_client_name"`
	ClientVersion  string `mapstructure:"jellyfin_client_version"`
	DeviceName     string `mapstructure:"jellyfin_device_name"`
	RequestTimeout int    `mapstructure:"jellyfin_request_timeout_seconds"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
}

type ReportRetention struct {
	CronSchedule string `mapstructure:"report_retention_cron"`
	MaxAgeDays   int    `mapstructure:"report_retention_max_age_days"`
	Enabled      bool   `mapstructure:"report_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/jellywind")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("JELLYFIN_CLIENT_NAME", "Jellywind")
	viper.SetDefault("JELLYFIN_CLIENT_VERSION", "1.0.0")
	viper.SetDefault("JELLYFIN_DEVICE_NAME", "JellywindAPI")
	viper.SetDefault("JELLYFIN_REQUEST_TIMEOUT_SECONDS", 30)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret") // ONLY LOCAL
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 72)

	// Defaults para a limpeza de definições de relatório removidas
	viper.SetDefault("REPORT_RETENTION_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("REPORT_RETENTION_MAX_AGE_DAYS", 30)  // Remove definições deletadas há mais de 30 dias
	viper.SetDefault("REPORT_RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// RequestTimeoutDuration converte o timeout configurado para time.Duration
func (j Jellyfin) RequestTimeoutDuration() time.Duration {
	if j.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(j.RequestTimeout) * time.Second
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
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
