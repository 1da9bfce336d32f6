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
	App     App     `mapstructure:",squash"`
	Server  Server  `mapstructure:",squash"`
	Meta    Meta    `mapstructure:",squash"`
	Auth    Auth    `mapstructure:",squash"`
	Scan    Scan    `mapstructure:",squash"`
	Rescan  Rescan  `mapstructure:",squash"`
	Roster  Roster  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Meta struct {
	BaseURL          string `mapstructure:"meta_base_url"`
	URL              string `mapstructure:"-"`
	Version          string `mapstructure:"meta_version"`
	AccountListLimit int    `mapstructure:"meta_account_list_limit"`
}

type Auth struct {
	Secret          string `mapstructure:"auth_secret"`
	SessionTTLHours int    `mapstructure:"auth_session_ttl_hours"`
}

// Scan parametriza o scan de risco do portfólio. O limiar de custo é um
// valor monetário fixo aplicado sem conversão entre moedas, por paridade com
// o comportamento de referência.
type Scan struct {
	DormancyDays        int     `mapstructure:"scan_dormancy_days"`
	CostRiskThreshold   float64 `mapstructure:"scan_cost_risk_threshold"`
	ActivitySampleLimit int     `mapstructure:"scan_activity_sample_limit"`
	HealthSampleLimit   int     `mapstructure:"scan_health_sample_limit"`
	ActivityPageLimit   int     `mapstructure:"scan_activity_page_limit"`
}

type Rescan struct {
	CronSchedule string `mapstructure:"rescan_cron"`
	Enabled      bool   `mapstructure:"rescan_enabled"`
}

type Roster struct {
	UserLimit int `mapstructure:"roster_user_limit"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v19.0")
	viper.SetDefault("META_ACCOUNT_LIST_LIMIT", 200)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_SESSION_TTL_HOURS", 12)

	viper.SetDefault("SCAN_DORMANCY_DAYS", 7)          // Janela de dormência em dias
	viper.SetDefault("SCAN_COST_RISK_THRESHOLD", 60.0) // Limiar de CPA em unidades da moeda da conta
	viper.SetDefault("SCAN_ACTIVITY_SAMPLE_LIMIT", 10) // Amostra de atividades recentes por conta
	viper.SetDefault("SCAN_HEALTH_SAMPLE_LIMIT", 50)   // Amostra para o veredito de saúde
	viper.SetDefault("SCAN_ACTIVITY_PAGE_LIMIT", 500)  // Tamanho máximo de página do log

	viper.SetDefault("RESCAN_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("RESCAN_ENABLED", false)      // Habilitar re-scan periódico das sessões ativas

	viper.SetDefault("ROSTER_USER_LIMIT", 200)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	return config, nil
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
