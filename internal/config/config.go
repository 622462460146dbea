// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Policy   PolicyConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// JournalEnabled turns on the persistent scan journal. The ledger
	// itself is always in-memory.
	JournalEnabled bool
}

type CacheConfig struct {
	Enabled               bool
	RedisURL              string
	RedisHost             string
	RedisPort             string
	RedisPassword         string
	RedisDB               int
	RecommendationTTLSecs int
}

// PolicyConfig carries the replenishment and allocation policy constants.
// Everything here is an input to the engine; it never derives them.
type PolicyConfig struct {
	DefaultBinCapacity int
	OrderingCost       float64
	HoldingCostPerUnit float64
	ServiceLevelZ      float64
	ABCClassAThreshold float64
	ABCClassBThreshold float64
}

// SeedConfig points at the external seed files. Missing files are not an
// error; the engine just starts empty.
type SeedConfig struct {
	BinsCSV    string
	DemandCSV  string
	CatalogCSV string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "autowms")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("DB_JOURNAL_ENABLED", false)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_RECOMMENDATION_TTL_SECONDS", 60)
		viper.SetDefault("POLICY_DEFAULT_BIN_CAPACITY", 1500)
		viper.SetDefault("POLICY_ORDERING_COST", 50.0)
		viper.SetDefault("POLICY_HOLDING_COST_PER_UNIT", 2.0)
		viper.SetDefault("POLICY_SERVICE_LEVEL_Z", 1.65)
		viper.SetDefault("POLICY_ABC_CLASS_A_THRESHOLD", 80.0)
		viper.SetDefault("POLICY_ABC_CLASS_B_THRESHOLD", 95.0)
		viper.SetDefault("SEED_BINS_CSV", "./data/seeds/bins.csv")
		viper.SetDefault("SEED_DEMAND_CSV", "./data/seeds/demand.csv")
		viper.SetDefault("SEED_CATALOG_CSV", "./data/seeds/catalog.csv")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:           viper.GetString("DB_HOST"),
				Port:           viper.GetString("DB_PORT"),
				User:           viper.GetString("DB_USER"),
				Password:       viper.GetString("DB_PASSWORD"),
				DBName:         viper.GetString("DB_NAME"),
				SSLMode:        viper.GetString("DB_SSLMODE"),
				JournalEnabled: viper.GetBool("DB_JOURNAL_ENABLED"),
			},
			Cache: CacheConfig{
				Enabled:               viper.GetBool("CACHE_ENABLED"),
				RedisURL:              viper.GetString("REDIS_URL"),
				RedisHost:             viper.GetString("REDIS_HOST"),
				RedisPort:             viper.GetString("REDIS_PORT"),
				RedisPassword:         viper.GetString("REDIS_PASSWORD"),
				RedisDB:               viper.GetInt("REDIS_DB"),
				RecommendationTTLSecs: viper.GetInt("CACHE_RECOMMENDATION_TTL_SECONDS"),
			},
			Policy: PolicyConfig{
				DefaultBinCapacity: viper.GetInt("POLICY_DEFAULT_BIN_CAPACITY"),
				OrderingCost:       viper.GetFloat64("POLICY_ORDERING_COST"),
				HoldingCostPerUnit: viper.GetFloat64("POLICY_HOLDING_COST_PER_UNIT"),
				ServiceLevelZ:      viper.GetFloat64("POLICY_SERVICE_LEVEL_Z"),
				ABCClassAThreshold: viper.GetFloat64("POLICY_ABC_CLASS_A_THRESHOLD"),
				ABCClassBThreshold: viper.GetFloat64("POLICY_ABC_CLASS_B_THRESHOLD"),
			},
			Seed: SeedConfig{
				BinsCSV:    viper.GetString("SEED_BINS_CSV"),
				DemandCSV:  viper.GetString("SEED_DEMAND_CSV"),
				CatalogCSV: viper.GetString("SEED_CATALOG_CSV"),
			},
		}
	})

	return instance
}
