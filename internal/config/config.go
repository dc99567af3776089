// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App  AppConfig
	Plan PlanConfig
}

type AppConfig struct {
	LogLevel string
}

type PlanConfig struct {
	HorizonDays         int
	ServiceLevel        float64
	LeadTimeVariability float64
	OrderingCost        float64
	HoldingRate         float64
	SmoothingAlpha      float64
	SmoothingBeta       float64
	WorkerCount         int
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
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("PLAN_HORIZON_DAYS", 90)
		viper.SetDefault("PLAN_SERVICE_LEVEL", 0.95)
		viper.SetDefault("PLAN_LEAD_TIME_VARIABILITY", 0.2)
		viper.SetDefault("PLAN_ORDERING_COST", 50.0)
		viper.SetDefault("PLAN_HOLDING_RATE", 0.25)
		viper.SetDefault("PLAN_SMOOTHING_ALPHA", 0.3)
		viper.SetDefault("PLAN_SMOOTHING_BETA", 0.0)
		viper.SetDefault("PLAN_WORKER_COUNT", 4)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			App: AppConfig{
				LogLevel: viper.GetString("LOG_LEVEL"),
			},
			Plan: PlanConfig{
				HorizonDays:         viper.GetInt("PLAN_HORIZON_DAYS"),
				ServiceLevel:        viper.GetFloat64("PLAN_SERVICE_LEVEL"),
				LeadTimeVariability: viper.GetFloat64("PLAN_LEAD_TIME_VARIABILITY"),
				OrderingCost:        viper.GetFloat64("PLAN_ORDERING_COST"),
				HoldingRate:         viper.GetFloat64("PLAN_HOLDING_RATE"),
				SmoothingAlpha:      viper.GetFloat64("PLAN_SMOOTHING_ALPHA"),
				SmoothingBeta:       viper.GetFloat64("PLAN_SMOOTHING_BETA"),
				WorkerCount:         viper.GetInt("PLAN_WORKER_COUNT"),
			},
		}
	})

	return instance
}
