package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type PipelineConfig struct {
	DiscoveryInterval       time.Duration `mapstructure:"discovery_interval"`
	ConnectorTimeout        time.Duration `mapstructure:"connector_timeout"`
	AutoDiscoveryDelay      time.Duration `mapstructure:"auto_discovery_delay"`
	JobExpirationInDays     int           `mapstructure:"job_expiration_days"`
	AlertPageSize           int           `mapstructure:"alert_page_size"`
	MaxRequestsPerSecond    float32       `mapstructure:"max_requests_per_second"`
	AdzunaAppID             string        `mapstructure:"adzuna_app_id"`
	AdzunaAppKey            string        `mapstructure:"adzuna_app_key"`
	AdzunaCountry           string        `mapstructure:"adzuna_country"`
	AIKey                   string        `mapstructure:"ai_key"`
	AiModel                 string        `mapstructure:"ai_model"`
	AiMaxRequestsPerMinute  float32       `mapstructure:"ai_max_requests_per_minute"`
	AiMaxRequestsPerDay     float32       `mapstructure:"ai_max_requests_per_day"`
}

func (config PipelineConfig) validate() error {

	var missingFields []string

	if config.DiscoveryInterval <= 0 {
		missingFields = append(missingFields, "discovery_interval")
	}

	if config.JobExpirationInDays <= 0 {
		missingFields = append(missingFields, "job_expiration_days")
	}

	if config.AIKey != "" && config.AiModel == "" {
		missingFields = append(missingFields, "ai_model")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config PipelineConfig) bindEnvironmentVariables() error {
	var errs []error

	bindings := map[string]string{
		"pipeline.discovery_interval":      "DISCOVERY_INTERVAL",
		"pipeline.job_expiration_days":     "JOB_EXPIRATION_DAYS",
		"pipeline.max_requests_per_second": "MAX_REQUESTS_PER_SECOND",
		"pipeline.adzuna_app_id":           "ADZUNA_APP_ID",
		"pipeline.adzuna_app_key":          "ADZUNA_APP_KEY",
		"pipeline.adzuna_country":          "ADZUNA_COUNTRY",
		"pipeline.ai_key":                  "AI_KEY",
		"pipeline.ai_model":                "AI_MODEL",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
