package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type NotifierConfig struct {
	TelegramToken   string `mapstructure:"telegram_token"`
	WebhookURL      string `mapstructure:"webhook_url"`
	WebhookUser     string `mapstructure:"webhook_user"`
	WebhookPassword string `mapstructure:"webhook_password"`
}

func (config NotifierConfig) validate() error {
	if config.TelegramToken == "" && config.WebhookURL == "" {
		return fmt.Errorf("at least one of telegram_token or webhook_url must be set")
	}
	return nil
}

func (config NotifierConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("notifier.telegram_token", "TELEGRAM_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.webhook_url", "WEBHOOK_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.webhook_user", "WEBHOOK_USER"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.webhook_password", "WEBHOOK_PASSWORD"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
