package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Pyrocube-Network/EconomyApi/internal/dto"
)

// LoadCurrencyDefinitions reads and validates the currencies file. The
// format follows the file extension (yaml, json, toml).
func LoadCurrencyDefinitions(path string) ([]dto.CurrencyDefinition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read currencies file %s: %w", path, err)
	}

	var file dto.CurrencyFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode currencies file %s: %w", path, err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid currencies file %s: %w", path, err)
	}

	primaries := 0
	for _, def := range file.Currencies {
		if def.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return nil, fmt.Errorf("invalid currencies file %s: %d currencies declared primary", path, primaries)
	}
	return file.Currencies, nil
}
