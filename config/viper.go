package config

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Viper reads settings from a viper instance, typically loaded from a YAML,
// TOML or JSON file and bound to command line flags.
type Viper struct {
	v *viper.Viper
}

// NewViper wraps an existing viper instance.
func NewViper(v *viper.Viper) *Viper {
	return &Viper{v: v}
}

// NewViperFile loads the named file. The format is taken from the extension.
func NewViperFile(path string) (*Viper, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(path))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration held in memory. configType is a
// format viper understands, such as "yaml".
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}

	return &Viper{v: v}, nil
}

// Viper returns the wrapped instance.
func (vc *Viper) Viper() *viper.Viper {
	return vc.v
}

// Transport decodes the current settings.
func (vc *Viper) Transport(context.Context) (Transport, error) {
	var t Transport
	if err := vc.v.Unmarshal(&t); err != nil {
		return Transport{}, errors.Join(ErrParsingConfig, err)
	}
	return t, nil
}
