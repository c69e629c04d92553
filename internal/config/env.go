package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. A double underscore separates the
// section from the key: VETO_ENTROPY_GUARD__MIN_LENGTH=30 sets
// entropy_guard.min_length. List values are comma separated.
const EnvPrefix = "VETO_"

var listKeys = map[string]bool{
	"allowlist.patterns":       true,
	"entropy_guard.ignore_ext": true,
	"entropy_guard.exclude":    true,
}

// LoadEnv reads VETO_* overrides from the environment. Variables that are
// not set leave the corresponding fields nil.
func LoadEnv() (FileConfig, error) {
	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		name = strings.Replace(name, "__", ".", 1)
		if !listKeys[name] {
			return name, value
		}
		items := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return name, items
	}), nil)
	if err != nil {
		return FileConfig{}, fmt.Errorf("load environment: %w", err)
	}
	var fc FileConfig
	if err := k.UnmarshalWithConf("", &fc, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return FileConfig{}, fmt.Errorf("environment overrides: %w", err)
	}
	return fc, nil
}
