// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/clstrctl/internal/log"
)

// EnvFile overrides the config file location when set.
const EnvFile = "CLSTRCTL_CFG_FILE"

// FileName is looked up in os.UserConfigDir when EnvFile is unset.
const FileName = "clstrctl.yaml"

// Type is the loaded configuration.
//
//   - Source: absolute path of the YAML file, empty when none was found.
//   - Namespace: optional dotted prefix tried before the bare key, usually
//     the running subcommand ("diff", "ls").
//   - Data: the raw YAML tree.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config is the process-wide configuration. A missing file is not an error
// for callers of the getters; they see every key as absent.
var Config Type

// Load reads the config file into Config.
func Load() (Type, error) {
	path, err := configFile()
	if err != nil {
		return Type{}, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}
	log.Debugf("config loaded: path=%s keys=%d", path, len(data))

	return Config, nil
}

// GetInt returns the integer at the dotted key. A single default is
// returned when the key is missing.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers decode as int or float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetString returns the string at the dotted key. A single default is
// returned when the key is missing.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetStringSlice returns the string list at the dotted key. A single default
// is returned when the key is missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	items, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: value is not a list", key)
	}

	result := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: list element %d is not a string", key, i)
		}
		result[i] = s
	}
	return result, nil
}

// lookup lazily loads the file and resolves key, namespaced first.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return Config.get(key)
}

// get walks Data along a dotted path. With a Namespace set the namespaced
// path is tried before the bare one.
func (cfg *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		var current interface{} = cfg.Data
		found := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				found = false
				break
			}
			if current, ok = m[part]; !ok {
				found = false
				break
			}
		}
		if found {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

// configFile resolves EnvFile or os.UserConfigDir()/FileName. The file must
// exist and not be a directory.
func configFile() (string, error) {
	if p := os.Getenv(EnvFile); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found at %s path: %s", EnvFile, p)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvFile, p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		return abs, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		return file, nil
	}

	return "", errors.New("no config file found in standard locations")
}
