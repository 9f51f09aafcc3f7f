// Package iofs prepares the directories and the config file breedersdb
// needs in the user's home directory.
package iofs

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"os"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// CheckConfigFile decodes the config file strictly and returns an error
// for unknown keys or malformed values. Viper ignores both silently.
func CheckConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)
	bs, err := os.ReadFile(configPath)
	if err != nil {
		return ReadFileError(configPath, err)
	}
	return checkYAML(configPath, bs)
}

func checkYAML(path string, bs []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)

	var cfg config.Config
	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return ConfigFormatError(path, err)
	}
	return nil
}
