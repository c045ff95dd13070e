package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns the path to ~/.lectern.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".lectern"), nil
}

// EnsureDir creates ~/.lectern and its subdirectories if they don't exist.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	for _, subdir := range []string{"", "logs", "data"} {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}
	return dir, nil
}

// secretsFile holds the credential stored in secrets.yaml.
type secretsFile struct {
	OpenAI struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"openai"`
}

func loadAPIKey(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "secrets.yaml"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read secrets: %w", err)
	}

	var secrets secretsFile
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return "", fmt.Errorf("parse secrets: %w", err)
	}
	return secrets.OpenAI.APIKey, nil
}

// SaveAPIKey stores the OpenAI API key in ~/.lectern/secrets.yaml with
// owner-only permissions.
func SaveAPIKey(key string) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	var secrets secretsFile
	secrets.OpenAI.APIKey = key

	data, err := yaml.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("marshal secrets: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "secrets.yaml"), data, 0600); err != nil {
		return fmt.Errorf("write secrets: %w", err)
	}
	return nil
}

// APIKey returns the stored OpenAI API key, or empty if none is saved.
func APIKey() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return loadAPIKey(dir)
}

// ClearAPIKey removes the stored credential. Clearing when nothing is
// stored is not an error.
func ClearAPIKey() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(dir, "secrets.yaml"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove secrets: %w", err)
	}
	return nil
}
