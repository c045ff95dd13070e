package main

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/lectern/internal/config"
)

// cmdKey manages the stored OpenAI API key
func cmdKey(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Key commands:

  lectern key set <api-key>   Store your OpenAI API key
  lectern key status          Show whether a key is configured
  lectern key clear           Remove the stored key`)
		return nil
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("API key required (e.g., lectern key set sk-...)")
		}
		key := strings.TrimSpace(args[1])
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}
		if err := config.SaveAPIKey(key); err != nil {
			return err
		}
		fmt.Println("API key saved to ~/.lectern/secrets.yaml")
		return nil

	case "status":
		key, err := config.APIKey()
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Println("No API key configured")
			fmt.Println("Run 'lectern key set <api-key>' to add one")
			return nil
		}
		fmt.Printf("API key configured (%s)\n", maskKey(key))
		return nil

	case "clear":
		if err := config.ClearAPIKey(); err != nil {
			return err
		}
		fmt.Println("API key removed")
		return nil

	default:
		return fmt.Errorf("unknown key command: %s", args[0])
	}
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
