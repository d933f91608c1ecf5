// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the claimchat CLI.
// Implements: prd005-cli (chat, ask, history, filters surface).
// See docs/ARCHITECTURE § Client Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/claimchat/internal/secrets"
	"github.com/pdiddy/claimchat/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the claimchat CLI.
var rootCmd = &cobra.Command{
	Use:   "claimchat",
	Short: "Terminal client for the SpaceDigest claim-verification assistant",
	Long: `claimchat is a chat client for claim verification. Submit a natural-language
claim to search the literature for supporting papers, then optionally run an
AI verification pass that scores how well those papers support or contradict
the claim. Conversations are kept in a local history.

Search, ranking, and AI reasoning run on the SpaceDigest backend; claimchat
holds only your transcripts and the view in front of you.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./claimchat.yaml or ~/.config/claimchat/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("claimchat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "claimchat"))
		}
	}

	viper.SetEnvPrefix("CLAIMCHAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// backendConfig resolves the backend connection settings: config file or
// environment first, built-in defaults last. The API key may come from
// .secrets/spacedigest-api-key.
func backendConfig() types.BackendConfig {
	cfg := types.BackendConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("backend.timeout"),
			UserAgent: viper.GetString("backend.user_agent"),
		},
		BaseURL: viper.GetString("backend.base_url"),
		APIKey:  secretDefault("spacedigest-api-key", viper.GetString("backend.api_key")),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "claimchat/" + version
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3000"
	}
	return cfg
}

// storeConfig resolves where the local chat history database lives.
func storeConfig() types.StoreConfig {
	path := viper.GetString("store.db_path")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".local", "share", "claimchat", "history.db")
		} else {
			path = "claimchat-history.db"
		}
	}
	return types.StoreConfig{DBPath: path}
}

// chatConfig resolves the workflow settings.
func chatConfig() types.ChatConfig {
	cfg := types.ChatConfig{
		SearchLimit:     viper.GetInt("chat.search_limit"),
		MaxVerifyPapers: viper.GetInt("chat.max_verify_papers"),
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	if cfg.MaxVerifyPapers <= 0 {
		cfg.MaxVerifyPapers = 5
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
