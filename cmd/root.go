package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	apiBaseURL  string
	environment string
	email       string
	language    string
	redisURL    string
	draftsPath  string
	stagingDir  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jrss-console",
	Short: "Terminal client for the Judicial Regulatory Support System",
	Long: `jrss-console is a terminal-first client for the Judicial Regulatory
Support System case-management backend. It browses, filters and creates
legal cases against the REST API without needing a browser.

Features:
- Interactive case browser with filters, search and pagination
- Multi-step case creation with attachments and tags
- Reference-data (lookup) caching with request de-duplication
- Local SQLite drafts for in-progress case requests
- Optional Redis-backed preference cache`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jrss-console.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "http://localhost:8080", "Base URL of the case-management backend")
	rootCmd.PersistentFlags().StringVar(&environment, "environment", "local", "Environment name sent as X-Environment")
	rootCmd.PersistentFlags().StringVar(&email, "email", "", "Logged-in user email sent with every request")
	rootCmd.PersistentFlags().StringVar(&language, "language", "en", "Preferred language (en, ar)")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis", "", "Redis URL for the preference cache (empty disables it)")
	rootCmd.PersistentFlags().StringVar(&draftsPath, "drafts-db", "./data/jrss-drafts.db", "SQLite database path for local case drafts")
	rootCmd.PersistentFlags().StringVar(&stagingDir, "staging-dir", "./staging", "Directory watched for attachment files")

	// Bind flags to viper
	viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("api.environment", rootCmd.PersistentFlags().Lookup("environment"))
	viper.BindPFlag("user.email", rootCmd.PersistentFlags().Lookup("email"))
	viper.BindPFlag("user.language", rootCmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("redis.url", rootCmd.PersistentFlags().Lookup("redis"))
	viper.BindPFlag("drafts.path", rootCmd.PersistentFlags().Lookup("drafts-db"))
	viper.BindPFlag("staging.dir", rootCmd.PersistentFlags().Lookup("staging-dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".jrss-console" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jrss-console")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Set defaults
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.environment", "local")
	viper.SetDefault("user.email", "")
	viper.SetDefault("user.language", "en")
	viper.SetDefault("redis.url", "")
	viper.SetDefault("drafts.path", "./data/jrss-drafts.db")
	viper.SetDefault("staging.dir", "./staging")
	viper.SetDefault("list.page_size", 7)
}

// GetConfig returns the current configuration values
func GetConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:     viper.GetString("api.base_url"),
			Environment: viper.GetString("api.environment"),
		},
		User: UserConfig{
			Email:    viper.GetString("user.email"),
			Language: viper.GetString("user.language"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("redis.url"),
		},
		Drafts: DraftsConfig{
			Path: viper.GetString("drafts.path"),
		},
		Staging: StagingConfig{
			Dir: viper.GetString("staging.dir"),
		},
		List: ListConfig{
			PageSize: viper.GetInt("list.page_size"),
		},
	}
}

// Config represents the application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	User    UserConfig    `mapstructure:"user"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Drafts  DraftsConfig  `mapstructure:"drafts"`
	Staging StagingConfig `mapstructure:"staging"`
	List    ListConfig    `mapstructure:"list"`
}

type APIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Environment string `mapstructure:"environment"`
}

type UserConfig struct {
	Email    string `mapstructure:"email"`
	Language string `mapstructure:"language"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type DraftsConfig struct {
	Path string `mapstructure:"path"`
}

type StagingConfig struct {
	Dir string `mapstructure:"dir"`
}

type ListConfig struct {
	PageSize int `mapstructure:"page_size"`
}
