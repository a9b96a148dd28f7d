package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Spreadsheet
	SheetPath            string
	OutputDir            string
	FirstYear            int
	LastYear             int
	MisspellingThreshold int

	// Zotero
	ZoteroAPIKey      string
	ZoteroLibraryID   string
	ZoteroLibraryType string
	ZoteroCollection  string
	ZoteroURL         string

	// Crossref
	CrossrefMailto  string
	CrossrefEnabled bool
	CrossrefURL     string
	DOIThreshold    int

	// Requests per second sent to each remote API
	RateLimit float64

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.citecheck.yaml or ./.citecheck.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. An empty path
// searches the standard locations, and a missing file there is not an error.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "cannot read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".citecheck")
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		SheetPath:            v.GetString("sheet_path"),
		OutputDir:            v.GetString("output_dir"),
		FirstYear:            v.GetInt("first_year"),
		LastYear:             v.GetInt("last_year"),
		MisspellingThreshold: v.GetInt("misspelling_threshold"),

		ZoteroAPIKey:      v.GetString("zotero_api_key"),
		ZoteroLibraryID:   v.GetString("zotero_library_id"),
		ZoteroLibraryType: v.GetString("zotero_library_type"),
		ZoteroCollection:  v.GetString("zotero_collection"),
		ZoteroURL:         v.GetString("zotero_url"),

		CrossrefMailto:  v.GetString("crossref_mailto"),
		CrossrefEnabled: v.GetBool("crossref_enabled"),
		CrossrefURL:     v.GetString("crossref_url"),
		DOIThreshold:    v.GetInt("doi_threshold"),

		RateLimit: v.GetFloat64("rate_limit"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.FirstYear < config.LastYear {
		return nil, errors.NewConfigError("years", "first_year must not be before last_year", nil)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("first_year", constants.DefaultFirstYear)
	v.SetDefault("last_year", constants.DefaultLastYear)
	v.SetDefault("misspelling_threshold", constants.MisspellingThreshold)
	v.SetDefault("doi_threshold", constants.DOIThreshold)
	v.SetDefault("zotero_library_type", constants.DefaultLibraryType)
	v.SetDefault("crossref_enabled", false)
	v.SetDefault("rate_limit", constants.DefaultRateLimit)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
