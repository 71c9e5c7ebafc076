package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "roast-my-cv"

	defaultDataset     = "data/new_cvs.csv"
	defaultEvaluations = "data/evaluations.csv"
	defaultResultsDir  = "results/new_cv_critiques"
)

type Config struct {
	// Dataset is the CSV file new CVs are appended to.
	Dataset string `mapstructure:"dataset"`
	// Evaluations is the CSV file per-critique metric rows are appended to.
	Evaluations string `mapstructure:"evaluations"`
	// ResultsDir receives critique text files and the metrics JSON.
	ResultsDir string `mapstructure:"results-dir"`
	// GroundTruth optionally fixes the set of issues actually present in the
	// CV. When empty the issues are detected automatically.
	GroundTruth []string  `mapstructure:"ground-truth"`
	AI          *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "roast-my-cv extracts a CV, critiques it with Gemini in three styles and scores each critique",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Same convention as the original tooling: secrets may live in a .env
	// file next to the binary.
	_ = godotenv.Load()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is roast-my-cv.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	viper.SetDefault("dataset", defaultDataset)
	viper.SetDefault("evaluations", defaultEvaluations)
	viper.SetDefault("results-dir", defaultResultsDir)

	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional; the defaults and environment cover a
	// plain run. A present but unparseable file is still fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}
