package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/canoncheck/canoncheck/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "canoncheck",
	Short: "Canoncheck - Backstory consistency adjudication against novels",
	Long: `Canoncheck decides whether a character backstory is consistent with the
text of a novel.

Each backstory is broken into atomic factual claims. Every claim is
argued by two adversarial agents over evidence retrieved from the novel
(a prosecutor hunting contradictions and a defense attorney arguing
plausibility), and a judge renders the final verdict. Claim verdicts are
aggregated into a single binary label: consistent or contradictory.

The adjudication is deliberately conservative: one hard contradiction
outweighs any amount of support, and a backstory the novel says too
little about is treated as contradictory rather than given the benefit
of the doubt.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("canoncheck v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.canoncheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.canoncheck")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CANONCHECK_*
	viper.SetEnvPrefix("CANONCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, overlaid with
// the config file and CANONCHECK_* environment variables, with provider
// API keys pulled from their conventional variables when unset
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "groq":
			cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.Embedding.APIKey == "" && cfg.Embedding.Provider == "openai" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if base := os.Getenv("OLLAMA_BASE_URL"); base != "" {
		if cfg.LLM.Provider == "ollama" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = base
		}
		if cfg.Embedding.Provider == "ollama" && cfg.Embedding.BaseURL == "" {
			cfg.Embedding.BaseURL = base
		}
	}

	cfg.Output.Verbose = verbose || cfg.Output.Verbose
	return cfg, nil
}
