package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"marketing_slogan_generator/config"
	"marketing_slogan_generator/generator"
)

type globalFlags struct {
	envFile    string
	configFile string
	verbose    bool
	dryRun     bool
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "slogan-generator",
		Short: "Generate marketing slogans from prompt templates",
		Long:  "Renders professional, creative or audience-focused slogan prompts and sends them to an Azure OpenAI or OpenAI chat completion endpoint.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env", ".env", "dotenv file with credentials")
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "optional yaml config (default ./slogan.yaml if present)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logs")
	root.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "use placeholder completions instead of calling the service")

	root.AddCommand(newMenuCmd(flags))
	root.AddCommand(newDemoCmd(flags))
	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newPromptsCmd())
	root.AddCommand(newServeCmd(flags))
	return root
}

// loadConfig runs once per command, at process entry.
func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(config.Options{EnvFile: flags.envFile, ConfigFile: flags.configFile})
	if err != nil {
		return config.Config{}, err
	}
	log.Debug().
		Str("provider", cfg.LLM.Provider).
		Str("model", cfg.LLM.ModelName()).
		Int64("max_completion_tokens", cfg.LLM.MaxCompletionTokens).
		Msg("configuration loaded")
	if err := cfg.LLM.Validate(); err != nil && !flags.dryRun {
		log.Warn().Err(err).Msg("completion service not configured; requests will return an error message")
	}
	return cfg, nil
}

func buildAgent(cfg config.Config, flags *globalFlags) *generator.Agent {
	opts := []generator.Option{generator.WithLogger(log.Logger)}
	if flags.dryRun {
		opts = append(opts, generator.WithLLM(generator.MockLLM{}))
	}
	return generator.NewAgent(cfg.LLM, opts...)
}
