package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"essay-feedback/api/internal/config"
	"essay-feedback/api/internal/logging"
)

var (
	cfgFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "essay-feedback",
	Short: "Automated feedback for NSW Selective style writing",
	Long: `essay-feedback marks short student essays by combining an LLM critique
(OpenAI or Gemini) with LanguageTool grammar checking, and returns one
feedback document whose annotations point into the original text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); environment variables take precedence")
	rootCmd.AddCommand(serveCmd, botCmd, checkCmd)
}
