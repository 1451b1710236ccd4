package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"place-lens/config"
	telegram "place-lens/internal/api"
	app "place-lens/internal/application"
	"place-lens/internal/container"
)

const usage = "Usage: place-lens path/to/image.jpg"

var (
	verbose  bool
	pretty   bool
	provider string
	model    string
	timeout  time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "place-lens <image>",
	Short: "Ask a multimodal model what place a photo shows",
	Long: `place-lens shrinks a local photo to at most 1600px, encodes it as JPEG
and sends it with a fixed analyst prompt to a hosted multimodal model.
The model's answer (JSON: place guess, evidence, significance) is printed
to stdout as is.

Run "place-lens bot" to serve the same analysis over Telegram.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errUsage
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout занят ответом модели, логи только в stderr
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if cmd.Name() == botCmd.Name() {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runAnalyze,
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot (needs TELEGRAM_TOKEN)",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

var errUsage = errors.New(usage)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "model provider: gemini or openai (overrides LLM_PROVIDER)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model name (overrides LLM_MODEL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (overrides REQUEST_TIMEOUT)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "validate the response and print it as indented JSON")

	rootCmd.AddCommand(botCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if provider != "" {
		cfg.Provider = provider
	}
	if model != "" {
		cfg.Model = model
	}
	if timeout > 0 {
		cfg.RequestTimeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancelTimeout()

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("analyzing", zap.String("image", args[0]), zap.String("model", c.Model.Name()))

	out, err := c.AnalysisService.AnalyzeFile(ctx, args[0])
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), out, pretty)
}

func printResult(w io.Writer, out *app.AnalysisOutput, pretty bool) error {
	if !pretty {
		_, err := fmt.Fprintln(w, out.Raw)
		return err
	}

	if out.ParseErr != nil {
		return fmt.Errorf("response is not valid analysis JSON: %w", out.ParseErr)
	}
	text, err := app.PrettyJSON(out.Parsed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, c.UserService, c.AnalysisService, cfg.RequestTimeout, logger)
	if err != nil {
		return err
	}

	logger.Info("bot is running", zap.String("model", c.Model.Name()))
	return bot.Run(ctx)
}
