package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	app "github.com/rocketscienceinc/tictactoe-server/internal"
	"github.com/rocketscienceinc/tictactoe-server/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe game server",
	Long: `Tic-tac-toe game server with a REST API, a WebSocket API and a terminal mode.

Available commands:
  serve  - run the HTTP and WebSocket server (default)
  play   - play a local game in the terminal`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	RunE:  runServe,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local game in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		withBot, err := cmd.Flags().GetBool("bot")
		if err != nil {
			return err
		}

		conf, err := config.LoadOrEnv(configFile())
		if err != nil {
			return err
		}
		logger := initLogger(conf, os.Stderr)

		return app.RunConsole(logger, cmd.InOrStdin(), cmd.OutOrStdout(), withBot)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is ./config.yml)")
	playCmd.Flags().Bool("bot", false, "let the computer play as Player 2")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	conf := initConfig()
	logger := initLogger(conf, os.Stdout)

	if err := app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// initialize config.
func initConfig() *config.Config {
	return config.MustLoad(configFile())
}

func configFile() string {
	if configPath != "" {
		return configPath
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return filepath.Join(baseDir, "./config.yml")
}

// initialize logger. Records also go to a rotated file when log-file is set.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if conf.LogFile != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
