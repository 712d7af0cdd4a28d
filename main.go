// Package main provides the entry point for the utter CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/utter-tts/utter/internal/cache"
	"github.com/utter-tts/utter/internal/player"
	"github.com/utter-tts/utter/speech"
	"github.com/utter-tts/utter/speech/synth"
	"github.com/utter-tts/utter/speech/synth/gemini"
	"github.com/utter-tts/utter/speech/synth/mock"
	"github.com/utter-tts/utter/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	voiceID    string
	engineName string
	modelName  string
	volume     float64
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "utter [text]",
		Short: "Speak text out loud, straight from the terminal",
		Long: paragraph(
			fmt.Sprintf("\nType it, %s. A terminal studio for expressive cloud text-to-speech.", keyword("hear it")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(_ *cobra.Command) error {
	// grab config values from Viper
	voiceID = viper.GetString("voice")
	engineName = viper.GetString("engine")
	modelName = viper.GetString("model")
	volume = viper.GetFloat64("volume")

	if voiceID != "" {
		if _, ok := speech.LookupVoice(voiceID); !ok {
			return fmt.Errorf("unknown voice %q: run 'utter voices' for the catalog", voiceID)
		}
	}

	switch engineName {
	case "", "gemini", "mock":
	default:
		return fmt.Errorf("unknown engine %q (supported: gemini, mock)", engineName)
	}

	if volume < 0 || volume > 1 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %.2f", volume)
	}

	if debug && os.Getenv("UTTER_LOGFILE") == "" {
		if err := setupDebugLogFile(); err != nil {
			log.Warn("failed to set up debug log file", "error", err)
		}
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(_ *cobra.Command, args []string) error {
	prefill := strings.Join(args, " ")

	// if stdin is a pipe then use it for the prompt text. An explicit
	// argument still wins.
	if yes, err := stdinIsPipe(); err != nil {
		return err
	} else if yes && prefill == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("unable to read from stdin: %w", err)
		}
		prefill = strings.TrimSpace(string(b))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("utter is a TUI and needs a terminal on stdout")
	}

	return runTUI(prefill)
}

func runTUI(prefill string) error {
	// Read environment to get the API key and debugging stuff.
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg.Voice = voiceID
	if cfg.Voice == "" {
		cfg.Voice = speech.DefaultVoice
	}
	cfg.Engine = engineName
	cfg.Model = modelName
	cfg.Volume = volume
	cfg.Prefill = prefill
	if debug {
		cfg.Debug = true
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	if err := engine.Validate(); err != nil {
		if errors.Is(err, synth.ErrNoAPIKey) {
			return errors.New("no API key: set GEMINI_API_KEY, or try --engine mock")
		}
		return fmt.Errorf("engine %s is not usable: %w", engine.Name(), err)
	}

	device, err := player.NewOtoDevice(speech.SampleRate, speech.Channels)
	if err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}

	maxBytes := int64(viper.GetInt("cache.max_mb")) * 1024 * 1024
	ctrl := speech.NewController(engine, cache.New(maxBytes), player.New(device, speech.SampleRate))

	// Run Bubble Tea program
	if _, err := ui.NewProgram(cfg, ctrl).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func buildEngine(cfg ui.Config) (synth.Synthesizer, error) {
	switch cfg.Engine {
	case "mock":
		return mock.New(), nil
	case "", "gemini":
		return gemini.New(context.Background(), cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug output to the utter log file")
	rootCmd.Flags().StringVarP(&voiceID, "voice", "V", "", "voice persona (see 'utter voices')")
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "", "synthesis engine (gemini, mock)")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "override the synthesis model")
	rootCmd.Flags().Float64Var(&volume, "volume", 1.0, "playback volume (0.0 to 1.0)")

	// Config bindings
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("volume", rootCmd.Flags().Lookup("volume"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetDefault("voice", speech.DefaultVoice)
	viper.SetDefault("engine", "gemini")
	viper.SetDefault("model", "")
	viper.SetDefault("volume", 1.0)
	viper.SetDefault("cache.max_mb", 64)

	rootCmd.AddCommand(configCmd, voicesCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "utter")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "utter")}, dirs...)
	}

	if c := os.Getenv("UTTER_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("utter")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("utter")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "utter.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
