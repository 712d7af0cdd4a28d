package ui

import "time"

// Config contains TUI-specific configuration.
type Config struct {
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	LogFile      string        `env:"UTTER_LOGFILE"`
	Debug        bool          `env:"UTTER_DEBUG"`
	SynthTimeout time.Duration `env:"UTTER_SYNTH_TIMEOUT" envDefault:"60s"`
	FrameRate    int           `env:"UTTER_FPS"           envDefault:"30"`

	// Resolved from flags and the config file.
	Voice   string
	Engine  string
	Model   string
	Volume  float64
	Prefill string
}
