package config

import (
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Board holds every tunable a board's startup wiring needs: mixer
// period/ring sizing, work-queue defaults, and provisioning timeouts.
// Zero values are invalid — Default returns a board with sane
// reference values filled in.
type Board struct {
	Mixer        Mixer        `yaml:"mixer"`
	WorkQueue    WorkQueue    `yaml:"work_queue"`
	Provisioning Provisioning `yaml:"provisioning"`
}

// Mixer configures the software mixer's sample rate, channel count,
// period size, and maximum concurrent slots.
type Mixer struct {
	SampleRate   int `yaml:"sample_rate"`
	Channels     int `yaml:"channels"`
	PeriodFrames int `yaml:"period_frames"`
	MaxSlots     int `yaml:"max_slots"`
}

// WorkQueue configures the system work queue's backing ring capacity.
type WorkQueue struct {
	Capacity int `yaml:"capacity"`
}

// Provisioning configures timeouts around the WiFi provisioning state
// machine's connect attempt.
type Provisioning struct {
	ScanTimeoutMs    int64 `yaml:"scan_timeout_ms"`
	ConnectTimeoutMs int64 `yaml:"connect_timeout_ms"`
}

// Default returns the reference board configuration.
func Default() Board {
	return Board{
		Mixer: Mixer{
			SampleRate:   16000,
			Channels:     1,
			PeriodFrames: 64,
			MaxSlots:     4,
		},
		WorkQueue: WorkQueue{
			Capacity: 64,
		},
		Provisioning: Provisioning{
			ScanTimeoutMs:    5000,
			ConnectTimeoutMs: 15000,
		},
	}
}

// Load reads a YAML board configuration from path, starting from
// Default and overlaying whatever the file specifies. A missing file
// is not an error — it returns Default unchanged, mirroring
// provisioning's YAMLSettings "absent file means empty" convention.
func Load(path string) (Board, error) {
	board := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return board, nil
		}
		return Board{}, err
	}
	if err := yaml.Unmarshal(raw, &board); err != nil {
		return Board{}, err
	}
	return board, nil
}

// Save writes board to path atomically via renameio, the same
// replace-by-rename discipline provisioning/yamlsettings.go uses for
// its settings store.
func Save(path string, board Board) error {
	raw, err := yaml.Marshal(board)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, raw, 0o600)
}

// FlagSet returns a pflag.FlagSet pre-bound to board's fields, for a
// command-line entry point to parse on top of a loaded file:
//
//	board, _ := config.Load(*configPath)
//	fs := config.FlagSet(&board)
//	fs.Parse(os.Args[1:])
func FlagSet(board *Board) *pflag.FlagSet {
	fs := pflag.NewFlagSet("emberhal", pflag.ContinueOnError)
	fs.IntVar(&board.Mixer.SampleRate, "mixer-sample-rate", board.Mixer.SampleRate, "mixer sample rate in Hz")
	fs.IntVar(&board.Mixer.Channels, "mixer-channels", board.Mixer.Channels, "mixer channel count")
	fs.IntVar(&board.Mixer.PeriodFrames, "mixer-period-frames", board.Mixer.PeriodFrames, "mixer period size in frames")
	fs.IntVar(&board.Mixer.MaxSlots, "mixer-max-slots", board.Mixer.MaxSlots, "maximum concurrent mixer slots")
	fs.IntVar(&board.WorkQueue.Capacity, "workqueue-capacity", board.WorkQueue.Capacity, "system work queue ring capacity")
	fs.Int64Var(&board.Provisioning.ScanTimeoutMs, "provisioning-scan-timeout-ms", board.Provisioning.ScanTimeoutMs, "WiFi scan timeout in milliseconds")
	fs.Int64Var(&board.Provisioning.ConnectTimeoutMs, "provisioning-connect-timeout-ms", board.Provisioning.ConnectTimeoutMs, "WiFi connect timeout in milliseconds")
	return fs
}
