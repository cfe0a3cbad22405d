package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/youruser/qrcard/internal/config"
)

var version = "v0.3.0"

// options holds flag values shared by the subcommands.
type options struct {
	configPath    string
	envFile       string
	logLevel      string
	backgroundDir string
	font          string

	mode       string
	background string
	offset     int

	addr string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "qrcard <input-path> [output-path]",
		Short: "Generate QR-coded ID cards from a roster CSV",
		Long: `Reads a roster CSV, skips its header and every row without a numeric
sequence number, and writes one PNG card per member. The background is
looked up as {stem}.png, then {stem}_background.png, in the background dir.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd, &opts)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return runGenerate(cmd.OutOrStdout(), cfg, args[0], output)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "qrcard.yaml", "Path to config file")
	pf.StringVar(&opts.envFile, "env", ".env", "Path to .env file")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.backgroundDir, "background-dir", "", "Directory holding card backgrounds")
	pf.StringVar(&opts.font, "font", "", "TTF font for names (embedded Go Bold if empty)")

	f := root.Flags()
	f.StringVarP(&opts.mode, "mode", "m", "", "Output: card-name, card or qr")
	f.StringVarP(&opts.background, "background", "b", "", "Background image, overrides the lookup")
	f.IntVar(&opts.offset, "offset", 0, "Column offset of the sequence number (1 when a note column comes first)")

	root.AddCommand(newVerifyCmd(&cfg))
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newServeCmd(&cfg, &opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("qrcard %s\n", version)
		},
	})
	return root
}

// loadConfig layers flags that were set on top of the loaded config.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("background-dir") {
		cfg.BackgroundDir = opts.backgroundDir
	}
	if flags.Changed("font") {
		cfg.Layout.FontPath = opts.font
	}
	if flags.Changed("mode") {
		cfg.Mode = opts.mode
	}
	if flags.Changed("background") {
		cfg.Background = opts.background
	}
	if flags.Changed("offset") {
		cfg.ColumnOffset = opts.offset
	}
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if err := config.Logging(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
