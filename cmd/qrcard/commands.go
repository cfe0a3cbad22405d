package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mdp/qrterminal/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/youruser/qrcard/internal/api"
	"github.com/youruser/qrcard/internal/batch"
	"github.com/youruser/qrcard/internal/config"
	"github.com/youruser/qrcard/internal/payload"
	"github.com/youruser/qrcard/internal/roster"
	"github.com/youruser/qrcard/internal/scan"
	"github.com/youruser/qrcard/internal/util"
)

func runGenerate(w io.Writer, cfg *config.Config, input, output string) error {
	mode, err := payload.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	if output == "" {
		output = cfg.OutputDir(util.Stem(input))
	}
	res, err := batch.Run(batch.Config{
		Input:         input,
		Output:        output,
		Background:    cfg.Background,
		BackgroundDir: cfg.BackgroundDir,
		Columns:       roster.ColumnsAt(cfg.ColumnOffset),
		Mode:          mode,
		Layout:        cfg.Layout,
	})
	if err != nil {
		if res.Generated > 0 {
			log.Warnf("%d cards were written to %s before the failure", res.Generated, res.OutputDir)
		}
		return err
	}
	fmt.Fprintf(w, "Generated %d cards in %s (%d rows skipped)\n", res.Generated, res.OutputDir, res.Skipped)
	return nil
}

func newVerifyCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <dir>",
		Short: "Decode every card in a directory and check it against its file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := scan.VerifyDir(args[0], (*cfg).Layout)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range rep.Problems {
				if p.Err != "" {
					fmt.Fprintf(out, "UNREADABLE %s: %s\n", p.File, p.Err)
				} else {
					fmt.Fprintf(out, "MISMATCH   %s: encodes %q\n", p.File, p.Decoded)
				}
			}
			fmt.Fprintf(out, "%d/%d cards verified\n", rep.OK, rep.Checked)
			if len(rep.Problems) > 0 {
				return fmt.Errorf("%d cards failed verification", len(rep.Problems))
			}
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <text>",
		Short: "Print a QR code for text to the terminal",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			qrterminal.GenerateHalfBlock(strings.Join(args, " "), qrterminal.L, cmd.OutOrStdout())
		},
	}
}

func newServeCmd(cfg **config.Config, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			h, err := api.NewHandler(c.Layout, c.BackgroundDir)
			if err != nil {
				return err
			}
			r := gin.Default()
			api.RegisterRoutes(r, h)

			log.Infof("starting server on %s", c.Addr)
			if err := r.Run(c.Addr); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default :8080 or :$PORT)")
	return cmd
}
