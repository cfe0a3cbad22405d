// Package batch turns a roster file into one card image per member.
package batch

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	imagepkg "github.com/youruser/qrcard/internal/image"
	"github.com/youruser/qrcard/internal/payload"
	"github.com/youruser/qrcard/internal/roster"
	"github.com/youruser/qrcard/internal/util"
)

// Config describes one batch run.
type Config struct {
	Input string
	// Output overrides OutputRoot/<group>. An empty OutputRoot means the
	// working directory.
	Output     string
	OutputRoot string
	// Background overrides the lookup in BackgroundDir.
	Background    string
	BackgroundDir string
	Columns       roster.Columns
	Mode          payload.Mode
	Layout        imagepkg.Layout
}

// Result summarizes a run. On failure it still describes the cards written
// before the failing record.
type Result struct {
	Group      string
	Background string
	OutputDir  string
	Generated  int
	Skipped    int
	Files      []string
}

// BackgroundCandidates lists the template names tried for a roster stem, in order.
func BackgroundCandidates(dir, stem string) []string {
	return []string{
		filepath.Join(dir, stem+".png"),
		filepath.Join(dir, stem+"_background.png"),
	}
}

// ResolveBackground returns the first existing candidate.
func ResolveBackground(dir, stem string) (string, error) {
	cands := BackgroundCandidates(dir, stem)
	for _, c := range cands {
		if util.Exists(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s and %s", ErrBackgroundNotFound, cands[0], cands[1])
}

// Run generates a card for every included row of cfg.Input. Missing inputs are
// reported before anything is written; the first failing record aborts the run.
func Run(cfg Config) (Result, error) {
	var res Result
	if cfg.Mode == "" {
		cfg.Mode = payload.ModeCardName
	}
	if !util.Exists(cfg.Input) {
		return res, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.Input)
	}
	res.Group = util.Stem(cfg.Input)

	if cfg.Mode.NeedsBackground() {
		bgPath, err := backgroundFor(cfg, res.Group)
		if err != nil {
			return res, err
		}
		// Fail before any output when the template does not decode.
		if _, err := imagepkg.OpenBackground(bgPath); err != nil {
			return res, fmt.Errorf("%w: %v", ErrBackgroundNotFound, err)
		}
		res.Background = bgPath
		log.Infof("using background: %s", bgPath)
	}

	var face font.Face
	if cfg.Mode.DrawsText() {
		f, err := imagepkg.LoadFace(cfg.Layout.FontPath, cfg.Layout.FontSize)
		if err != nil {
			return res, err
		}
		defer f.Close()
		face = f
	}

	fp, err := os.Open(cfg.Input)
	if err != nil {
		return res, fmt.Errorf("%w: %v", roster.ErrMalformedInput, err)
	}
	defer fp.Close()
	rd, err := roster.NewReader(fp, cfg.Columns)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", cfg.Input, err)
	}

	res.OutputDir = cfg.Output
	if res.OutputDir == "" {
		res.OutputDir = filepath.Join(cfg.OutputRoot, res.Group)
	}
	if err := util.EnsureDir(res.OutputDir); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	log.Infof("creating cards in directory: %s", res.OutputDir)

	for {
		row, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", cfg.Input, err)
		}
		if row.Outcome == roster.Skipped {
			log.Debugf("skipping line %d: %s", row.Line, row.Reason)
			res.Skipped++
			continue
		}

		rec := row.Record
		p := payload.ForRecord(rec, res.Group, cfg.Mode)
		out := filepath.Join(res.OutputDir, payload.Filename(p))
		if err := writeCard(cfg, res.Background, p, rec, face, out); err != nil {
			return res, &CompositionError{Line: row.Line, Name: rec.FullName, Path: out, Err: err}
		}
		log.Infof("generated card with QR for: %s", rec.FullName)
		res.Generated++
		res.Files = append(res.Files, out)
	}
	return res, nil
}

func backgroundFor(cfg Config, group string) (string, error) {
	if cfg.Background == "" {
		return ResolveBackground(cfg.BackgroundDir, group)
	}
	if !util.Exists(cfg.Background) {
		return "", fmt.Errorf("%w: %s", ErrBackgroundNotFound, cfg.Background)
	}
	return cfg.Background, nil
}

// writeCard renders one card. The background is reopened for every card.
func writeCard(cfg Config, bgPath, p string, rec roster.Record, face font.Face, out string) error {
	var img image.Image
	if cfg.Mode.NeedsBackground() {
		bg, err := imagepkg.OpenBackground(bgPath)
		if err != nil {
			return err
		}
		card, err := imagepkg.Compose(bg, p, rec, cfg.Layout, face)
		if err != nil {
			return err
		}
		img = card
	} else {
		qr, err := imagepkg.GenerateQRImage(p, imagepkg.PlainQRLayout(cfg.Layout))
		if err != nil {
			return err
		}
		img = qr
	}
	if err := imaging.Save(img, out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	return nil
}
