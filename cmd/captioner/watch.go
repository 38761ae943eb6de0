package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/caption"
)

var (
	pollInterval time.Duration
	debounce     time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <caption-file>",
	Short: "Re-render whenever the caption file changes",
	Long: `Watch polls the caption file and re-renders after edits settle.
Bursts of saves are coalesced; only the last version is rendered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pollInterval <= 0 {
			return fmt.Errorf("--poll must be positive, got %s", pollInterval)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0])
	},
}

func watch(ctx context.Context, captionFile string) error {
	session := caption.NewSession(newCompositor(),
		caption.WithDebounce(debounce),
		caption.OnRender(func(c *caption.Compositor) {
			if err := writeExport(c, outputPath); err != nil {
				if !errors.Is(err, caption.ErrEmptySurface) {
					logger.Error("Could not write output", "path", outputPath, "err", err)
				}
				return
			}
			logger.Info("Rendered", "output", outputPath, "width", c.Surface().Width(), "height", c.Surface().Height())
		}),
	)
	defer session.Close()

	var lastMod time.Time
	readCaption := func() (string, bool, error) {
		fi, err := os.Stat(captionFile)
		if err != nil {
			return "", false, err
		}
		if !fi.ModTime().After(lastMod) {
			return "", false, nil
		}
		lastMod = fi.ModTime()
		data, err := os.ReadFile(captionFile)
		if err != nil {
			return "", false, err
		}
		return string(data), true, nil
	}

	// Controls and text go in before the image so the first render uses them.
	text, _, err := readCaption()
	if err != nil {
		return fmt.Errorf("read caption file: %w", err)
	}
	session.Set(raw, text)

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	err = session.LoadImage(f)
	f.Close()
	if err != nil {
		return err
	}

	logger.Info("Watching for caption changes", "file", captionFile, "debounce", debounce)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			session.Flush()
			logger.Info("Stopped watching")
			return nil
		case <-ticker.C:
			text, changed, err := readCaption()
			if err != nil {
				logger.Warn("Could not read caption file", "file", captionFile, "err", err)
				continue
			}
			if changed {
				logger.Debug("Caption file changed", "file", captionFile)
				session.Update(raw, text)
			}
		}
	}
}

func init() {
	watchCmd.Flags().DurationVar(&pollInterval, "poll", 100*time.Millisecond, "How often to check the caption file")
	watchCmd.Flags().DurationVar(&debounce, "debounce", caption.DefaultDebounce, "Quiet period before re-rendering")
}
