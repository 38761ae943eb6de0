package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/caption"
)

var (
	text     string
	textFile string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render captions once and write the PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		captionText := text
		if textFile != "" {
			data, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("read caption text: %w", err)
			}
			captionText = string(data)
		}

		f, err := os.Open(imagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		c := newCompositor()
		defer c.Close()
		format, err := c.Decode(f)
		if err != nil {
			logger.Error("Could not load image", "path", imagePath, "err", err)
			return err
		}

		settings := raw.Resolve()
		c.Render(settings, captionText)

		if err := writeExport(c, outputPath); err != nil {
			if errors.Is(err, caption.ErrEmptySurface) {
				logger.Warn("Nothing to export, image has no area", "path", imagePath)
				return nil
			}
			logger.Error("Could not write output", "path", outputPath, "err", err)
			return err
		}

		logger.Info("Saved",
			"output", outputPath,
			"format", format,
			"width", c.Surface().Width(),
			"height", c.Surface().Height(),
			"lines", len(caption.SplitLines(captionText)),
			"band_height", settings.BandHeight,
			"font_size", settings.FontSize,
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&text, "text", "t", "", "Caption text, one band per line")
	renderCmd.Flags().StringVarP(&textFile, "text-file", "f", "", "Read caption text from a file")
	renderCmd.MarkFlagFilename("text-file")
	renderCmd.MarkFlagsMutuallyExclusive("text", "text-file")
}
