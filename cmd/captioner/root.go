package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/caption"
)

var (
	// flags
	logger     *log.Logger
	verbose    bool
	imagePath  string
	outputPath string
	maxWidth   int
	maxMP      int
	raw        caption.RawSettings
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "captioner",
	Short: "Stack subtitle bands onto an image and save it as PNG",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCompositor() *caption.Compositor {
	return caption.New(
		caption.WithMaxWidth(maxWidth),
		caption.WithMaxPixels(int64(maxMP)*1_000_000),
		caption.WithLogger(logger),
	)
}

func writeExport(c *caption.Compositor, path string) error {
	data, err := c.PNG()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func init() {
	// Override the default error level style.
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR!!").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	logger = log.New(os.Stderr)
	logger.SetStyles(styles)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "V", false, "Verbose output")
	pf.StringVarP(&imagePath, "image", "i", "", "Source image (png, jpeg, gif, webp, bmp, tiff)")
	pf.StringVarP(&outputPath, "output", "o", caption.ExportFilename, "Output PNG path")
	pf.IntVar(&maxWidth, "max-width", caption.DefaultMaxWidth, "Scale wider images down to this width")
	pf.IntVar(&maxMP, "max-megapixels", caption.DefaultMaxPixels/1_000_000, "Refuse images larger than this many megapixels")
	pf.StringVar(&raw.BandHeight, "band-height", "", "Band height in pixels (10-300, default 40)")
	pf.StringVar(&raw.FontSize, "font-size", "", "Font size in pixels (10-120, default 20)")
	pf.StringVar(&raw.FontColor, "font-color", "", "Text fill color, #rgb or #rrggbb (default white)")
	pf.StringVar(&raw.StrokeColor, "stroke-color", "", "Text outline color, #rgb or #rrggbb (default black)")
	rootCmd.MarkPersistentFlagRequired("image")
	rootCmd.MarkPersistentFlagFilename("image")

	rootCmd.AddCommand(renderCmd, watchCmd)
}
