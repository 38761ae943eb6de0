package main

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/caption"
)

var errNoImage = errors.New("no image uploaded")

// Read the caption form, decode the upload and render it. Uploads are
// rendered in memory and dropped with the request.
func renderFromRequest(c *gin.Context) (*caption.Compositor, RenderStat, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes())

	raw := caption.RawSettings{
		BandHeight:  c.PostForm("band_height"),
		FontSize:    c.PostForm("font_size"),
		FontColor:   c.PostForm("font_color"),
		StrokeColor: c.PostForm("stroke_color"),
	}
	text := c.PostForm("text")
	settings := raw.Resolve()

	comp := caption.New(
		caption.WithMaxWidth(cfg.Caption.MaxWidth),
		caption.WithMaxPixels(cfg.Caption.MaxPixels()),
	)
	stat := RenderStat{
		LineCount:  len(caption.SplitLines(text)),
		BandHeight: settings.BandHeight,
		FontSize:   settings.FontSize,
	}

	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// Nothing to draw on; Render clears the surface.
		comp.Render(settings, text)
		return comp, stat, errNoImage
	case err != nil:
		return nil, stat, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, stat, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	stat.SourceFormat, err = comp.Decode(f)
	if err != nil {
		return nil, stat, err
	}
	comp.Render(settings, text)

	stat.Width = comp.Surface().Width()
	stat.Height = comp.Surface().Height()
	return comp, stat, nil
}

func uploadErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, caption.ErrImageTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func setupCaptionRoutes(r *gin.Engine) {
	r.GET("/caption", func(c *gin.Context) {
		c.HTML(http.StatusOK, "caption.html", gin.H{
			"title":      "Caption Studio",
			"defaults":   cfg.Caption.Defaults,
			"debounceMS": cfg.Caption.DebounceMS,
			"minBand":    caption.MinBandHeight,
			"maxBand":    caption.MaxBandHeight,
			"minFont":    caption.MinFontSize,
			"maxFont":    caption.MaxFontSize,
			"filename":   caption.ExportFilename,
		})
	})

	// HTMX preview fragment
	r.POST("/caption/preview", func(c *gin.Context) {
		comp, stat, err := renderFromRequest(c)
		if errors.Is(err, errNoImage) {
			c.HTML(http.StatusOK, "caption-preview.html", gin.H{})
			return
		}
		if err != nil {
			log.Warn("Caption preview rejected", "err", err)
			msg := "That file could not be read as an image."
			if errors.Is(err, caption.ErrImageTooLarge) {
				msg = "That image is too large to caption."
			}
			c.HTML(uploadErrorStatus(err), "caption-error.html", gin.H{
				"error": msg,
			})
			return
		}
		defer comp.Close()

		url, err := comp.DataURL()
		if err != nil {
			// zero-area image; show the empty state
			c.HTML(http.StatusOK, "caption-preview.html", gin.H{})
			return
		}
		recordRender(stat)

		c.HTML(http.StatusOK, "caption-preview.html", gin.H{
			"dataURL": template.URL(url),
			"width":   stat.Width,
			"height":  stat.Height,
			"lines":   stat.LineCount,
		})
	})

	r.POST("/caption/download", func(c *gin.Context) {
		comp, stat, err := renderFromRequest(c)
		if errors.Is(err, errNoImage) {
			c.Status(http.StatusNoContent)
			return
		}
		if err != nil {
			log.Warn("Caption download rejected", "err", err)
			c.String(uploadErrorStatus(err), "could not read image")
			return
		}
		defer comp.Close()

		data, err := comp.PNG()
		if errors.Is(err, caption.ErrEmptySurface) {
			c.Status(http.StatusNoContent)
			return
		}
		if err != nil {
			log.Error("Error exporting caption render", "err", err)
			c.String(http.StatusInternalServerError, "export failed")
			return
		}

		stat.Downloaded = true
		recordRender(stat)

		c.Header("Content-Disposition", "attachment; filename="+caption.ExportFilename)
		c.Data(http.StatusOK, "image/png", data)
	})
}
