package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"resolvis/pkg/cache"
	apperrors "resolvis/pkg/errors"
	pkgio "resolvis/pkg/io"
	"resolvis/pkg/observability"
	"resolvis/pkg/render"
	"resolvis/pkg/trace"
)

// validFormats is the set of supported render output formats.
var validFormats = map[string]bool{
	"dot":  true,
	"svg":  true,
	"json": true,
}

// renderCommand creates the render command, which produces DOT, SVG, or
// JSON artifacts from a reconstructed log.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		detailed   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render <log-file>",
		Short: "Render the reconstructed search trees as DOT, SVG, or JSON",
		Long: `Render the reconstructed search trees as DOT, SVG, or JSON.

The search states become graph nodes; successors the log never shows
being processed are drawn as dashed leaves, and forced links are drawn
bold. SVG output is cached by log content, so re-rendering an unchanged
log is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, c.Config.Render.Format)
			for _, f := range formats {
				if !validFormats[f] {
					return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, json)", f)
				}
			}
			if err := apperrors.ValidateLogName(args[0]); err != nil {
				return err
			}
			if output != "" {
				if err := apperrors.ValidateOutputPath(output); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], formats, output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include step metadata in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, formats []string, output string, detailed, noCache bool) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	track := newProgress(logger)
	lf, err := trace.Load(trace.NewBytesSource(data), path, loadProgress(ctx, logger, path))
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	track.done(fmt.Sprintf("Reconstructed %d steps in %d runs", lf.Steps(), len(lf.Runs())))

	g, err := render.ToDAG(lf.Runs())
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("export graph: %w", err)
	}

	store := c.newCache(noCache)
	defer store.Close()

	logHash := cache.Hash(data)
	ttl := time.Duration(c.Config.Cache.TTLDays) * 24 * time.Hour
	opts := render.Options{Detailed: detailed}

	for _, format := range formats {
		var artifact []byte
		switch format {
		case "dot":
			artifact = []byte(render.ToDOT(g, opts))
		case "json":
			var buf bytes.Buffer
			if err := pkgio.WriteJSON(lf, &buf); err != nil {
				return err
			}
			artifact = buf.Bytes()
		case "svg":
			key := cache.ArtifactKey(logHash, format, detailed)
			if cached, ok, _ := store.Get(ctx, key); ok {
				observability.Cache().OnCacheHit("artifact")
				logger.Debugf("SVG artifact served from cache")
				artifact = cached
				break
			}
			observability.Cache().OnCacheMiss("artifact")
			artifact, err = render.RenderSVG(render.ToDOT(g, opts))
			if err != nil {
				return fmt.Errorf("render svg: %w", err)
			}
			if err := store.Set(ctx, key, artifact, ttl); err == nil {
				observability.Cache().OnCacheSet("artifact", len(artifact))
			}
		}

		dest := outputPath(path, output, format, len(formats) > 1)
		if err := os.WriteFile(dest, artifact, 0644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		printSuccess("Wrote %s (%d bytes)", dest, len(artifact))
	}

	return nil
}

// parseFormats parses a comma-separated format string, falling back to
// the configured default.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = "svg"
		}
		return []string{fallback}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// outputPath picks the destination for one artifact. An explicit output
// is used verbatim for a single format and as a base path for several;
// otherwise the input name gets the format extension.
func outputPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, ".log")
	}
	return base + "." + format
}
