package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strut/pkg/cache"
	"github.com/matzehuels/strut/pkg/errors"
	"github.com/matzehuels/strut/pkg/render/dot"
	"github.com/matzehuels/strut/pkg/scene"
)

// graphCommand creates the graph command for rendering constraint graphs.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "graph <scene.toml|scene.json>",
		Short: "Render a scene's constraint graph",
		Long: `Render a scene's constraint graph.

Each constrained attribute becomes a node and each constraint an edge from
its source attribute to its target attribute. The graph is the structure the
engine orders before evaluating, so it is the first thing to inspect when a
cycle is reported.

DOT output goes to stdout unless --output is given. SVG renders are cached
locally, keyed on the scene file content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], format, output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, <input>.svg for svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label edges with scale and offset")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input, format, output string, detailed, noCache bool) error {
	switch format {
	case "dot", "svg":
	default:
		return errors.New(errors.ErrCodeInvalidScene, "unsupported format %q (want dot or svg)", format)
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "read scene %s", input)
	}

	out, cached, err := c.renderGraph(ctx, input, raw, format, detailed, noCache)
	if err != nil {
		return err
	}

	if format == "dot" && output == "" {
		fmt.Print(string(out))
		return nil
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered constraint graph")
	printFile(output)
	if cached {
		printDetail("served from cache")
	}
	return nil
}

// renderGraph produces the requested artifact, consulting the local cache
// for SVG renders.
func (c *CLI) renderGraph(ctx context.Context, input string, raw []byte, format string, detailed, noCache bool) ([]byte, bool, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	key := cache.NewDefaultKeyer().RenderKey(cache.Hash(raw), cacheVariant(format, detailed))
	if format == "svg" {
		if data, hit, err := store.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	doc, err := scene.Load(input)
	if err != nil {
		return nil, false, err
	}
	a, err := doc.Assemble()
	if err != nil {
		return nil, false, err
	}

	logger := loggerFromContext(ctx)
	out := []byte(dot.ToDOT(a.Container, dot.Options{Detailed: detailed}))
	if format == "svg" {
		prog := newProgress(logger)
		out, err = dot.RenderSVG(string(out))
		if err != nil {
			return nil, false, fmt.Errorf("render SVG: %w", err)
		}
		prog.done("Rendered SVG")
		if err := store.Set(ctx, key, out, 24*time.Hour); err != nil {
			logger.Warn("cache set failed", "err", err)
		}
	}
	return out, false, nil
}

func cacheVariant(format string, detailed bool) string {
	if detailed {
		return format + ":detailed"
	}
	return format
}
