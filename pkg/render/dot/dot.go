package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/strut/pkg/geom"
	"github.com/matzehuels/strut/pkg/layout"
)

// Options configures constraint graph rendering.
type Options struct {
	// Detailed labels edges with their scale and offset. When false,
	// edges are drawn bare.
	Detailed bool
}

// ToDOT converts a container's constraint set to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Container-owned slots are drawn with a grey fill to distinguish the
// fixed inputs from the attributes the engine derives.
func ToDOT(c *layout.Container, opts Options) string {
	names := itemNames(c)

	var buf bytes.Buffer
	buf.WriteString("digraph constraints {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	seen := make(map[string]bool)
	for _, cn := range c.Constraints() {
		for _, slot := range []string{slotName(cn.Source(), cn.SourceAttr(), names), slotName(cn.Target(), cn.TargetAttr(), names)} {
			if seen[slot] {
				continue
			}
			seen[slot] = true
			attrs := []string{fmt.Sprintf("label=%q", slot)}
			if strings.HasPrefix(slot, "container.") {
				attrs = append(attrs, "fillcolor=lightgrey")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", slot, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for _, cn := range c.Constraints() {
		from := slotName(cn.Source(), cn.SourceAttr(), names)
		to := slotName(cn.Target(), cn.TargetAttr(), names)
		if label := edgeLabel(cn, opts.Detailed); label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", from, to, label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeLabel(cn *layout.Constraint, detailed bool) string {
	if !detailed {
		return ""
	}
	var parts []string
	if cn.Scale() != 1 {
		parts = append(parts, fmt.Sprintf("×%g", cn.Scale()))
	}
	if cn.Offset() != 0 {
		parts = append(parts, fmt.Sprintf("%+g", cn.Offset()))
	}
	return strings.Join(parts, " ")
}

// itemNames maps each managed item to a stable display name, preferring
// the item's own identifier when it has one.
func itemNames(c *layout.Container) map[layout.Item]string {
	names := make(map[layout.Item]string)
	for i, it := range c.Items() {
		if id, ok := it.(layout.Identifier); ok && id.LayoutID() != "" {
			names[it] = id.LayoutID()
			continue
		}
		names[it] = fmt.Sprintf("item%d", i)
	}
	return names
}

func slotName(it layout.Item, attr geom.Attribute, names map[layout.Item]string) string {
	if it == nil {
		return "container." + attr.String()
	}
	name, ok := names[it]
	if !ok {
		name = "unknown"
	}
	return name + "." + attr.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the viewBox starts at the
// origin and the pixel size matches it. Graphviz emits pt units and a
// translated viewBox, which confuses some embedders.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
