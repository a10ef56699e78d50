package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strut/pkg/scene"
)

// solveCommand creates the solve command for resolving scene files.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output   string
		asJSON   bool
		showPass bool
	)

	cmd := &cobra.Command{
		Use:   "solve <scene.toml|scene.json>",
		Short: "Resolve a scene file and print the item frames",
		Long: `Resolve a scene file and print the item frames.

The scene declares the container bounds, the items with their initial frames,
and the constraints between attributes. Solve runs one layout pass and prints
the resolved frame of every item.

By default frames are printed as a table; --json switches to the JSON format
served by the HTTP API.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(args[0], output, asJSON, showPass)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON frames to file instead of stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print frames as JSON")
	cmd.Flags().BoolVar(&showPass, "stats", false, "print pass statistics")

	return cmd
}

func (c *CLI) runSolve(input, output string, asJSON, showPass bool) error {
	doc, err := scene.Load(input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	a, err := doc.Assemble()
	if err != nil {
		return err
	}
	if err := a.Solve(); err != nil {
		printError("Layout failed")
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d frames", len(a.Boxes())))

	if output != "" {
		data, err := a.MarshalFrames()
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Solved %s", input)
		printFile(output)
		return nil
	}

	if asJSON {
		data, err := a.MarshalFrames()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printFrameTable(a)
	if showPass {
		printDetail("constraints: %d · rebuilds: %d", len(a.Container.Constraints()), a.Container.Rebuilds())
	}
	return nil
}

// printFrameTable renders the resolved frames as a titled, bordered table.
func printFrameTable(a *scene.Assembly) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	fmt.Println(StyleTitle.Render("Resolved frames"))

	rows := [][]string{}
	for _, fr := range a.Frames() {
		rows = append(rows, []string{
			fr.ID,
			fmt.Sprintf("%g", fr.X),
			fmt.Sprintf("%g", fr.Y),
			fmt.Sprintf("%g", fr.Width),
			fmt.Sprintf("%g", fr.Height),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Item", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleNumber
		})

	fmt.Println(t)
}
