package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lumen/fx/scene"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	inspectScene   string
	inspectVariant string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate a scene definition and list its nodes and edges.",
	Long: `Validate a scene definition and list its nodes and deduplicated edges.
Without --scene the built-in definition for --variant is inspected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		def, variant, err := scene.Load(inspectScene, inspectVariant)
		if err != nil {
			return err
		}
		g, err := scene.NewGraph(def.Nodes)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		return writeInspect(out, variant, g, isTerminal(out))
	},
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type inspectStyles struct {
	title  lipgloss.Style
	header lipgloss.Style
	id     lipgloss.Style
	subtle lipgloss.Style
}

func newInspectStyles(styled bool) inspectStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return inspectStyles{title: plain, header: plain, id: plain, subtle: plain}
	}
	return inspectStyles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#38bdf8")),
		header: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		id: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f472b6")),
		subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b")),
	}
}

func writeInspect(w io.Writer, variant string, g *scene.Graph, styled bool) error {
	st := newInspectStyles(styled)
	nodes := g.Nodes()
	edges := g.Edges()

	idWidth := len("id")
	for _, n := range nodes {
		idWidth = max(idWidth, len(n.ID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", st.title.Render(fmt.Sprintf("%s: %d nodes, %d edges", variant, len(nodes), len(edges))))
	fmt.Fprintf(&b, "%s\n", st.header.Render(fmt.Sprintf("%-*s  %-7s  %s", idWidth, "id", "color", "name")))
	for _, n := range nodes {
		fmt.Fprintf(&b, "%s  %-7s  %s", st.id.Render(fmt.Sprintf("%-*s", idWidth, n.ID)), n.Color, n.Name)
		if n.Description != "" {
			fmt.Fprintf(&b, " %s", st.subtle.Render("- "+n.Description))
		}
		b.WriteByte('\n')
	}
	if len(edges) > 0 {
		fmt.Fprintf(&b, "%s\n", st.header.Render("edges"))
		for _, e := range edges {
			fmt.Fprintf(&b, "%s -- %s\n", st.id.Render(string(e.A)), st.id.Render(string(e.B)))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectScene, "scene", "", "Scene definition YAML.")
	inspectCmd.Flags().StringVar(&inspectVariant, "variant", "", "Layout: keyboard or constellation.")
}
