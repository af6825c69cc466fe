package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/collagepack/internal/model"
)

func newPapersCmd() *cobra.Command {
	var landscape bool

	cmd := &cobra.Command{
		Use:   "papers",
		Short: "List the built-in paper sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printPapers(cmd.OutOrStdout(), landscape)
			return nil
		},
	}
	cmd.Flags().BoolVar(&landscape, "landscape", false, "show landscape dimensions")
	return cmd
}

func printPapers(w io.Writer, landscape bool) {
	names := model.GetPaperSizeNames()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		p, _ := model.LookupPaperSize(name, landscape)
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%.2f", p.Width),
			fmt.Sprintf("%.2f", p.Height),
			fmt.Sprintf("%.0f x %.0f", p.Width*model.SourceDPI, p.Height*model.SourceDPI),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Paper", "Width (in)", "Height (in)", "Pixels @300dpi"}, rows, -1))
}
