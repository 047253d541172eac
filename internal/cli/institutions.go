package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/degreefacts/internal/extract/adapters"
	"github.com/spf13/cobra"
)

var institutionsCmd = &cobra.Command{
	Use:   "institutions",
	Short: "List supported institutions and their output columns",
	Run: func(cmd *cobra.Command, args []string) {
		registry := adapters.NewRegistry()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tFIELDS\tCOLUMNS")
		for _, name := range registry.Names() {
			adapter, err := registry.Get(name)
			if err != nil {
				continue
			}
			schema := adapter.Schema()
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", name, schema.Arity(), strings.Join(schema.Header(), ","))
		}
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(institutionsCmd)
}
