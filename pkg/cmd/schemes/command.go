package schemes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/transcode/pkg/app"
	"github.com/birdayz/transcode/pkg/transform"
)

// NewCommand returns the "transcode schemes" command.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schemes",
		Aliases: []string{"ls"},
		Short:   "List supported schemes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "ID\tLABEL\t\n")
			}

			for _, s := range transform.ListSchemes() {
				fmt.Fprintf(w, "%v\t%v\t\n", s.ID, s.Label)
			}

			return w.Flush()
		},
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}
