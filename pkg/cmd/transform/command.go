package transform

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/birdayz/transcode/pkg/app"
	"github.com/birdayz/transcode/pkg/codec"
	pkgtransform "github.com/birdayz/transcode/pkg/transform"
)

// NewEncodeCommand returns the "transcode encode" command.
func NewEncodeCommand(a *app.App) *cobra.Command {
	cmd := newCommand(a, pkgtransform.Encode)
	cmd.Short = "Encode text with the given scheme"
	cmd.Example = `  transcode encode base64 hello
  transcode encode url 'a b?c=d'
  transcode encode gzip -o raw "$(cat notes.txt)"
  transcode encode hex --template '{{ "abc" | upper }}'`
	return cmd
}

// NewDecodeCommand returns the "transcode decode" command.
func NewDecodeCommand(a *app.App) *cobra.Command {
	cmd := newCommand(a, pkgtransform.Decode)
	cmd.Short = "Decode text with the given scheme"
	cmd.Example = `  transcode decode base64 aGVsbG8=
  transcode decode hex 4142
  transcode decode url 'a%20b'`
	return cmd
}

func newCommand(a *app.App, c pkgtransform.Command) *cobra.Command {
	var templateFlag bool

	cmd := &cobra.Command{
		Use:               c.String() + " SCHEME TEXT...",
		Long:              fmt.Sprintf("Runs %s for one of the schemes %s. All arguments after the scheme are joined with single spaces.", c, codec.IDs()),
		ValidArgsFunction: a.ValidSchemeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFmt, err := a.ResolveOutput(cmd)
			if err != nil {
				return err
			}

			req, err := pkgtransform.ParseRequest(args)
			if err != nil {
				return err
			}

			if templateFlag {
				req.Payload, err = app.ExecuteTemplate(req.Payload, nil)
				if err != nil {
					return err
				}
			}

			a.Logger.Debug("dispatching request",
				zap.Stringer("command", c),
				zap.Stringer("scheme", req.Scheme),
				zap.Int("payload_bytes", len(req.Payload)),
			)

			res, err := a.Dispatcher.Do(c, req)
			if err != nil {
				a.Logger.Debug("request failed", zap.Error(err))
				return err
			}

			return a.WriteResult(res, outputFmt)
		},
	}

	a.AddOutputFlag(cmd)
	cmd.Flags().BoolVar(&templateFlag, "template", false, "run the text through the go template engine before transforming it")

	return cmd
}
