package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/birdayz/transcode/pkg/app"
	"github.com/birdayz/transcode/pkg/transform"
)

type outcome struct {
	line int
	res  transform.Result
	err  error
}

// NewCommand returns the "transcode batch" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		concurrencyFlag int
		bufferSizeFlag  int
		templateFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run requests read from stdin, one per line.",
		Long: `Reads requests from stdin, one per line, in the form "<encode|decode> <scheme> <text...>".
Requests run concurrently; results are printed in input order. Failed lines are reported on stderr.`,
		Example: `  printf 'encode base64 hello\ndecode hex 4142\n' | transcode batch
  transcode batch -o json < requests.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFmt, err := a.ResolveOutput(cmd)
			if err != nil {
				return err
			}
			if concurrencyFlag < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}

			lines, err := readLines(a.InReader, bufferSizeFlag)
			if err != nil {
				return err
			}

			outcomes := make([]outcome, 0, len(lines))
			for i, line := range lines {
				if strings.TrimSpace(line) == "" {
					continue
				}
				outcomes = append(outcomes, outcome{line: i + 1})
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrencyFlag)
			for i := range outcomes {
				o := &outcomes[i]
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					o.res, o.err = run(a.Dispatcher, lines[o.line-1], o.line, templateFlag)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var failed int
			for _, o := range outcomes {
				if o.err != nil {
					failed++
					a.Logger.Debug("request failed", zap.Int("line", o.line), zap.Error(o.err))
					fmt.Fprintf(a.ErrWriter, "line %d: %v\n", o.line, o.err)
					continue
				}
				if err := a.WriteResult(o.res, outputFmt); err != nil {
					return err
				}
			}

			a.Logger.Info("batch finished", zap.Int("requests", len(outcomes)), zap.Int("failed", failed))
			if failed > 0 {
				return fmt.Errorf("%d of %d requests failed", failed, len(outcomes))
			}
			return nil
		},
	}

	a.AddOutputFlag(cmd)
	cmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "j", 8, "Number of requests processed in parallel")
	cmd.Flags().IntVarP(&bufferSizeFlag, "line-length-limit", "", 0, "line length limit")
	cmd.Flags().BoolVar(&templateFlag, "template", false, "run each text through the go template engine; {{ .line }} is the line number")

	return cmd
}

func run(d *transform.Dispatcher, line string, lineNo int, useTemplate bool) (transform.Result, error) {
	tokens := strings.Fields(line)
	c, err := transform.ParseCommand(tokens[0])
	if err != nil {
		return transform.Result{}, err
	}
	req, err := transform.ParseRequest(tokens[1:])
	if err != nil {
		return transform.Result{}, err
	}
	if useTemplate {
		req.Payload, err = app.ExecuteTemplate(req.Payload, map[string]any{"line": lineNo})
		if err != nil {
			return transform.Result{}, err
		}
	}
	return d.Do(c, req)
}

func readLines(reader io.Reader, bufferSize int) ([]string, error) {
	scanner := bufio.NewScanner(reader)
	if bufferSize > 0 {
		scanner.Buffer(make([]byte, bufferSize), bufferSize)
	}
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning input failed: %w", err)
	}
	return lines, nil
}
