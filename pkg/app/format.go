package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/birdayz/transcode/pkg/transform"
)

// OutputFormat controls how results are printed.
type OutputFormat string

const (
	OutputFormatDefault    OutputFormat = "default"
	OutputFormatRaw        OutputFormat = "raw"
	OutputFormatJSON       OutputFormat = "json"
	OutputFormatPrettyJSON OutputFormat = "pretty-json"
	OutputFormatMsgpack    OutputFormat = "msgpack"
)

var outputFormats = []string{"default", "raw", "json", "pretty-json", "msgpack"}

func (e *OutputFormat) String() string {
	return string(*e)
}

func (e *OutputFormat) Set(v string) error {
	switch v {
	case "default", "raw", "json", "pretty-json", "msgpack":
		*e = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: %s", strings.Join(outputFormats, ", "))
	}
}

func (e *OutputFormat) Type() string {
	return "OutputFormat"
}

// CompleteOutputFormat provides shell completion for --output.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return outputFormats, cobra.ShellCompDirectiveNoFileComp
}

const (
	inputPrefix  = "Input: "
	resultPrefix = "Result: "
)

// Section marks a byte range of Rendered.Text.
type Section struct {
	Start int    `json:"start" msgpack:"start"`
	End   int    `json:"end" msgpack:"end"`
	Label string `json:"label" msgpack:"label"`
}

// Rendered is the display form of a result: the text plus the section that
// highlights the result inside it.
type Rendered struct {
	Text    string
	Section Section
}

// Render lays out res as "Input: {payload}\n\nResult: {result}".
func Render(res transform.Result) Rendered {
	head := inputPrefix + res.Input + "\n\n" + resultPrefix
	text := head + res.Output
	return Rendered{
		Text: text,
		Section: Section{
			Start: len(head),
			End:   len(text),
			Label: fmt.Sprintf("%s (%s %s)", res.Output, res.Scheme, res.Command),
		},
	}
}

// ResultRecord is the wire form used by the json and msgpack outputs.
type ResultRecord struct {
	Command string  `json:"command" msgpack:"command"`
	Scheme  string  `json:"scheme" msgpack:"scheme"`
	Input   string  `json:"input" msgpack:"input"`
	Result  string  `json:"result" msgpack:"result"`
	Section Section `json:"section" msgpack:"section"`
}

// NewResultRecord converts res for serialization.
func NewResultRecord(res transform.Result) ResultRecord {
	return ResultRecord{
		Command: res.Command.String(),
		Scheme:  res.Scheme.String(),
		Input:   res.Input,
		Result:  res.Output,
		Section: Render(res).Section,
	}
}

// FormatResult renders res according to the output format.
func (a *App) FormatResult(res transform.Result, outputFmt OutputFormat) ([]byte, error) {
	switch outputFmt {
	case OutputFormatRaw:
		return []byte(res.Output + "\n"), nil
	case OutputFormatJSON:
		b, err := json.Marshal(NewResultRecord(res))
		if err != nil {
			return nil, fmt.Errorf("could not encode JSON: %w", err)
		}
		return append(b, '\n'), nil
	case OutputFormatPrettyJSON:
		b, err := a.Formatter.Marshal(NewResultRecord(res))
		if err != nil {
			return nil, fmt.Errorf("could not encode JSON: %w", err)
		}
		return append(b, '\n'), nil
	case OutputFormatMsgpack:
		b, err := msgpack.Marshal(NewResultRecord(res))
		if err != nil {
			return nil, fmt.Errorf("could not encode msgpack: %w", err)
		}
		return b, nil
	default:
		return []byte(Render(res).Text + "\n"), nil
	}
}

// WriteResult prints res. Pretty JSON goes through the colorable writer.
func (a *App) WriteResult(res transform.Result, outputFmt OutputFormat) error {
	b, err := a.FormatResult(res, outputFmt)
	if err != nil {
		return err
	}
	w := a.OutWriter
	if outputFmt == OutputFormatPrettyJSON {
		w = a.ColorableOut
	}
	_, err = w.Write(b)
	return err
}
