package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/birdayz/transcode/pkg/codec"
	"github.com/birdayz/transcode/pkg/config"
	"github.com/birdayz/transcode/pkg/transform"
)

const defaultLogLevel = "warn"

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Config state
	Cfg             config.Config
	CurrentProfile  *config.Profile
	CfgFile         string
	ProfileOverride string
	LogLevelFlag    string

	// Output
	Output       OutputFormat
	Formatter    *prettyjson.Formatter
	NoHeaderFlag bool

	Logger     *zap.Logger
	Dispatcher *transform.Dispatcher

	// Root command reference (for completion generation)
	Root *cobra.Command
}

// New creates an App with sane defaults.
func New() *App {
	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		Formatter:    prettyjson.NewFormatter(),
		Logger:       zap.NewNop(),
		Dispatcher:   transform.NewDispatcher(nil),
	}
}

// InitConfig reads the config file and resolves the active profile.
// Called by PersistentPreRunE on the root command.
func (a *App) InitConfig() error {
	var err error
	a.Cfg, err = config.ReadConfig(a.CfgFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.Cfg.ProfileOverride = a.ProfileOverride

	if a.ProfileOverride != "" && !a.Cfg.HasProfile(a.ProfileOverride) {
		return fmt.Errorf("profile %q not found in %s", a.ProfileOverride, a.Cfg.Path())
	}

	profile := a.Cfg.ActiveProfile()
	if profile != nil {
		a.CurrentProfile = profile
	} else {
		a.CurrentProfile = &config.Profile{}
	}

	if a.LogLevelFlag != "" {
		a.CurrentProfile.LogLevel = a.LogLevelFlag
	}
	if a.CurrentProfile.LogLevel == "" {
		a.CurrentProfile.LogLevel = defaultLogLevel
	}

	a.Logger, err = NewLogger(a.ErrWriter, a.CurrentProfile.LogLevel)
	if err != nil {
		return err
	}

	c, err := a.NewCodec()
	if err != nil {
		return err
	}
	a.Dispatcher = transform.NewDispatcher(c)

	a.Logger.Debug("config loaded",
		zap.String("path", a.Cfg.Path()),
		zap.String("profile", a.CurrentProfile.Name),
	)
	return nil
}

// NewCodec builds a codec from the current profile.
func (a *App) NewCodec() (*codec.Codec, error) {
	var opts []codec.Option
	if p := a.CurrentProfile; p != nil {
		if p.GzipLevel != nil {
			opts = append(opts, codec.WithGzipLevel(*p.GzipLevel))
		}
		if p.MaxDecompressedSize > 0 {
			opts = append(opts, codec.WithMaxDecompressedSize(p.MaxDecompressedSize))
		}
	}
	c, err := codec.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %q: %w", a.CurrentProfile.Name, err)
	}
	return c, nil
}

// ResolveOutput returns the output format selected by flag, falling back to
// the profile and then to the default format.
func (a *App) ResolveOutput(cmd *cobra.Command) (OutputFormat, error) {
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		return a.Output, nil
	}
	if a.CurrentProfile != nil && a.CurrentProfile.Output != "" {
		var out OutputFormat
		if err := out.Set(a.CurrentProfile.Output); err != nil {
			return "", fmt.Errorf("profile %q: output %w", a.CurrentProfile.Name, err)
		}
		return out, nil
	}
	if a.Output == "" {
		return OutputFormatDefault, nil
	}
	return a.Output, nil
}

// AddOutputFlag installs --output on cmd.
func (a *App) AddOutputFlag(cmd *cobra.Command) {
	a.Output = OutputFormatDefault
	cmd.Flags().VarP(&a.Output, "output", "o", "Set output format: "+strings.Join(outputFormats, ", "))
	if err := cmd.RegisterFlagCompletionFunc("output", CompleteOutputFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
}

// AddNoHeadersFlag installs --no-headers on cmd.
func (a *App) AddNoHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.NoHeaderFlag, "no-headers", false, "Hide table headers")
}

// ValidSchemeArgs completes the scheme argument of encode and decode. Nothing
// is offered once the scheme has been chosen.
func (a *App) ValidSchemeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, s := range transform.ListSchemes() {
		if strings.HasPrefix(s.ID, strings.ToLower(toComplete)) {
			out = append(out, s.ID+"\t"+s.Label)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// ValidProfileArgs provides shell completion for profile names.
func (a *App) ValidProfileArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(a.Cfg.Profiles))
	for _, p := range a.Cfg.Profiles {
		names = append(names, p.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

const (
	TabwriterMinWidth = 6
	TabwriterWidth    = 4
	TabwriterPadding  = 3
	TabwriterPadChar  = ' '
	TabwriterFlags    = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}
