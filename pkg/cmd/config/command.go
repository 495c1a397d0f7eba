package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/birdayz/transcode/pkg/app"
	"github.com/birdayz/transcode/pkg/codec"
	"github.com/birdayz/transcode/pkg/config"
)

// NewCommand returns the "transcode config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Handle transcode configuration",
	}

	cmd.AddCommand(
		newCurrentProfileCommand(a),
		newUseProfileCommand(a),
		newGetProfilesCommand(a),
		newAddProfileCommand(a),
		newRemoveProfileCommand(a),
		newSelectProfileCommand(a),
		newImportCommand(a),
	)

	return cmd
}

func newCurrentProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "current-profile",
		Short: "Displays the current profile",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.OutWriter, a.Cfg.CurrentProfile)
		},
	}
}

func newUseProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "use-profile [NAME]",
		Short:             "Sets the current profile in the configuration",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidProfileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.Cfg.SetCurrentProfile(name); err != nil {
				return fmt.Errorf("profile with name %v not found", name)
			}
			fmt.Fprintf(a.OutWriter, "Switched to profile \"%v\".\n", name)
			return nil
		},
	}
}

func newGetProfilesCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-profiles",
		Short: "Display profiles in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "  NAME\tOUTPUT\tGZIP-LEVEL\tMAX-DECOMPRESSED\t\n")
			}
			for _, p := range a.Cfg.Profiles {
				marker := "  "
				if p.Name == a.Cfg.CurrentProfile {
					marker = "* "
				}
				level := "default"
				if p.GzipLevel != nil {
					level = fmt.Sprint(*p.GzipLevel)
				}
				limit := "default"
				if p.MaxDecompressedSize > 0 {
					limit = fmt.Sprint(p.MaxDecompressedSize)
				}
				output := p.Output
				if output == "" {
					output = string(app.OutputFormatDefault)
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t\n", marker, p.Name, output, level, limit)
			}
			return w.Flush()
		},
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func newAddProfileCommand(a *app.App) *cobra.Command {
	var (
		output    = app.OutputFormatDefault
		gzipLevel int
		maxSize   int64
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:     "add-profile [NAME]",
		Example: "transcode config add-profile scripts --output raw --gzip-level 9",
		Short:   "Add profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if a.Cfg.HasProfile(name) {
				return fmt.Errorf("could not add profile: profile with name '%v' exists already", name)
			}

			p := &config.Profile{Name: name, LogLevel: logLevel}
			if cmd.Flags().Changed("output") {
				p.Output = output.String()
			}
			if cmd.Flags().Changed("gzip-level") {
				if _, err := codec.New(codec.WithGzipLevel(gzipLevel)); err != nil {
					return err
				}
				p.GzipLevel = &gzipLevel
			}
			if maxSize < 0 {
				return fmt.Errorf("--max-decompressed-size must not be negative")
			}
			p.MaxDecompressedSize = maxSize
			if logLevel != "" {
				if _, err := app.NewLogger(a.ErrWriter, logLevel); err != nil {
					return err
				}
			}

			a.Cfg.Profiles = append(a.Cfg.Profiles, p)
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Added profile.")
			return nil
		},
	}

	cmd.Flags().VarP(&output, "output", "o", "Default output format for this profile")
	cmd.Flags().IntVar(&gzipLevel, "gzip-level", codec.DefaultGzipLevel, "gzip compression level (-3..9, -1 is the library default)")
	cmd.Flags().Int64Var(&maxSize, "max-decompressed-size", 0, "maximum gzip decode output in bytes (0 uses the built-in limit)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level for this profile")
	if err := cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
	return cmd
}

func newRemoveProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "remove-profile [NAME]",
		Short:             "remove profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidProfileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.Cfg.RemoveProfile(name); err != nil {
				return err
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintf(a.OutWriter, "Removed profile %q.\n", name)
			return nil
		},
	}
}

func newSelectProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-profile",
		Short: "Interactively select a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.Cfg.Profiles) == 0 {
				return fmt.Errorf("no profiles configured, add one with \"transcode config add-profile\"")
			}

			var profileNames []string
			pos := 0
			for k, p := range a.Cfg.Profiles {
				profileNames = append(profileNames, p.Name)
				if p.Name == a.Cfg.CurrentProfile {
					pos = k
				}
			}

			searcher := func(input string, index int) bool {
				profile := profileNames[index]
				name := strings.ReplaceAll(strings.ToLower(profile), " ", "")
				input = strings.ReplaceAll(strings.ToLower(input), " ", "")
				return strings.Contains(name, input)
			}

			p := promptui.Select{
				Label:     "Select profile",
				Items:     profileNames,
				Searcher:  searcher,
				Size:      10,
				CursorPos: pos,
			}

			_, selected, err := p.Run()
			if err != nil {
				// User cancelled (e.g. Ctrl-C). Not an error.
				return nil
			}

			if err := a.Cfg.SetCurrentProfile(selected); err != nil {
				return fmt.Errorf("profile with name %v not found", selected)
			}
			fmt.Fprintf(a.OutWriter, "Switched to profile \"%v\".\n", selected)
			return nil
		},
	}
}

func newImportCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a profile from a .properties file into the $HOME/.transcode/config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.ImportProperties(args[0])
			if err != nil {
				return fmt.Errorf("failed to import %v: %w", args[0], err)
			}
			if p.GzipLevel != nil {
				if _, err := codec.New(codec.WithGzipLevel(*p.GzipLevel)); err != nil {
					return err
				}
			}
			if p.Output != "" {
				var out app.OutputFormat
				if err := out.Set(p.Output); err != nil {
					return fmt.Errorf("invalid output: %w", err)
				}
			}
			if p.LogLevel != "" {
				if _, err := app.NewLogger(a.ErrWriter, p.LogLevel); err != nil {
					return err
				}
			}

			if a.Cfg.UpsertProfile(p) {
				fmt.Fprintf(a.OutWriter, "Replaced profile %q\n", p.Name)
			} else {
				fmt.Fprintf(a.OutWriter, "Wrote new profile %q to config file\n", p.Name)
			}

			if a.Cfg.CurrentProfile == "" {
				a.Cfg.CurrentProfile = p.Name
			}
			if err = a.Cfg.Write(); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			return nil
		},
	}
}
