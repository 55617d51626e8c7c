package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjaus/recfmt"
	"github.com/bjaus/recfmt/internal/logging"
)

// envPrefix namespaces environment overrides, e.g. RECFMT_LOG_LEVEL.
const envPrefix = "RECFMT"

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Execute runs the recfmt command with args. Output goes to stdout, logs to
// stderr. The returned error is either an *ExitError or a conversion error
// whose message should be shown to the user as is.
func Execute(args []string, stdout, stderr io.Writer) error {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	conv   *recfmt.Converter
}

// NewCommand builds the root command and its subcommands.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:               "recfmt",
		Short:             "Convert record files between CSV, JSON, YAML and XML",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              usageArgs(cobra.NoArgs),
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.String("log-level", "warn", "Logging level: debug, info, warn, error.")
	flags.String("log-format", "text", "Log output format: text or json.")
	flags.String("formats", joinFormats(recfmt.Formats()), "Comma-separated formats to enable, e.g. csv,json.")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("cli: bind flags: %v", err))
	}

	root.AddCommand(a.convertCommand(), a.showCommand(), a.formatsCommand())
	return root
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	logger, err := logging.New(a.stderr, a.v.GetString("log-level"), a.v.GetString("log-format"))
	if err != nil {
		return usageError(err)
	}
	formats, err := parseFormats(a.v.GetString("formats"))
	if err != nil {
		return usageError(err)
	}
	a.logger = logger
	a.conv = recfmt.NewConverter(recfmt.WithFormats(formats...), recfmt.WithLogger(logger))
	logger.Debug("cli configured", "formats", joinFormats(formats))
	return nil
}

func (a *app) convertCommand() *cobra.Command {
	var to, output string
	cmd := &cobra.Command{
		Use:   "convert SOURCE",
		Short: "Convert SOURCE to another format",
		Long: `Convert reads SOURCE, whose format is taken from its extension, and
writes its records in the target format. Without --output the destination
is SOURCE with its extension replaced by the target's.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			src := args[0]
			target, err := recfmt.ParseFormat(to)
			if err != nil {
				// Let the converter report it as an unsupported conversion
				// from the source format.
				target = recfmt.Format(strings.ToLower(to))
			}
			dst := output
			if dst == "" {
				dst = defaultOutput(src, target)
			}
			if err := a.conv.Convert(src, target, dst); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "converted %s -> %s\n", src, dst)
			return err
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", string(recfmt.JSON), "Target format: csv, json, yaml, xml.")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path.")
	return cmd
}

func (a *app) showCommand() *cobra.Command {
	var styleName string
	cmd := &cobra.Command{
		Use:   "show SOURCE",
		Short: "Print the records of SOURCE as a table",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			style, err := recfmt.ParseStyle(styleName)
			if err != nil {
				return usageError(err)
			}
			src, err := a.conv.Open(args[0])
			if err != nil {
				return err
			}
			rs, err := src.Read()
			if err != nil {
				return err
			}
			a.logger.Debug("records read", "src", src.Path(), "format", src.Format(), "count", len(rs))
			if len(rs) == 0 {
				_, err := fmt.Fprintln(a.stdout, "no records")
				return err
			}
			return recfmt.Render(a.stdout, rs, style)
		},
	}
	cmd.Flags().StringVarP(&styleName, "style", "s", string(recfmt.StyleTable), "Layout: table, ascii, plain, markdown, html, list.")
	return cmd
}

func (a *app) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the enabled formats and their file extensions",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			var rs recfmt.RecordSet
			for _, f := range a.conv.Formats() {
				exts := f.Ext()
				if f == recfmt.YAML {
					exts += " .yml"
				}
				rs = append(rs, recfmt.Record{
					{Key: "FORMAT", Value: f.String()},
					{Key: "EXTENSIONS", Value: exts},
				})
			}
			return recfmt.Render(a.stdout, rs, recfmt.StylePlain)
		},
	}
}

// usageArgs reports argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func parseFormats(s string) ([]recfmt.Format, error) {
	var formats []recfmt.Format
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := recfmt.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: no formats enabled", recfmt.ErrUnsupportedFormat)
	}
	return formats, nil
}

func joinFormats(formats []recfmt.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}

func defaultOutput(src string, target recfmt.Format) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + target.Ext()
}
