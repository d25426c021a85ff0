package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrInvalid is returned when the validated record has field errors.
// The report has already been written when it is returned.
var ErrInvalid = errors.New("record is invalid")

var (
	Version   = "0.1.0"
	GitCommit = "development"
)

// globalOptions holds persistent flags shared by every subcommand.
type globalOptions struct {
	logFormat string
	verbose   bool
}

// NewRootCommand builds the fieldcheck command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "fieldcheck",
		Short: "Validate records against declarative field rules",
		Long: `fieldcheck validates flat records (YAML, JSON, TOML files and
environment variables) against rules declared in shorthand form.

Shorthand:
  rule                  e.g. required
  rule:opt1,opt2        e.g. length:5,10
  rule:opts:message     e.g. min:18:{title} must be at least {0}

Rules for one field are joined with '|'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text or json)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output (debug logs on stderr)")

	root.AddCommand(newValidateCommand(opts))
	root.AddCommand(newParseCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fieldcheck v%s\n", Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
		},
	}
}
