package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Azhovan/fieldcheck"
	"github.com/Azhovan/fieldcheck/constraints"
	"github.com/Azhovan/fieldcheck/rulefile"
	"github.com/Azhovan/fieldcheck/sourceenv"
	"github.com/Azhovan/fieldcheck/sourcefile"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	rules       string
	data        []string
	envPrefix   string
	format      string
	withValues  bool
	withSources bool
	redact      []string
}

func newValidateCommand(global *globalOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a record against a rule file",
		Example: `  fieldcheck validate --rules rules.yaml --data signup.json
  fieldcheck validate --rules rules.toml --env-prefix SIGNUP_ --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), global.logFormat, global.verbose)
			if err != nil {
				return err
			}
			return runValidate(cmd, opts, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.rules, "rules", "r", "", "Rule file (yaml, json or toml)")
	flags.StringSliceVarP(&opts.data, "data", "d", nil, "Data file(s), merged in order")
	flags.StringVar(&opts.envPrefix, "env-prefix", "", "Also read environment variables with this prefix")
	flags.StringVarP(&opts.format, "format", "f", "text", "Report format (text or json)")
	flags.BoolVar(&opts.withValues, "values", false, "Include offending values in the report")
	flags.BoolVar(&opts.withSources, "sources", false, "Include the source of each failing field")
	flags.StringSliceVar(&opts.redact, "redact", nil, "Fields whose values are never printed")
	cmd.MarkFlagRequired("rules")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions, logger *slog.Logger) error {
	reportOpts, err := opts.reportOptions()
	if err != nil {
		return err
	}

	def, err := rulefile.Load(opts.rules, rulefile.Options{})
	if err != nil {
		return err
	}

	v, err := def.Build(func(data *fieldcheck.Record) *fieldcheck.Validator {
		return fieldcheck.New(data,
			fieldcheck.WithLogger(logger),
			fieldcheck.WithProvider(constraints.Provider()),
			fieldcheck.WithMessages(constraints.Messages()),
		)
	}, nil)
	if err != nil {
		return fmt.Errorf("build validator: %w", err)
	}
	logger.Debug("rules loaded",
		slog.String("file", opts.rules),
		slog.Int("fields", len(v.Fields())))

	sources := make([]fieldcheck.Source, 0, len(opts.data)+1)
	for _, path := range opts.data {
		sources = append(sources, sourcefile.New(path, sourcefile.Options{Required: true}))
	}
	if opts.envPrefix != "" {
		sources = append(sources, sourceenv.New(sourceenv.Options{Prefix: opts.envPrefix}))
	}
	if len(sources) == 0 {
		return errors.New("no data source: use --data or --env-prefix")
	}

	record, err := fieldcheck.LoadRecord(cmd.Context(), sources...)
	if err != nil {
		return err
	}
	if record.IsEmpty() {
		return errors.New("no data to validate")
	}
	logger.Debug("record loaded", slog.Int("fields", record.Len()))

	ok, err := v.Validate(record)
	if err != nil {
		return err
	}

	if err := fieldcheck.WriteReport(cmd.OutOrStdout(), v, reportOpts...); err != nil {
		return err
	}

	if !ok {
		logger.Info("validation failed", slog.Int("errors", len(v.Errors())))
		return ErrInvalid
	}
	return nil
}

func (o *validateOptions) reportOptions() ([]fieldcheck.ReportOption, error) {
	var out []fieldcheck.ReportOption

	switch o.format {
	case "text":
	case "json":
		out = append(out, fieldcheck.AsJSON())
	default:
		return nil, fmt.Errorf("invalid report format %q: must be text or json", o.format)
	}

	if o.withValues {
		out = append(out, fieldcheck.WithValues())
	}
	if o.withSources {
		out = append(out, fieldcheck.WithSources())
	}
	if len(o.redact) > 0 {
		out = append(out, fieldcheck.Redact(o.redact...))
	}
	return out, nil
}
