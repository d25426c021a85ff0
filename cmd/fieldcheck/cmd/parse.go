package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Azhovan/fieldcheck"
	"github.com/spf13/cobra"
)

// parsedBinding is the printed form of a parsed shorthand token.
type parsedBinding struct {
	Token   string   `json:"token"`
	Rule    string   `json:"rule"`
	Options []string `json:"options"`
	Message string   `json:"message,omitempty"`
}

func newParseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <shorthand>...",
		Short: "Show how shorthand rules are parsed",
		Example: `  fieldcheck parse "required|length:5,10:Must be between {0} and {1} chars"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parsed []parsedBinding
			for _, arg := range args {
				for _, token := range fieldcheck.SplitRules(arg) {
					b := fieldcheck.ParseShorthand(token)
					options := make([]string, len(b.Options))
					for i, opt := range b.Options {
						options[i] = opt.String()
					}
					parsed = append(parsed, parsedBinding{
						Token:   token,
						Rule:    b.Rule,
						Options: options,
						Message: b.Message,
					})
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				for _, p := range parsed {
					fmt.Fprintf(out, "%s\n  rule:    %s\n  options: [%s]\n  message: %q\n",
						p.Token, p.Rule, strings.Join(p.Options, ", "), p.Message)
				}
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(parsed)
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text or json)")
	return cmd
}
