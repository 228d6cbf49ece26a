package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var inFile string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a resume document",
		Long:  "Validate a resume document against the schema and check that its layout is consistent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, inFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printer := observability.NewPrinter(out)

			doc, coercions, err := schemas.ParseResumeDataWithCoercions(data)
			if err != nil {
				var ve *schemas.ValidationError
				if errors.As(err, &ve) {
					printer.PrintValidationErrors(ve)
					fmt.Fprintln(out, "Validation failed") //nolint:errcheck
					return fmt.Errorf("%d invalid fields", len(ve.Errors))
				}
				return err
			}
			if opts.verbose {
				printer.PrintResumeSummary(doc)
				printer.PrintCoercions(coercions)
			}

			issues := layout.CheckLayout(doc)
			if errs := layout.Errors(issues); len(errs) > 0 {
				printer.PrintLayoutIssues(issues)
				fmt.Fprintln(out, "Validation failed") //nolint:errcheck
				return fmt.Errorf("%d layout errors", len(errs))
			}
			if len(issues) > 0 {
				printer.PrintLayoutIssues(issues)
			}

			fmt.Fprintln(out, "Validation passed") //nolint:errcheck
			return nil
		},
	}
	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Resume document (- for stdin)")
	return cmd
}
