package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/types"
)

func newNewCmd(_ *rootOptions) *cobra.Command {
	var (
		sample  bool
		locale  string
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write an empty or sample resume document",
		Long:  "Write a new resume document as JSON. --sample fills it with the sample resume.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := types.DefaultResumeData()
			if sample {
				doc = types.SampleResumeData()
			}
			if locale != "" {
				doc.Metadata.Page.Locale = locale
			}
			return writeJSON(cmd, outFile, doc)
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "Use the sample resume")
	cmd.Flags().StringVar(&locale, "locale", "", "Page locale, e.g. de-DE")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (default stdout)")
	return cmd
}
