package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

func newTargetsCmd(_ *rootOptions) *cobra.Command {
	var (
		inFile   string
		itemType string
		sourceID string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the sections an item can be moved to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := types.CustomSectionType(itemType)
			if !t.Valid() {
				return fmt.Errorf("unknown section type %q", itemType)
			}
			doc, err := readDocument(cmd, inFile)
			if err != nil {
				return err
			}

			pages := editor.GetCompatibleMoveTargets(doc, t, sourceID)
			if asJSON {
				if pages == nil {
					pages = []editor.MoveTargetPage{}
				}
				return writeJSON(cmd, "", pages)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintMoveTargets(t, pages)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Resume document (- for stdin)")
	cmd.Flags().StringVarP(&itemType, "type", "t", "", "Item type, e.g. experience")
	cmd.Flags().StringVar(&sourceID, "source", "", "Custom section the item currently lives in")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newCheckLayoutCmd(_ *rootOptions) *cobra.Command {
	var (
		inFile string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "check-layout",
		Short: "Report dangling and duplicated layout references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(cmd, inFile)
			if err != nil {
				return err
			}

			issues := layout.CheckLayout(doc)
			if asJSON {
				if issues == nil {
					issues = []layout.Issue{}
				}
				if err := writeJSON(cmd, "", issues); err != nil {
					return err
				}
			} else {
				observability.NewPrinter(cmd.OutOrStdout()).PrintLayoutIssues(issues)
			}

			if errs := layout.Errors(issues); len(errs) > 0 {
				return fmt.Errorf("%d layout errors", len(errs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Resume document (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
