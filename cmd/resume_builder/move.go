package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

// moveOptions holds the flags of the move command.
type moveOptions struct {
	inFile       string
	outFile      string
	commandsFile string
	undo         int

	cmd       editor.MoveCommand
	itemType  string
	targetStr string
}

func newMoveCmd(root *rootOptions) *cobra.Command {
	o := &moveOptions{}
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move items between sections and pages",
		Long: `Move one item given by flags, or a list of moves read from --commands.
Moves are applied in order; --undo reverts the last N of them before the
document is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, root)
		},
	}
	cmd.Flags().StringVarP(&o.inFile, "in", "i", "", "Resume document (- for stdin)")
	cmd.Flags().StringVarP(&o.outFile, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&o.commandsFile, "commands", "", "JSON file with one move command or a list of them")
	cmd.Flags().IntVar(&o.undo, "undo", 0, "Number of moves to undo after applying")

	cmd.Flags().StringVar(&o.cmd.ItemID, "item", "", "Id of the item to move")
	cmd.Flags().StringVarP(&o.itemType, "type", "t", "", "Item type, e.g. experience")
	cmd.Flags().StringVar(&o.cmd.SourceSectionID, "source", "", "Custom section the item lives in")
	cmd.Flags().StringVar(&o.targetStr, "target", string(editor.TargetSection), "section, new-section or new-page")
	cmd.Flags().StringVar(&o.cmd.TargetSectionID, "target-section", "", "Target section id for --target section")
	cmd.Flags().IntVar(&o.cmd.TargetPageIndex, "page", 0, "Page index for --target new-section")
	cmd.Flags().StringVar(&o.cmd.SectionTitle, "title", "", "Title of a newly created section")
	return cmd
}

func (o *moveOptions) run(cmd *cobra.Command, root *rootOptions) error {
	commands, err := o.commands(cmd)
	if err != nil {
		return err
	}
	if o.undo < 0 || o.undo > len(commands) {
		return fmt.Errorf("--undo must be between 0 and %d", len(commands))
	}

	doc, err := readDocument(cmd, o.inFile)
	if err != nil {
		return err
	}

	limit := editor.DefaultHistoryLimit
	if root.cfg != nil && root.cfg.HistoryLimit > 0 {
		limit = root.cfg.HistoryLimit
	}
	history := editor.NewHistory(doc, limit)

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	for i, mc := range commands {
		result, err := history.ApplyMove(mc)
		if err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, mc.ItemID, err)
		}
		slog.Debug("item moved", "item_id", mc.ItemID, "target", mc.Target, "section_id", result.SectionID)
		if root.verbose {
			printer.PrintMoveResult(mc, result)
		}
	}
	for range o.undo {
		if err := history.Undo(); err != nil {
			return err
		}
	}

	return writeJSON(cmd, o.outFile, history.Current())
}

// commands returns the moves from --commands, or the single move given by flags.
func (o *moveOptions) commands(cmd *cobra.Command) ([]editor.MoveCommand, error) {
	if o.commandsFile == "" {
		if o.cmd.ItemID == "" {
			return nil, fmt.Errorf("either --commands or --item is required")
		}
		mc := o.cmd
		mc.Type = types.CustomSectionType(o.itemType)
		mc.Target = editor.TargetKind(o.targetStr)
		return []editor.MoveCommand{mc}, nil
	}
	if cmd.Flags().Changed("item") {
		return nil, fmt.Errorf("cannot use --item with --commands")
	}

	data, err := readInput(cmd, o.commandsFile)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []editor.MoveCommand
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse move commands: %w", err)
		}
		return list, nil
	}
	var single editor.MoveCommand
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse move command: %w", err)
	}
	return []editor.MoveCommand{single}, nil
}
