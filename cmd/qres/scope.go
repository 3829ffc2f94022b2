package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qres/internal/namespaces"
	"qres/internal/symbols"
)

var scopeCmd = &cobra.Command{
	Use:   "scope [flags] <unit.qast.json|unit.qast>",
	Short: "List the names visible at a byte offset",
	Long: `List every local name visible at --offset, innermost first. Outer variables
are hidden behind a callable boundary; items stay visible. With --opens the
namespace opens in effect are listed after the names, one row per open.`,
	Args: cobra.ExactArgs(1),
	RunE: runScope,
}

func init() {
	scopeCmd.Flags().Uint32("offset", 0, "byte offset into the unit source")
	scopeCmd.Flags().Bool("json", false, "emit JSON")
	scopeCmd.Flags().Bool("opens", false, "also list the opens in effect")
	_ = scopeCmd.MarkFlagRequired("offset")
}

func runScope(cmd *cobra.Command, args []string) error {
	offset, err := cmd.Flags().GetUint32("offset")
	if err != nil {
		return fmt.Errorf("failed to get offset flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	withOpens, err := cmd.Flags().GetBool("opens")
	if err != nil {
		return fmt.Errorf("failed to get opens flag: %w", err)
	}

	_, _, ur, err := resolveSingle(cmd, args[0])
	if err != nil {
		return err
	}
	locals := ur.Output.Locals.GetAllAtOffset(offset)
	var opens []openRow
	if withOpens {
		opens = openRows(ur.Output.Locals.OpensAtOffset(offset), ur.Output.Namespaces)
	}
	if asJSON {
		if locals == nil {
			locals = []symbols.Local{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if !withOpens {
			return enc.Encode(locals)
		}
		if opens == nil {
			opens = []openRow{}
		}
		return enc.Encode(struct {
			Locals []symbols.Local `json:"locals"`
			Opens  []openRow       `json:"opens"`
		}{locals, opens})
	}
	if err := writeLocals(cmd.OutOrStdout(), locals); err != nil {
		return err
	}
	return writeOpens(cmd.OutOrStdout(), opens)
}

// openRow is an open with its namespace spelled out.
type openRow struct {
	Alias     string `json:"alias"`
	Namespace string `json:"namespace"`
}

func openRows(opens []symbols.ScopeOpen, tree *namespaces.Tree) []openRow {
	out := make([]openRow, 0, len(opens))
	for _, o := range opens {
		out = append(out, openRow{Alias: o.Alias, Namespace: tree.Name(o.Namespace)})
	}
	return out
}

func writeOpens(out io.Writer, opens []openRow) error {
	if len(opens) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, o := range opens {
		fmt.Fprintf(tw, "%s\topen\t%s\n", o.Alias, o.Namespace)
	}
	return tw.Flush()
}

func writeLocals(out io.Writer, locals []symbols.Local) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, l := range locals {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, l.Kind, localTarget(l))
	}
	return tw.Flush()
}

func localTarget(l symbols.Local) string {
	switch l.Kind {
	case symbols.LocalItem:
		return l.Item.String()
	case symbols.LocalTyParam:
		return fmt.Sprintf("Param %d", l.Param)
	default:
		return fmt.Sprintf("Local %d", l.Node)
	}
}
