package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"qres/internal/ast"
	"qres/internal/symbols"
)

var namesCmd = &cobra.Command{
	Use:   "names [flags] <unit.qast.json|unit.qast>",
	Short: "Print the node to resolution map of a unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runNames,
}

func init() {
	namesCmd.Flags().String("format", "text", "output format (text|json|msgpack)")
}

type nameEntry struct {
	Node ast.NodeID  `json:"node" msgpack:"node"`
	Res  symbols.Res `json:"res" msgpack:"res"`
}

func runNames(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	_, res, ur, err := resolveSingle(cmd, args[0])
	if err != nil {
		return err
	}
	if err := writeNames(cmd.OutOrStdout(), ur.Output.Names, format); err != nil {
		return err
	}
	return reportUnitErrors(cmd, res)
}

func writeNames(out io.Writer, names symbols.Names, format string) error {
	ids := names.SortedIDs()
	entries := make([]nameEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, nameEntry{Node: id, Res: names[id]})
	}
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(entries)
	default:
		for _, e := range entries {
			if _, err := fmt.Fprintf(out, "node %d: %s\n", e.Node, e.Res); err != nil {
				return err
			}
		}
		return nil
	}
}
