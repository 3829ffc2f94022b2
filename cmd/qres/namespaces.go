package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"qres/internal/namespaces"
)

var namespacesCmd = &cobra.Command{
	Use:   "namespaces <unit.qast.json|unit.qast>",
	Short: "Print the namespace tree seen by a unit",
	Long: `Print the namespace tree after resolution, including namespaces contributed
by dependencies and the prelude, with the ID of every node.`,
	Args: cobra.ExactArgs(1),
	RunE: runNamespaces,
}

func runNamespaces(cmd *cobra.Command, args []string) error {
	_, res, ur, err := resolveSingle(cmd, args[0])
	if err != nil {
		return err
	}
	if err := writeTree(cmd.OutOrStdout(), ur.Output.Namespaces); err != nil {
		return err
	}
	return reportUnitErrors(cmd, res)
}

func writeTree(out io.Writer, tree *namespaces.Tree) error {
	if tree == nil {
		return nil
	}
	var writeErr error
	tree.Walk(func(path []string, n *namespaces.Node) bool {
		name := "<root>"
		if len(path) > 0 {
			name = n.Name
		}
		_, writeErr = fmt.Fprintf(out, "%s%s (%d)\n", strings.Repeat("  ", len(path)), name, uint32(n.ID))
		return writeErr == nil
	})
	return writeErr
}
