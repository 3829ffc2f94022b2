package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"qres/internal/driver"
	"qres/internal/pkgcache"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <unit.qast.json|unit.qast>",
	Short: "Write the package interface of a resolved unit",
	Long: `Resolve a unit and write its public declarations as a package interface
(.qri) that other packages can list under [[dependencies]].`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "interface file (default <name>.qri)")
	exportCmd.Flags().String("name", "", "package name (default: [package].name or the file name)")
}

func runExport(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	ws, res, ur, err := resolveSingle(cmd, args[0])
	if err != nil {
		return err
	}
	if err := reportUnitErrors(cmd, res); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = ws.name
	}
	if output == "" {
		output = name + pkgcache.Ext
	}
	if err := driver.ExportTo(ur, name, ws.deps.Names(), output, nil); err != nil {
		return fmt.Errorf("export %s: %w", args[0], err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "exported package %q to %s\n", name, filepath.ToSlash(output))
	}
	return nil
}
