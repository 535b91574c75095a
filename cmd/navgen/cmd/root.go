package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "navgen",
	Short: "build navigation meshes from level geometry",
	Long: `navgen is the command-line tool accompanying the navmesh package:
	- build navigation meshes from input geometry (OBJ),
	- save them to navgen's binary poly mesh format,
	- tweak build settings via YAML files,
	- inspect generated poly mesh files.`,
}

// Execute adds all child commands to the root command and runs it. It
// is called once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
