package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/navgen/navmesh"
)

// buildCmd represents the build command. It only ever builds a single
// solo-style PolyMesh; there is no tiled-mesh mode.
var buildCmd = &cobra.Command{
	Use:   "build OUTFILE",
	Short: "build a navigation mesh from input geometry",
	Long: `Build a navigation mesh from input geometry in OBJ format.
The build process is controlled by a YAML settings file (see 'navgen
config'). The resulting poly mesh is written to OUTFILE in navgen's own
binary format.`,
	Args: cobra.ExactArgs(1),
	Run:  runBuild,
}

var cfgVal, inputVal string

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&cfgVal, "config", "", "build settings YAML file (defaults if omitted)")
	buildCmd.Flags().StringVar(&inputVal, "input", "", "input geometry OBJ file (required)")
}

func runBuild(cmd *cobra.Command, args []string) {
	outPath := args[0]

	if inputVal == "" {
		fmt.Println("error, --input is required")
		os.Exit(1)
	}
	check(fileExists(inputVal))

	params, err := loadParams(cfgVal)
	check(err)

	verts, tris, bmin, bmax, err := loadGeometry(inputVal)
	check(err)

	fmt.Printf("loaded '%s': %d verts, %d tris\n", inputVal, len(verts)/3, len(tris)/3)

	result, err := navmesh.BuildNavMesh(verts, tris, bmin, bmax, params)
	check(err)

	if result.PolyMesh == nil {
		fmt.Println("perform_full_generation is false: no poly mesh produced, nothing to write")
		return
	}

	f, err := os.Create(outPath)
	check(err)
	defer f.Close()
	check(result.PolyMesh.WriteTo(f))

	fmt.Printf("navmesh written to '%s': %d verts, %d polys\n",
		outPath, len(result.PolyMesh.Verts), len(result.PolyMesh.Polys))
}
