package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/navgen/navmesh"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info NAVMESH",
	Short: "show information about a navmesh file",
	Long: `Read a poly mesh from navgen's binary format and print summary
information about it on standard output.`,
	Args: cobra.ExactArgs(1),
	Run:  doInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func doInfo(cmd *cobra.Command, args []string) {
	path := args[0]
	check(fileExists(path))

	f, err := os.Open(path)
	check(err)
	defer f.Close()

	var pm navmesh.PolyMesh
	check(pm.ReadFrom(f))

	fmt.Printf("file       : %s\n", path)
	fmt.Printf("vertices   : %d\n", len(pm.Verts))
	fmt.Printf("polygons   : %d\n", len(pm.Polys))

	var totalAdjacency int
	maxVertsPerPoly := 0
	for _, p := range pm.Polys {
		totalAdjacency += len(p.Adjacency)
		if len(p.Verts) > maxVertsPerPoly {
			maxVertsPerPoly = len(p.Verts)
		}
	}
	fmt.Printf("max verts/poly: %d\n", maxVertsPerPoly)
	if len(pm.Polys) > 0 {
		fmt.Printf("avg neighbors : %.2f\n", float64(totalAdjacency)/float64(len(pm.Polys)))
	}
}
