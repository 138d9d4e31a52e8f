package cmd

import (
	"fmt"

	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display information about a model and its zoom target",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filename := args[0]
	m, err := app.LoadFile(cmd.Context(), filename, nil)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}

	stats := analysis.Analyze(m)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if m.Name != "" {
		fmt.Printf("Name: %s\n", m.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", stats.TriangleCount)
	fmt.Printf("  Edges: %d\n", stats.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", stats.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(stats.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(stats.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(stats.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", stats.Dimensions.X)
	fmt.Printf("  Height (Y): %.6f units\n", stats.Dimensions.Y)
	fmt.Printf("  Depth (Z): %.6f units\n", stats.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n", stats.BoundingBox.Diagonal())
	fmt.Printf("  Longest axis: %s\n\n", analysis.AxisName(stats.LongestAxis))

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", stats.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", stats.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", stats.AvgEdgeLength)

	obj := app.Prepare(m, cfg.Scene.FitSize)
	zoom := cfg.Choreo.Zoom
	target := analysis.ZoomTarget(obj, zoom)

	fmt.Printf("Showcase (preset %s):\n", cfg.Preset)
	fmt.Printf("  Scale: %.6f\n", obj.Scale)
	fmt.Printf("  Zoom axis: %s, side: %s\n", zoom.Axis, zoom.Side)
	fmt.Printf("  Zoom target: %s\n", analysis.FormatVector(target))
	fmt.Printf("  Zoom camera: %s\n", analysis.FormatVector(target.Add(zoom.CameraOffset)))
	return nil
}
