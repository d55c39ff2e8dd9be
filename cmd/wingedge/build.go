package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/wingedge/internal/config"
	"github.com/Faultbox/wingedge/internal/logger"
	"github.com/Faultbox/wingedge/pkg/builder"
	"github.com/Faultbox/wingedge/pkg/math"
	"github.com/Faultbox/wingedge/pkg/scene"
	"github.com/Faultbox/wingedge/pkg/winged"
)

var buildCmd = &cobra.Command{
	Use:   "build [scene.yaml]",
	Short: "Build meshes from a scene file and print a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.OutOrStdout(), args[0], cfg)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// errShapesFailed is returned in strict mode when a shape could not be built.
var errShapesFailed = errors.New("some shapes failed to build")

// runBuild loads path, builds every shape and writes the report to w.
func runBuild(w io.Writer, path string, cfg *config.Config) error {
	root, err := scene.LoadFile(path)
	if err != nil {
		return err
	}

	policy, err := cfg.NonManifoldPolicy()
	if err != nil {
		return err
	}

	var shapes winged.WingedEdge
	b := builder.New(&shapes, builder.Options{NonManifold: policy})
	buildErr := b.Build(root)
	for _, err := range multierr.Errors(buildErr) {
		logger.Error("build failed", zap.String("scene", path), zap.Error(err))
	}

	writeReport(w, path, &shapes, b.Stats(), multierr.Errors(buildErr))

	if buildErr != nil && cfg.Build.Strict {
		return fmt.Errorf("%w: %d of %d", errShapesFailed, b.Stats().FailedShapes, b.Stats().FailedShapes+b.Stats().Shapes)
	}
	return nil
}

func writeReport(w io.Writer, path string, shapes *winged.WingedEdge, stats builder.Stats, failures []error) {
	fmt.Fprintf(w, "Scene: %s\n", path)
	fmt.Fprintf(w, "Meshes: %d built, %d failed\n\n", stats.Shapes, stats.FailedShapes)

	for _, m := range shapes.Shapes() {
		fmt.Fprintf(w, "Mesh %d", m.ID)
		if len(m.Materials) > 0 {
			fmt.Fprintf(w, " (%s)", m.Materials[0].Name)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Vertices:         %d\n", len(m.Vertices))
		fmt.Fprintf(w, "  Faces:            %d\n", len(m.Faces))
		fmt.Fprintf(w, "  Edges:            %d\n", len(m.Edges))
		fmt.Fprintf(w, "  Boundary edges:   %d\n", m.BoundaryEdgeCount())
		fmt.Fprintf(w, "  Crease vertices:  %d\n", m.CreaseVertexCount())
		fmt.Fprintf(w, "  Bounds:           %s - %s\n", formatVec(m.Bounds.Min), formatVec(m.Bounds.Max))
		fmt.Fprintf(w, "  Center:           %s\n", formatVec(m.Bounds.Center()))
		fmt.Fprintf(w, "  Diagonal:         %.6f\n", m.Bounds.Diagonal())
		fmt.Fprintf(w, "  Mean edge length: %.6f\n", m.MeanEdgeLength)
		if len(m.Anomalies) > 0 {
			fmt.Fprintf(w, "  Anomalies:        %d\n", len(m.Anomalies))
			for _, a := range m.Anomalies {
				fmt.Fprintf(w, "    %s\n", formatAnomaly(a))
			}
		}
		fmt.Fprintln(w)
	}

	vertices, faces, edges := shapes.Totals()
	fmt.Fprintf(w, "Total: %d vertices, %d faces, %d edges", vertices, faces, edges)
	if stats.SkippedRows > 0 || stats.RejectedFaces > 0 {
		fmt.Fprintf(w, " (%d rows skipped, %d faces rejected)", stats.SkippedRows, stats.RejectedFaces)
	}
	fmt.Fprintln(w)

	for _, err := range failures {
		fmt.Fprintf(w, "Failed: %v\n", err)
	}
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

func formatAnomaly(a winged.Anomaly) string {
	s := fmt.Sprintf("%s edge %d-%d in face %v", a.Kind, a.From, a.To, a.Corners)
	if a.Kind == winged.AnomalyDegenerate {
		s = fmt.Sprintf("%s face %v", a.Kind, a.Corners)
	}
	if a.Rejected() {
		return s + ", rejected"
	}
	return s
}
