// Package main is a headless stroke replay tool: it runs a scripted
// sculpting session without a window and reports mesh statistics, for
// benchmarking and regression checks.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sculptkit/internal/engine/camera"
	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/internal/engine/primitive"
	"github.com/Faultbox/sculptkit/internal/engine/scene"
	"github.com/Faultbox/sculptkit/internal/engine/sculpt"
	"github.com/Faultbox/sculptkit/internal/export"
	"github.com/Faultbox/sculptkit/internal/logger"
)

const (
	viewportW = 1024
	viewportH = 768
)

var (
	flagScript = flag.String("script", "", "Path to stroke script (YAML)")
	flagOut    = flag.String("out", "", "Write the final mesh to this OBJ file")
	flagVerify = flag.Bool("verify", true, "Check the result for cracks and T-junctions")
	flagLevel  = flag.String("log-level", "info", "Log level")
)

func main() {
	flag.Parse()

	if err := logger.Init(*flagLevel, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *flagScript == "" {
		fmt.Fprintln(os.Stderr, "usage: sculptbench -script strokes.yaml [-out mesh.obj]")
		os.Exit(2)
	}

	if err := run(*flagScript, *flagOut, *flagVerify); err != nil {
		logger.Error("bench failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(scriptPath, outPath string, verify bool) error {
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}

	kind, err := primitive.ParseKind(script.Primitive)
	if err != nil {
		return err
	}
	mesh := primitive.ForKind(kind, 1)
	if kind == primitive.KindSphere {
		mesh = primitive.Sphere(0.5, script.Subdivisions)
	}

	s := scene.New()
	obj := s.Add(script.Primitive, mesh)

	cam := camera.NewOrbitCamera()
	cam.Distance = script.Camera.Distance
	cam.RotationY = script.Camera.Yaw
	cam.RotationX = script.Camera.Pitch
	invViewProj := cam.InverseViewProjection(float32(viewportW) / float32(viewportH))

	o := sculpt.NewOrchestrator()
	// Replays should not depend on wall-clock pacing.
	o.SetSubdivideInterval(0)

	logger.Info("replaying script",
		zap.String("script", scriptPath),
		zap.String("primitive", script.Primitive),
		zap.Int("strokes", len(script.Strokes)),
		zap.Int("vertices", obj.Mesh().VertexCount()),
	)

	start := time.Now()
	var samples, modified, structural, dropped int

	for _, stroke := range script.Strokes {
		tool, _ := sculpt.ParseTool(stroke.Tool)
		for _, pt := range stroke.Samples {
			res := o.RunSample(obj, sculpt.Sample{
				ScreenX:     pt.X,
				ScreenY:     pt.Y,
				ViewportW:   viewportW,
				ViewportH:   viewportH,
				InvViewProj: invViewProj,
				Tool:        tool,
				Radius:      stroke.Radius,
				Strength:    stroke.Strength,
				Invert:      stroke.Invert,
				Axes: sculpt.Axes{
					X: stroke.Symmetry.X,
					Y: stroke.Symmetry.Y,
					Z: stroke.Symmetry.Z,
				},
			})
			samples++
			if res.Modified {
				modified++
			}
			if res.Structural {
				structural++
			}
			if res.Dropped {
				dropped++
			}
		}
		o.EndStroke()
	}
	elapsed := time.Since(start)

	final := obj.Mesh()
	logger.Info("replay finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("samples", samples),
		zap.Int("samplesModified", modified),
		zap.Int("samplesStructural", structural),
		zap.Int("samplesDropped", dropped),
		zap.Int("vertices", final.VertexCount()),
		zap.Int("triangles", final.TriangleCount()),
	)

	if verify {
		if issues := geometry.VerifyWatertight(final); len(issues) > 0 {
			for _, issue := range issues {
				logger.Error("mesh issue", zap.String("issue", issue))
			}
			return fmt.Errorf("mesh has %d watertightness issues", len(issues))
		}
		if tj := geometry.FindTJunctions(final, 1e-4); len(tj) > 0 {
			return fmt.Errorf("mesh has %d T-junctions", len(tj))
		}
		logger.Info("mesh verified: watertight, no T-junctions")
	}

	if outPath != "" {
		if err := export.SaveOBJ(outPath, script.Primitive, final); err != nil {
			return err
		}
		logger.Info("mesh exported", zap.String("path", outPath))
	}
	return nil
}
