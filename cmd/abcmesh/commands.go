package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chewxy/math32"

	"github.com/Faultbox/abcmesh/internal/config"
	"github.com/Faultbox/abcmesh/internal/fixture"
	"github.com/Faultbox/abcmesh/pkg/abc"
	"github.com/Faultbox/abcmesh/pkg/math"
	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

var errNoMesh = errors.New("scene has no mesh")

func meshOptions(cfg *config.Config) []polymesh.Option {
	return []polymesh.Option{polymesh.WithOptions(cfg.Mesh.Options())}
}

func sceneMesh(scene *fixture.Scene) (*polymesh.Mesh, error) {
	if scene.Mesh == nil {
		return nil, errNoMesh
	}
	return scene.Mesh.Mesh(), nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	scene, t, err := openScene(cfg, args)
	if err != nil {
		return err
	}

	fmt.Printf("Scene: %s\n", args[0])
	fmt.Printf("Time:  %g\n\n", t)

	fmt.Println("Objects:")
	printTree(scene.Objects, abc.NoObject, 1)

	x := scene.XForm
	fmt.Println("\nTransform:")
	fmt.Printf("  Position: %s\n", fmtVec3(x.Position()))
	fmt.Printf("  Axis:     %s  Angle: %.2f deg\n", fmtVec3(x.Axis()), x.Angle()*180/math32.Pi)
	fmt.Printf("  Scale:    %s  Inherits: %v\n", fmtVec3(x.Scale()), x.Inherits())

	if scene.Camera != nil {
		p := scene.Camera.Params(16.0 / 9.0)
		fmt.Println("\nCamera (16:9):")
		fmt.Printf("  Field of view:  %.2f deg\n", p.FieldOfView)
		fmt.Printf("  Focal length:   %.3f\n", p.FocalLength)
		fmt.Printf("  Focus distance: %.3f\n", p.FocusDistance)
		fmt.Printf("  Clipping:       %g .. %g\n", p.NearClippingPlane, p.FarClippingPlane)
		fmt.Printf("  View direction: %s\n", fmtVec3(viewDirection(x.Matrix())))
	}

	if scene.Mesh == nil {
		return nil
	}
	m := scene.Mesh.Mesh()
	opts := m.Options()
	fmt.Println("\nMesh:")
	fmt.Printf("  Faces:      %d\n", m.FaceCount())
	fmt.Printf("  Points:     %d\n", m.PointCount())
	fmt.Printf("  Normals:    %v (mode %s)\n", m.HasNormals(), opts.NormalsMode)
	fmt.Printf("  UVs:        %v (tangents %s)\n", m.HasUVs(), opts.TangentsMode)
	fmt.Printf("  Velocities: %v\n", m.HasVelocities())
	fmt.Printf("  Winding:    %s\n", opts.Winding)
	fmt.Printf("  Variance:   %s\n", m.TopologyVariance())

	fmt.Printf("\nSplits (ceiling %d):\n", opts.VertexCeiling)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tFaces\tIndex offset\tVertices")
	for i, s := range m.Splits() {
		fmt.Fprintf(w, "  %d\t%d-%d\t%d\t%d\n", i, s.FirstFace, s.LastFace, s.IndexOffset, s.IndicesCount)
	}
	return w.Flush()
}

func printTree(objects *abc.ObjectTable, parent abc.Handle, depth int) {
	for _, h := range objects.Children(parent) {
		o, _ := objects.Object(h)
		fmt.Printf("%s%s [%s]\n", strings.Repeat("  ", depth), objects.Path(h), o.Schema.Kind)
		printTree(objects, h, depth+1)
	}
}

func cmdSubmeshes(cfg *config.Config, args []string) error {
	scene, _, err := openScene(cfg, args)
	if err != nil {
		return err
	}
	m, err := sceneMesh(scene)
	if err != nil {
		return err
	}

	n, err := m.PrepareSubmeshes(scene.Facesets)
	if err != nil {
		return err
	}
	fmt.Printf("Submeshes: %d in %d splits\n\n", n, m.SplitCount())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSplit\tLocal\tFaceset\tTile\tTriangles")
	for {
		info, ok := m.NextSubmesh()
		if !ok {
			break
		}
		faceset := fmt.Sprint(info.FacesetIndex)
		if info.FacesetIndex == polymesh.ImplicitFaceset {
			faceset = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t(%d, %d)\t%d\n",
			info.Index, info.SplitIndex, info.SplitSubmeshIndex, faceset, info.UTile, info.VTile, info.TriangleCount)
	}
	return w.Flush()
}

func cmdBuffers(cfg *config.Config, args []string) error {
	scene, _, err := openScene(cfg, args)
	if err != nil {
		return err
	}
	m, err := sceneMesh(scene)
	if err != nil {
		return err
	}

	bufs := make([]polymesh.SplitBuffers, m.SplitCount())
	for i := range bufs {
		n, err := m.VertexBufferLength(i)
		if err != nil {
			return err
		}
		bufs[i] = polymesh.SplitBuffers{
			Split:     i,
			Positions: make([]math.Vec3, n),
			Normals:   make([]math.Vec3, n),
			UVs:       make([]math.Vec2, n),
			Tangents:  make([]math.Vec4, n),
		}
	}
	if err := m.FillSplits(bufs); err != nil {
		return err
	}

	xf := scene.XForm.Matrix()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Split\tVertices\tWorld min\tWorld max\tExtent\tFirst normal\tFirst tangent")
	for _, b := range bufs {
		lo, hi := bounds(b.Positions, xf)
		var n0 math.Vec3
		var t0 math.Vec4
		if len(b.Normals) > 0 {
			n0, t0 = b.Normals[0], b.Tangents[0]
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%.3g\t%s\t%s w=%g\n",
			b.Split, len(b.Positions), fmtVec3(lo), fmtVec3(hi), lo.Distance(hi), fmtVec3(n0), fmtVec3(t0.XYZ()), t0.W)
	}
	return w.Flush()
}

// bounds returns the axis-aligned box of points after transforming them by xf.
func bounds(points []math.Vec3, xf math.Mat4) (lo, hi math.Vec3) {
	if len(points) == 0 {
		return lo, hi
	}
	lo = xf.TransformVec3(points[0])
	hi = lo
	for _, p := range points[1:] {
		p = xf.TransformVec3(p)
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// viewDirection is the world direction of a camera's local -Z axis.
func viewDirection(xf math.Mat4) math.Vec3 {
	return xf.TransformDirection(math.Vec3{Z: -1}).Normalize()
}

func fmtVec3(v math.Vec3) string {
	return fmt.Sprintf("(%.3g, %.3g, %.3g)", v.X, v.Y, v.Z)
}
