//-----------------------------------------------------------------------------
/*

sdfpreview builds a small implicit-surface graph, lowers it to IR,
compiles it, meshes it with dual contouring, and writes preview files
in every format the export package understands.

*/
//-----------------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/example/implicitmodeler/export"
	"github.com/example/implicitmodeler/graph"
	"github.com/example/implicitmodeler/jit"
	"github.com/example/implicitmodeler/mesh"
	"github.com/example/implicitmodeler/meshindex"
)

//-----------------------------------------------------------------------------

// buildSmoothUnionGraph wires a sphere and a box into a rounded union,
// the spec.md §8 scenario C shape: a sphere of radius 1 at the origin
// smooth-unioned with a half-extent-0.6 box offset along x.
func buildSmoothUnionGraph() (*graph.Graph, *graph.OutputNode, error) {
	g := graph.NewGraph()

	sphere := graph.NewSphereNode(1)
	sphere.DefaultRadius = 1

	box := graph.NewBoxNode(2)
	box.DefaultSize = [3]float64{0.6, 0.6, 0.6}
	box.DefaultCenter = [3]float64{0.9, 0, 0}

	union := graph.NewSmoothUnionNode(3)
	union.DefaultRounding = 0.3

	out := graph.NewOutputNode(4)

	for _, n := range []graph.Node{sphere, box, union, out} {
		if err := g.AddNode(n); err != nil {
			return nil, nil, err
		}
	}
	if err := g.Connect(3, 0, 1); err != nil {
		return nil, nil, err
	}
	if err := g.Connect(3, 1, 2); err != nil {
		return nil, nil, err
	}
	if err := g.Connect(4, 0, 3); err != nil {
		return nil, nil, err
	}
	return g, out, nil
}

func main() {
	resolution := flag.Int("n", 48, "octree resolution along each axis")
	outDir := flag.String("out", ".", "directory to write preview files into")
	flag.Parse()

	g, out, err := buildSmoothUnionGraph()
	if err != nil {
		log.Fatalf("building graph: %s", err)
	}
	if err := g.Validate(); err != nil {
		log.Fatalf("invalid graph: %s", err)
	}

	prog, err := graph.GenerateInstructions(out, g)
	if err != nil {
		log.Fatalf("generating instructions: %s", err)
	}

	compiled, err := jit.Compile(prog)
	if err != nil {
		log.Fatalf("compiling: %s", err)
	}
	defer compiled.Release()
	log.Printf("compiled (native=%v)", compiled.Native)

	sdf := func(p mesh.Vec3) float64 { return compiled.Eval(p[0], p[1], p[2]) }

	qm, err := mesh.Mesh(context.Background(), sdf, *resolution)
	if err != nil {
		log.Fatalf("meshing: %s", err)
	}
	log.Printf("meshed %d vertices, %d quads", len(qm.Vertices), len(qm.Quads))

	idx, err := meshindex.Build(qm)
	if err != nil {
		log.Fatalf("indexing: %s", err)
	}
	nearest := idx.Nearest(mesh.Vec3{0, 0, 0})
	log.Printf("quad nearest the origin: %d", nearest)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %s", err)
	}

	svgFile, err := os.Create(filepath.Join(*outDir, "preview.svg"))
	if err != nil {
		log.Fatalf("creating svg file: %s", err)
	}
	defer svgFile.Close()
	export.WriteSVGWireframe(svgFile, qm, 512, 512)

	pngFile, err := os.Create(filepath.Join(*outDir, "preview.png"))
	if err != nil {
		log.Fatalf("creating png file: %s", err)
	}
	defer pngFile.Close()
	if err := export.WritePNGPreview(pngFile, qm, 512, 512, "sdfpreview"); err != nil {
		log.Fatalf("writing png preview: %s", err)
	}

	threemfFile, err := os.Create(filepath.Join(*outDir, "preview.3mf"))
	if err != nil {
		log.Fatalf("creating 3mf file: %s", err)
	}
	defer threemfFile.Close()
	if err := export.WriteThreeMF(threemfFile, qm); err != nil {
		log.Fatalf("writing 3mf: %s", err)
	}

	if err := export.WriteDXFSlice(filepath.Join(*outDir, "preview-slice.dxf"), qm, 0); err != nil {
		log.Fatalf("writing dxf slice: %s", err)
	}
}
