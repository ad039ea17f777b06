package export

import (
	"fmt"
	"io"

	"github.com/hpinc/go3mf"

	"github.com/example/implicitmodeler/mesh"
)

// WriteThreeMF encodes m as a 3MF model, triangulating each quad as a
// fan of two triangles. Grounded on go3mf's own Model/Mesh/Encoder
// shape (go3mf wraps the OPC container format internally, via the
// opc package the teacher also lists but never exercises) — the
// public API a host application is expected to call, since neither
// go3mf nor opc appears anywhere in the teacher's own source.
func WriteThreeMF(w io.Writer, m mesh.QuadMesh) error {
	model := new(go3mf.Model)
	model.Units = go3mf.UnitMillimeter

	meshObj := &go3mf.Object{
		ID:   1,
		Type: go3mf.ObjectTypeModel,
		Mesh: &go3mf.Mesh{},
	}
	for _, v := range m.Vertices {
		meshObj.Mesh.Vertices.Vertex = append(meshObj.Mesh.Vertices.Vertex, go3mf.Point3D{
			float32(v[0]), float32(v[1]), float32(v[2]),
		})
	}
	for _, q := range m.Quads {
		meshObj.Mesh.Triangles.Triangle = append(meshObj.Mesh.Triangles.Triangle,
			go3mf.Triangle{V1: int(q[0]), V2: int(q[1]), V3: int(q[2])},
			go3mf.Triangle{V1: int(q[0]), V2: int(q[2]), V3: int(q[3])},
		)
	}
	model.Resources.Objects = append(model.Resources.Objects, meshObj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: meshObj.ID})

	enc := go3mf.NewEncoder(w)
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("export: encoding 3mf: %w", err)
	}
	return nil
}
