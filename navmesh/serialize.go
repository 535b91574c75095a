package navmesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// navMeshMagic/navMeshVersion identify navgen's own binary poly mesh
// format on disk: a magic/version int32 pair written first, little
// endian, so a reader can reject files that aren't navgen poly meshes
// before trying to parse the rest.
const (
	navMeshMagic   int32 = 0x4e56474e // "NVGN"
	navMeshVersion int32 = 1
)

// WriteTo serializes pm in navgen's binary format: the header, then
// each field and slice in turn via binary.Write, little endian.
func (pm *PolyMesh) WriteTo(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	write := func(v interface{}) {
		if err == nil {
			err = binary.Write(bw, binary.LittleEndian, v)
		}
	}

	write(navMeshMagic)
	write(navMeshVersion)
	write(int32(len(pm.Verts)))
	write(int32(len(pm.Polys)))

	for _, v := range pm.Verts {
		write(v[0])
		write(v[1])
		write(v[2])
	}
	for _, p := range pm.Polys {
		write(int32(len(p.Verts)))
		write(p.Verts)
		write(int32(len(p.Adjacency)))
		write(p.Adjacency)
		write(p.Centroid[0])
		write(p.Centroid[1])
		write(p.Centroid[2])
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// ReadFrom deserializes a PolyMesh written by WriteTo.
func (pm *PolyMesh) ReadFrom(r io.Reader) (err error) {
	br := bufio.NewReader(r)
	read := func(v interface{}) {
		if err == nil {
			err = binary.Read(br, binary.LittleEndian, v)
		}
	}

	var magic, version, nverts, npolys int32
	read(&magic)
	read(&version)
	if err != nil {
		return err
	}
	if magic != navMeshMagic {
		return fmt.Errorf("navmesh: not a navgen poly mesh file (bad magic)")
	}
	if version != navMeshVersion {
		return fmt.Errorf("navmesh: unsupported poly mesh version %d", version)
	}

	read(&nverts)
	read(&npolys)
	if err != nil {
		return err
	}

	pm.Verts = make([][3]float32, nverts)
	for i := range pm.Verts {
		read(&pm.Verts[i][0])
		read(&pm.Verts[i][1])
		read(&pm.Verts[i][2])
	}

	pm.Polys = make([]*Polygon, npolys)
	for i := range pm.Polys {
		p := &Polygon{}
		var nv, na int32
		read(&nv)
		if err != nil {
			return err
		}
		p.Verts = make([]int32, nv)
		read(p.Verts)
		read(&na)
		if err != nil {
			return err
		}
		p.Adjacency = make([]int32, na)
		read(p.Adjacency)
		read(&p.Centroid[0])
		read(&p.Centroid[1])
		read(&p.Centroid[2])
		pm.Polys[i] = p
	}
	return err
}
