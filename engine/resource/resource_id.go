package resource

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
)

// ResourceId is the logical key of a named GPU resource.
// It is the 64-bit FNV-1a hash of the name, so equal names always give equal ids.
type ResourceId uint64

var (
	namesMu sync.Mutex
	names   = map[ResourceId]string{}
)

// NewResourceId hashes name into a ResourceId and remembers the name for diagnostics.
// If a different name already produced the same id a warning is logged; the ids still collide.
//
// Parameters:
//   - name: the human-readable resource name
//
// Returns:
//   - ResourceId: the derived id
func NewResourceId(name string) ResourceId {
	h := fnv.New64a()
	h.Write([]byte(name))
	id := ResourceId(h.Sum64())

	namesMu.Lock()
	defer namesMu.Unlock()
	if prev, ok := names[id]; ok {
		if prev != name {
			logger.Warn("resource id collision: %q and %q both hash to %016x", prev, name, uint64(id))
		}
		return id
	}
	names[id] = name
	return id
}

// Name returns the name the id was first created from, or "" if it was never created by NewResourceId.
func (id ResourceId) Name() string {
	namesMu.Lock()
	defer namesMu.Unlock()
	return names[id]
}

// String renders the id as its name when known, falling back to the hex value.
func (id ResourceId) String() string {
	if name := id.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%016x", uint64(id))
}

// MeshVertexId returns the id under which a mesh's vertex buffer is indexed.
//
// Parameters:
//   - mesh: the mesh id
//
// Returns:
//   - ResourceId: the id of "{name}_vertex"
func MeshVertexId(mesh ResourceId) ResourceId {
	return NewResourceId(mesh.String() + "_vertex")
}

// MeshIndexId returns the id under which a mesh's index buffer is indexed.
//
// Parameters:
//   - mesh: the mesh id
//
// Returns:
//   - ResourceId: the id of "{name}_index"
func MeshIndexId(mesh ResourceId) ResourceId {
	return NewResourceId(mesh.String() + "_index")
}
