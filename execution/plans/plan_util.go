package plans

import (
	"github.com/golang-collections/collections/stack"

	"github.com/aokimoto/KujiraDB/types"
)

// CollectTableOIDs walks the plan tree and returns the OID of every
// table it touches, deduplicated.
func CollectTableOIDs(plan Plan) []types.OID {
	seen := make(map[types.OID]bool)
	oids := make([]types.OID, 0)

	nodes := stack.New()
	nodes.Push(plan)
	for nodes.Len() > 0 {
		node := nodes.Pop().(Plan)

		oid := node.GetTableOID()
		if oid.IsValid() && !seen[oid] {
			seen[oid] = true
			oids = append(oids, oid)
		}
		for _, child := range node.GetChildren() {
			nodes.Push(child)
		}
	}
	return oids
}
