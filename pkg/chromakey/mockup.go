package chromakey

import (
	"github.com/user/patternshow/pkg/render"
)

// MockupSpec describes one product mockup: its display name and the texture
// asset carrying the key-colored print region.
type MockupSpec struct {
	Kind      render.MockupKind
	Name      string
	AssetFile string
}

// Lookup returns the spec for a mockup kind. The switch is exhaustive over
// render.Kinds; adding a kind without a case here falls back to fabric,
// which the tests guard against.
func Lookup(kind render.MockupKind) MockupSpec {
	switch kind {
	case render.MockupTShirt:
		return MockupSpec{Kind: kind, Name: "T-Shirt", AssetFile: "tshirt.png"}
	case render.MockupMug:
		return MockupSpec{Kind: kind, Name: "Mug", AssetFile: "mug.png"}
	case render.MockupToteBag:
		return MockupSpec{Kind: kind, Name: "Tote Bag", AssetFile: "totebag.png"}
	case render.MockupPillow:
		return MockupSpec{Kind: kind, Name: "Pillow", AssetFile: "pillow.png"}
	case render.MockupFabric:
		return MockupSpec{Kind: kind, Name: "Fabric", AssetFile: "fabric.png"}
	default:
		return MockupSpec{Kind: render.MockupFabric, Name: "Fabric", AssetFile: "fabric.png"}
	}
}

// All returns the specs for every registered mockup kind.
func All() []MockupSpec {
	kinds := render.Kinds()
	specs := make([]MockupSpec, len(kinds))
	for i, k := range kinds {
		specs[i] = Lookup(k)
	}
	return specs
}
