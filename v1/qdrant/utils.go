package qdrant

import (
	"strconv"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/relevancelab/searchinit/v1/dataset"
)

// pointID maps a document identifier to a valid Qdrant point id. Qdrant only
// accepts unsigned integers and UUIDs, so arbitrary string identifiers are
// hashed into a deterministic UUID; the original value survives in the
// payload.
func pointID(id string) *qdrant.PointId {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return qdrant.NewIDNum(n)
	}
	if _, err := uuid.Parse(id); err == nil {
		return qdrant.NewID(id)
	}
	return qdrant.NewID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String())
}

// documentVector pulls the vector out of a document. Merged datasets carry
// []float64; datasets decoded straight from JSON carry []any.
func documentVector(doc dataset.Document) ([]float32, bool) {
	switch v := doc[dataset.VectorField].(type) {
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, len(out) > 0
	case []any:
		out := make([]float32, 0, len(v))
		for _, e := range v {
			f, ok := e.(float64)
			if !ok {
				return nil, false
			}
			out = append(out, float32(f))
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}

// collectionVectorSize navigates the nested protobuf config of a collection
// to its vector dimension, guarding every level against nil. Returns 0 when
// the collection has no single unnamed vector config.
func collectionVectorSize(info *qdrant.CollectionInfo) int {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0
	}

	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return int(cfg.Params.Size)
	}
	return 0
}

// derefUint64 safely dereferences a *uint64 pointer.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
