package handlers

import (
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"

	"github.com/cespare/xxhash/v2"
)

func getIndexByHash(payload effectmodel.Partitionable, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(payload.PartitionKey()) % uint64(numChs))
	}
}
