package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind_SingletonsByDefault(t *testing.T) {
	uf := New(5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, uf.Find(i))
	}
}

func TestUnionFind_UnionConnects(t *testing.T) {
	uf := New(5)
	uf.Union(0, 1)
	uf.Union(1, 2)
	assert.True(t, uf.Connected(0, 2))
	assert.False(t, uf.Connected(0, 3))
}

func TestUnionFind_UnionIsIdempotent(t *testing.T) {
	uf := New(3)
	uf.Union(0, 1)
	uf.Union(0, 1)
	uf.Union(1, 0)
	assert.True(t, uf.Connected(0, 1))
}

func TestUnionFind_ClustersPartitionTheSet(t *testing.T) {
	uf := New(10)
	uf.Union(0, 1)
	uf.Union(1, 2)
	uf.Union(3, 4)
	// 5..9 remain singletons

	clusters := uf.Clusters()
	seen := make(map[int]bool)
	total := 0
	for _, members := range clusters {
		for _, m := range members {
			assert.False(t, seen[m], "member %d appears in more than one cluster", m)
			seen[m] = true
		}
		total += len(members)
	}
	assert.Equal(t, 10, total)
	for i := 0; i < 10; i++ {
		assert.True(t, seen[i])
	}
}

func TestUnionFind_AllConnected(t *testing.T) {
	uf := New(4)
	uf.Union(0, 1)
	uf.Union(2, 3)
	uf.Union(1, 2)
	clusters := uf.Clusters()
	assert.Len(t, clusters, 1)
}
