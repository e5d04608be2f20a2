package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"muninn/alloc"
	"muninn/refcnt"
)

func TestCollectorExposesAllocCounters(t *testing.T) {
	alloc.Reset()
	a := alloc.New[int](alloc.KindDirect)
	b := alloc.New[int](alloc.KindCombined)
	alloc.Drop(alloc.KindCombined, b)
	defer alloc.Drop(alloc.KindDirect, a)

	expected := `
		# HELP muninn_block_allocs_total Control block records handed out, by block kind.
		# TYPE muninn_block_allocs_total counter
		muninn_block_allocs_total{kind="combined"} 1
		muninn_block_allocs_total{kind="direct"} 1
		# HELP muninn_block_frees_total Control block records returned, by block kind.
		# TYPE muninn_block_frees_total counter
		muninn_block_frees_total{kind="combined"} 1
		muninn_block_frees_total{kind="direct"} 0
		# HELP muninn_blocks_live Control block records currently held.
		# TYPE muninn_blocks_live gauge
		muninn_blocks_live 1
	`
	if err := testutil.CollectAndCompare(NewCollector(), strings.NewReader(expected)); err != nil {
		t.Fatal(err)
	}
}

func TestCollectorTracksHandleChurn(t *testing.T) {
	alloc.Reset()
	c := NewCollector()

	s := refcnt.Make(42)
	held := `
		# HELP muninn_blocks_live Control block records currently held.
		# TYPE muninn_blocks_live gauge
		muninn_blocks_live 1
	`
	if err := testutil.CollectAndCompare(c, strings.NewReader(held), "muninn_blocks_live"); err != nil {
		t.Fatal(err)
	}

	s.Release()
	released := `
		# HELP muninn_blocks_live Control block records currently held.
		# TYPE muninn_blocks_live gauge
		muninn_blocks_live 0
	`
	if err := testutil.CollectAndCompare(c, strings.NewReader(released), "muninn_blocks_live"); err != nil {
		t.Fatal(err)
	}
}

func TestCollectorRegisters(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.Gather(); err != nil {
		t.Fatalf("gather: %v", err)
	}
}
