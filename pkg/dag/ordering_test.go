package dag

import (
	"reflect"
	"testing"
)

func TestCountLayerCrossings(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "y"}, {"b", "x"}})
	g.SetRows(map[string]int{"a": 0, "b": 0, "x": 1, "y": 1})

	if got := CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}); got != 1 {
		t.Errorf("crossings = %d, want 1", got)
	}
	if got := CountLayerCrossings(g, []string{"b", "a"}, []string{"x", "y"}); got != 0 {
		t.Errorf("crossings after reorder = %d, want 0", got)
	}
}

func TestCountCrossings_MultiRow(t *testing.T) {
	g := buildGraph(t, [][2]string{
		{"a", "y"}, {"b", "x"},
		{"x", "q"}, {"y", "p"},
	})
	g.SetRows(map[string]int{"a": 0, "b": 0, "x": 1, "y": 1, "p": 2, "q": 2})

	orders := map[int][]string{
		0: {"a", "b"},
		1: {"x", "y"},
		2: {"p", "q"},
	}
	if got := CountCrossings(g, orders); got != 2 {
		t.Errorf("total crossings = %d, want 2", got)
	}
}

func TestOrderRows_RemovesCrossing(t *testing.T) {
	// a->y, b->x crosses with initial order [a b] / [x y]; a barycenter
	// sweep resolves it.
	g := buildGraph(t, [][2]string{{"a", "y"}, {"b", "x"}})
	g.SetRows(map[string]int{"a": 0, "b": 0, "x": 1, "y": 1})

	orders := OrderRows(g, DefaultSweeps)
	if got := CountCrossings(g, orders); got != 0 {
		t.Errorf("crossings after ordering = %d, want 0: %v", got, orders)
	}
}

func TestOrderRows_Deterministic(t *testing.T) {
	build := func() *DAG {
		g := buildGraph(t, [][2]string{
			{"a", "x"}, {"a", "y"}, {"b", "y"}, {"b", "z"}, {"c", "x"},
		})
		g.SetRows(map[string]int{"a": 0, "b": 0, "c": 0, "x": 1, "y": 1, "z": 1})
		return g
	}

	first := OrderRows(build(), DefaultSweeps)
	for i := 0; i < 200; i++ {
		if got := OrderRows(build(), DefaultSweeps); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced different order: %v vs %v", i, got, first)
		}
	}
}

func TestOrderRows_TieBreaksStable(t *testing.T) {
	// Five children of the same parent share one barycenter. The final
	// order must be whatever the row buckets seeded, run after run.
	build := func() *DAG {
		g := buildGraph(t, [][2]string{
			{"root", "c1"}, {"root", "c2"}, {"root", "c3"},
			{"root", "c4"}, {"root", "c5"},
		})
		g.SetRows(map[string]int{"root": 0, "c1": 1, "c2": 1, "c3": 1, "c4": 1, "c5": 1})
		return g
	}

	first := OrderRows(build(), DefaultSweeps)
	for i := 0; i < 200; i++ {
		if got := OrderRows(build(), DefaultSweeps); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced different order: %v vs %v", i, got, first)
		}
	}
}

func TestSetRows_BucketsInInsertionOrder(t *testing.T) {
	for run := 0; run < 200; run++ {
		g := New()
		for _, id := range []string{"e", "b", "d", "a", "c"} {
			_ = g.AddNode(Node{ID: id})
		}
		g.SetRows(map[string]int{"e": 0, "b": 0, "d": 0, "a": 0, "c": 0})

		var got []string
		for _, n := range g.NodesInRow(0) {
			got = append(got, n.ID)
		}
		if want := []string{"e", "b", "d", "a", "c"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: row bucket = %v, want %v", run, got, want)
		}
	}
}

func TestOrderRows_SingleRow(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	g.SetRows(map[string]int{"a": 0, "b": 0})

	orders := OrderRows(g, DefaultSweeps)
	if len(orders) != 1 || len(orders[0]) != 2 {
		t.Errorf("orders = %v", orders)
	}
}

func TestOrderRows_ZeroSweepsUsesDefault(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "y"}, {"b", "x"}})
	g.SetRows(map[string]int{"a": 0, "b": 0, "x": 1, "y": 1})

	orders := OrderRows(g, 0)
	if got := CountCrossings(g, orders); got != 0 {
		t.Errorf("crossings = %d, want 0", got)
	}
}
