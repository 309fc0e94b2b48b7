package graph

import "testing"

// fixture builds a small network:
//
//	A --10-- B --10-- C
//	A -----50------- C  (direct but slow)
//	D is isolated from A/B/C but connected to E.
func fixture() *Graph {
	g := New()
	g.AddRoute("A", "B", 10)
	g.AddRoute("B", "C", 10)
	g.AddRoute("A", "C", 50)
	g.AddRoute("D", "E", 5)
	return g
}

func TestMinTravelTimeSameStation(t *testing.T) {
	g := fixture()
	for _, s := range []string{"A", "B", "C", "D", "Atlantis"} {
		if got := g.MinTravelTime(s, s); got != 0 {
			t.Fatalf("MinTravelTime(%q,%q) = %d, want 0", s, s, got)
		}
	}
}

func TestMinTravelTimeUnknownStationIsUnconstrained(t *testing.T) {
	g := fixture()
	if got := g.MinTravelTime("Atlantis", "A"); got != 0 {
		t.Fatalf("unknown origin: got %d, want 0", got)
	}
	if got := g.MinTravelTime("A", "El Dorado"); got != 0 {
		t.Fatalf("unknown destination: got %d, want 0", got)
	}
}

func TestMinTravelTimePrefersCheaperMultiLegPath(t *testing.T) {
	g := fixture()
	// The direct A-C edge costs 50; going through B costs 20.  A level-order
	// BFS would stop at the one-hop edge and report 50.
	if got := g.MinTravelTime("A", "C"); got != 20 {
		t.Fatalf("MinTravelTime(A,C) = %d, want 20", got)
	}
}

func TestMinTravelTimeSymmetry(t *testing.T) {
	g := fixture()
	pairs := [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}, {"D", "E"}}
	for _, p := range pairs {
		ab := g.MinTravelTime(p[0], p[1])
		ba := g.MinTravelTime(p[1], p[0])
		if ab != ba {
			t.Fatalf("asymmetry: %s->%s = %d, %s->%s = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestMinTravelTimeTriangleInequality(t *testing.T) {
	g := fixture()
	ac := g.MinTravelTime("A", "C")
	ab := g.MinTravelTime("A", "B")
	bc := g.MinTravelTime("B", "C")
	if ac > ab+bc {
		t.Fatalf("triangle inequality violated: A-C %d > A-B %d + B-C %d", ac, ab, bc)
	}
}

func TestMinTravelTimeUnreachable(t *testing.T) {
	g := fixture()
	if got := g.MinTravelTime("A", "D"); got != Unreachable {
		t.Fatalf("MinTravelTime(A,D) = %d, want Unreachable", got)
	}
}

func TestAddRouteLastWriteWins(t *testing.T) {
	g := New()
	g.AddRoute("X", "Y", 30)
	g.AddRoute("X", "Y", 12)
	if got := g.MinTravelTime("X", "Y"); got != 12 {
		t.Fatalf("MinTravelTime(X,Y) = %d, want 12", got)
	}
	if got := g.MinTravelTime("Y", "X"); got != 12 {
		t.Fatalf("MinTravelTime(Y,X) = %d, want 12", got)
	}
}

func TestIsAdjacentDistinguishesReachability(t *testing.T) {
	g := fixture()
	if !g.IsAdjacent("A", "B") {
		t.Fatalf("A and B should be adjacent")
	}
	// A reaches C through B, and even has a direct slow edge, but D-E is a
	// separate component: adjacency must reflect edges only.
	if g.IsAdjacent("A", "D") {
		t.Fatalf("A and D must not be adjacent")
	}
}

func TestNeighborsSortedAndNilForUnknown(t *testing.T) {
	g := fixture()
	got := g.Neighbors("A")
	if len(got) != 2 || got[0] != "B" || got[1] != "C" {
		t.Fatalf("Neighbors(A) = %v, want [B C]", got)
	}
	if g.Neighbors("Atlantis") != nil {
		t.Fatalf("Neighbors of unknown station must be nil")
	}
}

func TestDefaultNetworkScenario(t *testing.T) {
	g := DefaultNetwork()
	if got := g.MinTravelTime("Zurich HB", "Winterthur"); got != 20 {
		t.Fatalf("Zurich HB -> Winterthur = %d, want 20", got)
	}
	// St. Gallen is reachable from Zurich HB only via Winterthur.
	if got := g.MinTravelTime("Zurich HB", "St. Gallen"); got != 55 {
		t.Fatalf("Zurich HB -> St. Gallen = %d, want 55", got)
	}
}
