package fraud

import (
	"testing"

	"github.com/iliyamo/train-ticket-validation/internal/graph"
)

func testNetwork() *graph.Graph {
	g := graph.New()
	g.AddRoute("Zurich HB", "Winterthur", 20)
	g.AddRoute("Winterthur", "St. Gallen", 35)
	g.AddRoute("Lugano", "Bellinzona", 14) // separate component
	return g
}

func TestIsSuspiciousTooFast(t *testing.T) {
	d := NewDetector(testNetwork())
	// Scanned in Winterthur 5 minutes after Zurich; the trip takes 20.
	if !d.IsSuspicious("Zurich HB", 0, "Winterthur", 300) {
		t.Fatalf("5 minutes for a 20 minute trip must be suspicious")
	}
}

func TestIsSuspiciousEnoughTimeElapsed(t *testing.T) {
	d := NewDetector(testNetwork())
	if d.IsSuspicious("Zurich HB", 0, "Winterthur", 1300) {
		t.Fatalf("21.7 minutes for a 20 minute trip must not be suspicious")
	}
}

func TestIsSuspiciousExactMinimumIsLegitimate(t *testing.T) {
	d := NewDetector(testNetwork())
	// Exactly 20 minutes elapsed for a 20 minute trip.
	if d.IsSuspicious("Zurich HB", 0, "Winterthur", 1200) {
		t.Fatalf("exact minimum travel time must not be suspicious")
	}
}

func TestIsSuspiciousMultiLegTrip(t *testing.T) {
	d := NewDetector(testNetwork())
	// Zurich HB -> St. Gallen requires 55 minutes through Winterthur.
	if !d.IsSuspicious("Zurich HB", 0, "St. Gallen", 54*60) {
		t.Fatalf("54 minutes for a 55 minute trip must be suspicious")
	}
	if d.IsSuspicious("Zurich HB", 0, "St. Gallen", 55*60) {
		t.Fatalf("55 minutes for a 55 minute trip must not be suspicious")
	}
}

func TestIsSuspiciousUnknownStationNeverFlags(t *testing.T) {
	d := NewDetector(testNetwork())
	// Unknown stations cannot be validated; zero elapsed time is accepted.
	if d.IsSuspicious("Atlantis", 0, "Winterthur", 0) {
		t.Fatalf("unknown previous station must not flag")
	}
	if d.IsSuspicious("Zurich HB", 0, "El Dorado", 0) {
		t.Fatalf("unknown new station must not flag")
	}
}

func TestIsSuspiciousUnreachableAlwaysFlags(t *testing.T) {
	d := NewDetector(testNetwork())
	// Lugano is in a component disconnected from Zurich HB.  Unlike unknown
	// stations, known-but-unreachable pairs flag regardless of elapsed time.
	if !d.IsSuspicious("Zurich HB", 0, "Lugano", 7*24*3600) {
		t.Fatalf("unreachable station pair must flag even after a week")
	}
}

func TestIsSuspiciousSameStationRescan(t *testing.T) {
	d := NewDetector(testNetwork())
	if d.IsSuspicious("Zurich HB", 0, "Zurich HB", 0) {
		t.Fatalf("immediate rescan at the same station must not flag")
	}
}
