package graph

// DefaultNetwork returns the built-in SBB station network with approximate
// travel times in minutes.  Production deployments use this network; tests
// construct smaller fixtures with New and AddRoute.
func DefaultNetwork() *Graph {
	routes := []struct {
		a, b    string
		minutes int
	}{
		{"Zurich HB", "Bern", 56},
		{"Zurich HB", "Basel SBB", 53},
		{"Zurich HB", "Winterthur", 20},
		{"Zurich HB", "Luzern", 41},
		{"Zurich HB", "Chur", 74},
		{"Zurich HB", "Olten", 31},
		{"Zurich HB", "Bellinzona", 95},

		{"Bern", "Basel SBB", 55},
		{"Bern", "Geneva", 100},
		{"Bern", "Lausanne", 66},
		{"Bern", "Luzern", 60},
		{"Bern", "Interlaken Ost", 52},
		{"Bern", "Visp", 56},
		{"Bern", "Olten", 27},
		{"Bern", "Biel/Bienne", 26},

		{"Basel SBB", "Olten", 24},
		{"Basel SBB", "Luzern", 62},
		{"Basel SBB", "Biel/Bienne", 56},

		{"Geneva", "Lausanne", 36},
		{"Geneva", "Brig", 130},
		{"Lausanne", "Brig", 85},
		{"Lausanne", "Biel/Bienne", 60},
		{"Lausanne", "Sion", 65},

		{"Winterthur", "St. Gallen", 35},
		{"St. Gallen", "Chur", 60},

		{"Luzern", "Bellinzona", 70},
		{"Luzern", "Olten", 35},
		{"Lugano", "Bellinzona", 14},

		{"Visp", "Brig", 8},
		{"Visp", "Sion", 30},
	}

	g := New()
	for _, r := range routes {
		g.AddRoute(r.a, r.b, r.minutes)
	}
	return g
}
