// Package fraud flags physically impossible travel between two scans of the
// same ticket.
package fraud

import "github.com/iliyamo/train-ticket-validation/internal/graph"

// Detector scores a new scan against the previous scan of the same ticket
// using minimum travel times from the station network.
type Detector struct {
	Network *graph.Graph
}

// NewDetector returns a Detector backed by the given station network.
func NewDetector(network *graph.Graph) *Detector {
	return &Detector{Network: network}
}

// IsSuspicious reports whether the wall-clock time between two scans is too
// short for the minimum travel time between their stations.  Timestamps are
// seconds since epoch.  Exactly meeting the minimum travel time is
// legitimate; only strictly insufficient time is flagged.
//
// Two deliberately different policies apply at the edges: a station the
// network does not know yields a required time of 0 and never flags (travel
// involving it cannot be validated), while two known stations with no
// connecting path always flag, since no physical route exists inside the
// known network no matter how much time elapsed.
func (d *Detector) IsSuspicious(lastLocation string, lastSeenAt float64, newLocation string, now float64) bool {
	required := d.Network.MinTravelTime(lastLocation, newLocation)
	if required == graph.Unreachable {
		return true
	}
	elapsedMinutes := (now - lastSeenAt) / 60
	return elapsedMinutes < float64(required)
}
