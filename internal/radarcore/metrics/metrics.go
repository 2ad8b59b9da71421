// Package metrics implements A9: a Prometheus-style text exposition
// endpoint for the gatewaylog/gatewaymetrics counters (internal/monitoring),
// using only the stdlib net/http mux the teacher already wires rather
// than pulling in a metrics client library the pack does not carry.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/wavemark/radargw/internal/monitoring"
)

// Handler renders counters in the Prometheus text exposition format.
func Handler(counters *monitoring.Counters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := counters.Snapshot()
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "radargw_packets_received_total %d\n", snap.PacketsReceived)
		fmt.Fprintf(w, "radargw_spokes_received_total %d\n", snap.SpokesReceived)
		fmt.Fprintf(w, "radargw_controls_applied_total %d\n", snap.ControlsApplied)
		fmt.Fprintf(w, "radargw_broken_packets_total %d\n", snap.BrokenPackets)
		fmt.Fprintf(w, "radargw_radars_discovered_total %d\n", snap.RadarsDiscovered)
	}
}
