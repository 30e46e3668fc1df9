package simulator

import "github.com/prometheus/client_golang/prometheus"

// Engine metrics: ambient observability on the driver itself, not a
// reporting/export feature (SPEC_FULL.md §3 DOMAIN STACK carries this
// even though the original spec's non-goals exclude an analysis layer).
var (
	standsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metsi_stands_processed_total",
		Help: "Number of stands the driver has completed evaluating.",
	})
	alternativesProduced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metsi_alternatives_produced_total",
		Help: "Number of terminal schedule alternatives produced across all stands.",
	})
	branchesPruned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metsi_branches_pruned_total",
		Help: "Number of stand evaluations that ended in ErrAllBranchesAborted.",
	})
)

func init() {
	prometheus.MustRegister(standsProcessed, alternativesProduced, branchesPruned)
}
