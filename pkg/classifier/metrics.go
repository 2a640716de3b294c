package classifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Duplicate snapshots are dropped silently to preserve first-seen-wins
// output, but the drop count is exported so a misbehaving data source is
// still visible.
var duplicateSnapshots = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vm_classifier_duplicate_snapshots_total",
	Help: "Number of duplicate VM snapshots dropped during classification.",
})
