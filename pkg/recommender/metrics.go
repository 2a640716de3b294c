package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var enhancerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "vm_recommender_enhancer_failures_total",
	Help: "Number of enhancer calls that failed and fell back to the deterministic baseline.",
}, []string{"operation"})
