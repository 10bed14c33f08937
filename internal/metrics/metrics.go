// Package metrics holds the node's Prometheus collectors. Counters and
// histograms are grouped by the component that owns them, mirroring the
// common_apm::metrics call sites in the original consensus adapter. Only
// ConsensusRPC and ConsensusExecLatency are updated, by internal/consensus;
// the mempool and proof collectors are registered but no code updates them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MempoolAdmission counts Insert outcomes by result ("ok", "dup",
	// "reach_limit", "rejected").
	MempoolAdmission = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corechain",
		Subsystem: "mempool",
		Name:      "admission_total",
		Help:      "Transaction admission attempts by outcome.",
	}, []string{"result"})

	// MempoolPoolDepth reports the current ordinary-queue depth.
	MempoolPoolDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "corechain",
		Subsystem: "mempool",
		Name:      "pool_depth",
		Help:      "Current number of transactions held in the ordinary queue.",
	})

	// MempoolPackageLatency times Package calls.
	MempoolPackageLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "corechain",
		Subsystem: "mempool",
		Name:      "package_latency_seconds",
		Help:      "Latency of PriorityPool.Package calls.",
		Buckets:   prometheus.DefBuckets,
	})

	// MempoolFlushLatency times Flush calls.
	MempoolFlushLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "corechain",
		Subsystem: "mempool",
		Name:      "flush_latency_seconds",
		Help:      "Latency of PriorityPool.Flush calls.",
		Buckets:   prometheus.DefBuckets,
	})

	// ConsensusRPC counts outbound peer RPC calls by endpoint and outcome.
	ConsensusRPC = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corechain",
		Subsystem: "consensus",
		Name:      "rpc_total",
		Help:      "Outbound consensus RPC calls by endpoint and outcome.",
	}, []string{"endpoint", "result"})

	// ConsensusExecLatency times ConsensusAdapter.Exec calls.
	ConsensusExecLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "corechain",
		Subsystem: "consensus",
		Name:      "exec_latency_seconds",
		Help:      "Latency of block execution via the blocking worker pool.",
		Buckets:   prometheus.DefBuckets,
	})

	// ProofVerification counts VerifyProof outcomes by failing field
	// ("" for success).
	ProofVerification = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corechain",
		Subsystem: "proof",
		Name:      "verification_total",
		Help:      "Proof verification attempts by outcome field.",
	}, []string{"field"})
)

// MustRegister registers every collector in this package against reg. Call
// once at startup; panics (as prometheus.MustRegister does) on duplicate
// registration, which indicates a wiring bug.
func MustRegister(reg *prometheus.Registry) {
	reg.MustRegister(
		MempoolAdmission,
		MempoolPoolDepth,
		MempoolPackageLatency,
		MempoolFlushLatency,
		ConsensusRPC,
		ConsensusExecLatency,
		ProofVerification,
	)
}
