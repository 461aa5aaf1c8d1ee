package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsCreated counts created transactions partitioned by type
	// and outcome status (PENDING or COMPLETED for auto-completed deposits).
	TransactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playvault",
			Subsystem: "transactions",
			Name:      "created_total",
			Help:      "Total transactions created partitioned by type and status.",
		},
		[]string{"type", "status"},
	)

	// TransactionsApproved counts operator approvals partitioned by type.
	TransactionsApproved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playvault",
			Subsystem: "transactions",
			Name:      "approved_total",
			Help:      "Total transactions approved by an operator.",
		},
		[]string{"type"},
	)

	// TransactionsRejected counts operator rejections.
	TransactionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "playvault",
			Subsystem: "transactions",
			Name:      "rejected_total",
			Help:      "Total transactions rejected by an operator.",
		},
	)

	// TransactionsFlagged counts withdrawals flagged for operator review.
	TransactionsFlagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "playvault",
			Subsystem: "transactions",
			Name:      "flagged_total",
			Help:      "Total withdrawals flagged by the suspicious-activity check.",
		},
	)

	// EngineFailures counts rejected engine operations partitioned by the
	// business-rule class that stopped them.
	EngineFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playvault",
			Subsystem: "transactions",
			Name:      "failures_total",
			Help:      "Total engine operations aborted by a business-rule violation.",
		},
		[]string{"reason"},
	)
)
