package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccsa_scans_total",
		Help: "QR scans processed, labelled by outcome.",
	}, []string{"result"})

	scanLockContention = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ccsa_scan_lock_contention_total",
		Help: "Scans rejected because another scan held the per-student day lock.",
	})
)
