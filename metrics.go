package logbook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbook_records_written_total",
		Help: "The total number of records persisted per destination",
	}, []string{"destination"})

	recordsEvicted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbook_records_evicted_total",
		Help: "The total number of records dropped by FIFO eviction",
	}, []string{"destination"})

	recordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbook_records_dropped_total",
		Help: "The total number of records dropped because the write queue was full",
	}, []string{"destination"})

	ioErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbook_io_errors_total",
		Help: "The total number of swallowed I/O and publish errors",
	}, []string{"destination"})
)
