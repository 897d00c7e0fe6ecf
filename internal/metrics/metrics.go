package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation results recorded by the store.
const (
	ResultOK        = "ok"
	ResultRejected  = "rejected"
	ResultCancelled = "cancelled"
	ResultFailed    = "failed"
)

// Recorder receives counts of timetable operations.
type Recorder interface {
	// Operation counts one store operation ("add", "update", ...) and its result.
	Operation(op, result string)
	// Conflict counts one rejected overlap.
	Conflict()
}

// Nop is a Recorder that records nothing.
type Nop struct{}

func (Nop) Operation(string, string) {}
func (Nop) Conflict()                {}

// Prometheus records operations as Prometheus counters.
type Prometheus struct {
	operations *prometheus.CounterVec
	conflicts  prometheus.Counter
}

// NewPrometheus creates the counters and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyflow",
			Name:      "store_operations_total",
			Help:      "Timetable store operations by operation and result.",
		}, []string{"op", "result"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studyflow",
			Name:      "conflicts_total",
			Help:      "Entries rejected because they overlap an existing entry.",
		}),
	}

	for _, c := range []prometheus.Collector{p.operations, p.conflicts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) Operation(op, result string) {
	p.operations.WithLabelValues(op, result).Inc()
}

func (p *Prometheus) Conflict() {
	p.conflicts.Inc()
}
