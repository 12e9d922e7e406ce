// Package metrics counts what a run did and writes it in the prometheus
// text format, so a cron job or node_exporter's textfile collector can
// pick it up. Nothing is served over http.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrew-torda/pdbclean/pdb/resfix"
)

const namespace = "pdbclean"

// Metrics has its own registry, so tests and batch jobs do not collide
// in the global one. All methods may be called from many goroutines.
type Metrics struct {
	reg      *prometheus.Registry
	files    *prometheus.CounterVec
	records  prometheus.Counter
	residues prometheus.Counter
	renames  *prometheus.CounterVec
	duration prometheus.Histogram
}

// New registers everything in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files converted, by outcome",
		}, []string{"status"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "ATOM and HETATM records written",
		}),
		residues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "residues_total",
			Help:      "Residues looked at by the renaming rules",
		}),
		renames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renames_total",
			Help:      "Residues and atoms renamed, by new name",
		}, []string{"name"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "convert_duration_seconds",
			Help:      "Time to read, fix and write one file",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		}),
	}
	m.reg.MustRegister(m.files, m.records, m.residues, m.renames, m.duration)
	return m
}

// Registry is for the tests and for anyone who wants to gather by hand.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Converted records a file that went through.
func (m *Metrics) Converted(nrec int, rep resfix.Report, took time.Duration) {
	m.files.WithLabelValues("ok").Inc()
	m.records.Add(float64(nrec))
	m.residues.Add(float64(rep.NResidue))
	for name, n := range rep.Renames {
		m.renames.WithLabelValues(name).Add(float64(n))
	}
	if rep.NOC1 > 0 {
		m.renames.WithLabelValues("OC1").Add(float64(rep.NOC1))
	}
	if rep.NOC2 > 0 {
		m.renames.WithLabelValues("OC2").Add(float64(rep.NOC2))
	}
	m.duration.Observe(took.Seconds())
}

// Failed records a file that could not be converted.
func (m *Metrics) Failed() { m.files.WithLabelValues("error").Inc() }

// WriteFile writes everything to fname. Nothing happens if fname is "".
// The prometheus library writes a temporary file and renames it, so a
// reader never sees half a file.
func (m *Metrics) WriteFile(fname string) error {
	if fname == "" {
		return nil
	}
	return prometheus.WriteToTextfile(fname, m.reg)
}
