package metrics

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agencia-dev/agencia/internal/ledger"
)

const namespace = "agencia"

// Collector records transaction attempts observed by a ledger.Bank.
type Collector struct {
	registry     *prometheus.Registry
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	balance      *prometheus.GaugeVec
	logger       *slog.Logger
}

// NewCollector creates a Collector with its own registry.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		transactions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transaction attempts by kind and outcome",
		}, []string{"kind", "outcome"}),
		volume: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_amount_total",
			Help:      "Sum of accepted transaction amounts by kind",
		}, []string{"kind"}),
		balance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "account_balance",
			Help:      "Current account balance",
		}, []string{"account"}),
		logger: logger,
	}
}

// TransactionObserved implements ledger.Observer.
func (c *Collector) TransactionObserved(ev ledger.Event) {
	outcome := ledger.Reason(ev.Err)
	kind := string(ev.Kind)

	c.transactions.WithLabelValues(kind, outcome).Inc()
	c.balance.WithLabelValues(strconv.Itoa(ev.Account)).Set(ev.Balance.InexactFloat64())
	if ev.Err == nil {
		c.volume.WithLabelValues(kind).Add(ev.Amount.InexactFloat64())
	}

	c.logger.Debug("transaction observed",
		slog.String("kind", kind),
		slog.String("outcome", outcome),
		slog.Int("account", ev.Account))
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Count is the number of attempts with a given kind and outcome.
type Count struct {
	Kind    string
	Outcome string
	Value   int
}

// Summary aggregates the transaction counters of a session.
type Summary struct {
	Counts   []Count // sorted by kind, then outcome
	Accepted int
	Rejected int
}

// Summary gathers the registry and tallies transaction attempts.
func (c *Collector) Summary() (Summary, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return Summary{}, fmt.Errorf("gathering metrics: %w", err)
	}

	var s Summary
	for _, mf := range families {
		if mf.GetName() != namespace+"_transactions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var cnt Count
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "kind":
					cnt.Kind = lp.GetValue()
				case "outcome":
					cnt.Outcome = lp.GetValue()
				}
			}
			cnt.Value = int(m.GetCounter().GetValue())
			if cnt.Outcome == ledger.Reason(nil) {
				s.Accepted += cnt.Value
			} else {
				s.Rejected += cnt.Value
			}
			s.Counts = append(s.Counts, cnt)
		}
	}

	sort.Slice(s.Counts, func(i, j int) bool {
		if s.Counts[i].Kind != s.Counts[j].Kind {
			return s.Counts[i].Kind < s.Counts[j].Kind
		}
		return s.Counts[i].Outcome < s.Counts[j].Outcome
	})
	return s, nil
}
