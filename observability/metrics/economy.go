package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// EconomyMetrics tracks the activity of the native economic modules.
type EconomyMetrics struct {
	transfers      prometheus.Counter
	feesCollected  prometheus.Counter
	circulating    prometheus.Gauge
	proposals      *prometheus.CounterVec
	votes          prometheus.Counter
	executions     *prometheus.CounterVec
	modelSales     prometheus.Counter
	modelVolume    prometheus.Counter
	totalStaked    prometheus.Gauge
	rewardsClaimed prometheus.Counter
}

var (
	economyOnce     sync.Once
	economyRegistry *EconomyMetrics
)

// Economy returns the process-wide economy metrics, registering the
// collectors on first use.
func Economy() *EconomyMetrics {
	economyOnce.Do(func() {
		economyRegistry = &EconomyMetrics{
			transfers: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "token_transfers_total",
				Help: "Count of fee-bearing token transfers.",
			}),
			feesCollected: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "token_fees_collected_total",
				Help: "Cumulative transfer fees routed to the treasury, in base units.",
			}),
			circulating: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "token_circulating_supply",
				Help: "Current circulating supply in base units.",
			}),
			proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "governance_proposals_total",
				Help: "Count of proposals created by type.",
			}, []string{"type"}),
			votes: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "governance_votes_total",
				Help: "Count of ballots cast.",
			}),
			executions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "governance_executions_total",
				Help: "Count of proposal executions by outcome.",
			}, []string{"outcome"}),
			modelSales: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "marketplace_sales_total",
				Help: "Count of completed model purchases.",
			}),
			modelVolume: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "marketplace_volume_total",
				Help: "Cumulative purchase volume in base units.",
			}),
			totalStaked: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "staking_total_staked",
				Help: "Principal currently locked in the staking pool, in base units.",
			}),
			rewardsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "staking_rewards_claimed_total",
				Help: "Cumulative staking rewards paid out, in base units.",
			}),
		}
		prometheus.MustRegister(
			economyRegistry.transfers,
			economyRegistry.feesCollected,
			economyRegistry.circulating,
			economyRegistry.proposals,
			economyRegistry.votes,
			economyRegistry.executions,
			economyRegistry.modelSales,
			economyRegistry.modelVolume,
			economyRegistry.totalStaked,
			economyRegistry.rewardsClaimed,
		)
	})
	return economyRegistry
}

func (m *EconomyMetrics) ObserveTransfer(fee float64) {
	if m == nil {
		return
	}
	m.transfers.Inc()
	if fee > 0 {
		m.feesCollected.Add(fee)
	}
}

func (m *EconomyMetrics) SetCirculatingSupply(supply float64) {
	if m == nil {
		return
	}
	m.circulating.Set(supply)
}

func (m *EconomyMetrics) ObserveProposal(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.proposals.WithLabelValues(kind).Inc()
}

func (m *EconomyMetrics) ObserveVote() {
	if m == nil {
		return
	}
	m.votes.Inc()
}

func (m *EconomyMetrics) ObserveExecution(outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.executions.WithLabelValues(outcome).Inc()
}

func (m *EconomyMetrics) ObserveSale(volume float64) {
	if m == nil {
		return
	}
	m.modelSales.Inc()
	if volume > 0 {
		m.modelVolume.Add(volume)
	}
}

func (m *EconomyMetrics) SetTotalStaked(total float64) {
	if m == nil {
		return
	}
	m.totalStaked.Set(total)
}

func (m *EconomyMetrics) ObserveRewardsClaimed(amount float64) {
	if m == nil {
		return
	}
	if amount > 0 {
		m.rewardsClaimed.Add(amount)
	}
}
