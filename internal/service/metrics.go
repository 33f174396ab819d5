package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CreditsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "read_credits_total",
			Help: "Total read credits awarded",
		},
	)
	DuplicateCreditsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "read_credits_duplicate_total",
			Help: "Credit attempts rejected by the per-(user,post) read marker",
		},
	)
	CreditFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "read_credit_failures_total",
			Help: "Credit operations that failed on persistence",
		},
	)
	LevelUpsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "level_ups_total",
			Help: "Level transitions produced by read credits",
		},
	)
	AchievementUnlocksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_unlocks_total",
			Help: "Achievement unlocks by achievement id",
		},
		[]string{"achievement"},
	)
)

func init() {
	prometheus.MustRegister(CreditsTotal)
	prometheus.MustRegister(DuplicateCreditsTotal)
	prometheus.MustRegister(CreditFailuresTotal)
	prometheus.MustRegister(LevelUpsTotal)
	prometheus.MustRegister(AchievementUnlocksTotal)
}
