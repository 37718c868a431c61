package statistics

import (
	"math/big"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/prometheus/client_golang/prometheus"
)

// Data collects node metrics. A nil *Data is valid and records nothing.
type Data struct {
	Operations *prometheus.CounterVec

	Commit commitInfo

	TotalSupplyProm prometheus.Gauge
	FeePoolProm     prometheus.Gauge

	Api apiResponseTime
}

type LastCommitInfo struct {
	Version  int64
	Duration float64
}

type commitInfo struct {
	sync.RWMutex
	VersionProm    prometheus.Gauge
	DurationProm   prometheus.Gauge
	LastCommitInfo LastCommitInfo
}

type apiResponseTime struct {
	sync.Mutex
	responseTime *prometheus.GaugeVec
}

// New creates the collectors and registers them with registerer.
func New(registerer prometheus.Registerer) *Data {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operations_total",
			Help: "Applied ledger operations by result code",
		},
		[]string{"op", "code"},
	)
	apiVec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "api",
			Help: "Api response duration by path",
		},
		[]string{"path"},
	)
	version := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "version",
			Help: "Last committed state version",
		},
	)
	commitDuration := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_commit_duration",
			Help: "Last commit duration",
		},
	)
	totalSupply := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "total_supply",
			Help: "Total supply in tokens",
		},
	)
	feePool := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fee_pool",
			Help: "Fee pool balance in tokens",
		},
	)
	registerer.MustRegister(operations, apiVec, version, commitDuration, totalSupply, feePool)

	return &Data{
		Operations:      operations,
		Commit:          commitInfo{VersionProm: version, DurationProm: commitDuration},
		TotalSupplyProm: totalSupply,
		FeePoolProm:     feePool,
		Api:             apiResponseTime{responseTime: apiVec},
	}
}

// ObserveOperation counts an applied or rejected operation.
func (d *Data) ObserveOperation(op string, err error) {
	if d == nil {
		return
	}

	d.Operations.With(prometheus.Labels{"op": op, "code": code.Name(code.CodeOf(err))}).Inc()
}

// SetBalances updates the supply and pool gauges. Values are converted to
// whole tokens as floats and lose precision.
func (d *Data) SetBalances(totalSupply, feePool *uint256.Int) {
	if d == nil {
		return
	}

	d.TotalSupplyProm.Set(toTokens(totalSupply))
	d.FeePoolProm.Set(toTokens(feePool))
}

func (d *Data) SetCommit(version int64, duration time.Duration) {
	if d == nil {
		return
	}

	d.Commit.Lock()
	defer d.Commit.Unlock()

	d.Commit.VersionProm.Set(float64(version))
	d.Commit.DurationProm.Set(duration.Seconds())

	d.Commit.LastCommitInfo.Version = version
	d.Commit.LastCommitInfo.Duration = duration.Seconds()
}

func (d *Data) GetLastCommitInfo() LastCommitInfo {
	if d == nil {
		return LastCommitInfo{}
	}

	d.Commit.RLock()
	defer d.Commit.RUnlock()

	return d.Commit.LastCommitInfo
}

func (d *Data) SetApiTime(duration time.Duration, path string) {
	if d == nil {
		return
	}

	d.Api.Lock()
	defer d.Api.Unlock()

	d.Api.responseTime.With(prometheus.Labels{"path": path}).Set(duration.Seconds())
}

func toTokens(v *uint256.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(v.ToBig()), big.NewFloat(1e18)).Float64()
	return f
}
