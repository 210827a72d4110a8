package factors

import (
	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// VolumeScore blends relative volume, the long-lookback volume percentile
// rank, and the recent high-volume cluster frequency.
func VolumeScore(cfg *config.Config, bars []domain.PriceBar) float64 {
	volumes := domain.Volumes(bars)
	vc := cfg.Volume

	// Today's volume against the trailing average, excluding today.
	relVolPct := 50.0
	if len(volumes) > vc.RelVolPeriod {
		avg := indicators.SMA(volumes[len(volumes)-1-vc.RelVolPeriod : len(volumes)-1])
		relVol := 1.0
		if avg > 0 {
			relVol = volumes[len(volumes)-1] / avg
		}
		relVolPct = percentile.Score(relVol, vc.RelVolLadder)
	}

	// Rank of today's volume within the long lookback window.
	spikePct := 50.0
	lookback := vc.SpikeLookback
	if lookback > len(volumes) {
		lookback = len(volumes)
	}
	if lookback > 20 {
		recent := volumes[len(volumes)-lookback:]
		below := 0
		for _, v := range recent {
			if v < volumes[len(volumes)-1] {
				below++
			}
		}
		spikePct = float64(below) / float64(len(recent)) * 100
	}

	// Fraction of the last cluster-period bars whose volume exceeded the
	// cluster threshold times their own trailing average.
	clusterPct := 50.0
	if len(volumes) > vc.ClusterPeriod+vc.RelVolPeriod {
		count := 0
		for i := 0; i < vc.ClusterPeriod; i++ {
			pos := len(volumes) - 1 - i
			window := volumes[pos-vc.RelVolPeriod : pos]
			avg := indicators.SMA(window)
			if avg > 0 && volumes[pos]/avg > vc.ClusterThreshold {
				count++
			}
		}
		clusterFreq := float64(count) / float64(vc.ClusterPeriod) * 100
		clusterPct = percentile.Score(clusterFreq, vc.ClusterLadder)
	}

	w := vc.Weights
	score := w.RelVol*relVolPct +
		w.SpikePercentile*spikePct +
		w.HVCluster*clusterPct

	return clipScore(score)
}
