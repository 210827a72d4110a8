package factors

import "github.com/momentum33/stock-analysis-system/internal/domain"

// OptionsScore is the auxiliary options-sentiment factor. Unlike the
// percentile factors it is an additive point system: up to 4 points for a
// bullish put/call ratio, 3 for a tradeable ATM IV band, 2 for total
// volume, and 1 for positive net delta, capped at 10. No options data
// scores 0 rather than neutral, so thin chains never inflate a rank.
func OptionsScore(opt *domain.OptionsSnapshot) float64 {
	if opt == nil {
		return 0
	}

	score := 0.0

	if opt.PutCallRatio != nil {
		pc := *opt.PutCallRatio
		switch {
		case pc < 0.7:
			score += 4.0
		case pc < 0.85:
			score += 3.0
		case pc < 1.0:
			score += 2.0
		case pc < 1.2:
			score += 1.5
		case pc < 1.5:
			score += 1.0
		}
	}

	if opt.ATMImpliedVol != nil {
		iv := *opt.ATMImpliedVol
		if iv < 1 {
			// Providers report IV either as a fraction or a percentage.
			iv *= 100
		}
		switch {
		case iv >= 20 && iv <= 40:
			score += 3.0
		case iv > 40 && iv <= 50:
			score += 2.0
		case (iv >= 15 && iv < 20) || (iv > 50 && iv <= 60):
			score += 1.0
		default:
			score += 0.5
		}
	}

	totalVol := opt.TotalCallVolume + opt.TotalPutVolume
	switch {
	case totalVol > 10000:
		score += 2.0
	case totalVol > 5000:
		score += 1.5
	case totalVol > 1000:
		score += 1.0
	case totalVol > 100:
		score += 0.5
	}

	switch {
	case opt.NetDelta > 100:
		score += 1.0
	case opt.NetDelta > 0:
		score += 0.7
	case opt.NetDelta > -100:
		score += 0.3
	}

	if score > 10 {
		score = 10
	}
	return score
}
