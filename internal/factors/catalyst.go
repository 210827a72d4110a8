package factors

import (
	"strings"
	"time"

	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
)

// farFutureDays stands in for an absent or unparseable earnings date so
// the earnings-window boost never triggers on bad data.
const farFutureDays = 999

// CatalystScore derives a news/event score: keyword sentiment averaged per
// article, floored near earnings, boosted by major positive headlines, and
// capped by major negative ones. asOf anchors the earnings-window check so
// an analysis is reproducible.
func CatalystScore(cfg *config.Config, news []domain.NewsItem, profile domain.Profile, asOf time.Time) float64 {
	cc := cfg.Catalyst

	score := newsSentiment(news, cc.Keywords)

	if profile.NextEarningsDate != "" {
		days := daysUntil(profile.NextEarningsDate, asOf)
		if abs(days) <= cc.EarningsWindowDays {
			if score < cc.EarningsBoost {
				score = cc.EarningsBoost
			}
		}
	}

	if matchesAny(news, cc.Keywords.MajorPositive) {
		score += cc.PRBonus
		if score > 100 {
			score = 100
		}
	}

	if matchesAny(news, cc.Keywords.MajorNegative) && score > cc.NegativeCap {
		score = cc.NegativeCap
	}

	return clipScore(score)
}

// newsSentiment scores each article by its positive-to-negative keyword
// ratio and averages across articles. No news, or an article with no
// keyword hits, is neutral.
func newsSentiment(news []domain.NewsItem, lex config.Lexicon) float64 {
	if len(news) == 0 {
		return 50
	}

	total := 0.0
	for _, item := range news {
		text := strings.ToLower(item.Title + " " + item.Text)

		pos := countMatches(text, lex.Positive)
		neg := countMatches(text, lex.Negative)

		if pos+neg == 0 {
			total += 50
			continue
		}
		total += float64(pos) / float64(pos+neg) * 100
	}
	return total / float64(len(news))
}

func countMatches(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			n++
		}
	}
	return n
}

func matchesAny(news []domain.NewsItem, keywords []string) bool {
	for _, item := range news {
		text := strings.ToLower(item.Title + " " + item.Text)
		for _, kw := range keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// daysUntil parses an ISO date and returns whole days relative to asOf.
// Malformed dates read as far future.
func daysUntil(date string, asOf time.Time) int {
	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return farFutureDays
	}
	return int(target.Sub(asOf).Hours() / 24)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
