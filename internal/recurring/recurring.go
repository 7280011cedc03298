// Package recurring detects repeating payments in a transaction history,
// buckets them by cadence and projects their annual cost. Detection is pure:
// the same transactions and reference time always produce the same groups.
package recurring

import (
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ledgerline/bankstmt-csv/internal/dateutils"
	"ledgerline/bankstmt-csv/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Frequency buckets. Irregular covers repeating payments whose cadence fits
// none of the named windows.
const (
	FrequencyWeekly      = "weekly"
	FrequencyFortnightly = "fortnightly"
	FrequencyMonthly     = "monthly"
	FrequencyQuarterly   = "quarterly"
	FrequencyYearly      = "yearly"
	FrequencyIrregular   = "irregular"
)

// Group is one detected recurring payment.
type Group struct {
	Merchant          string               `json:"merchant"`
	Transactions      []models.Transaction `json:"transactions"`
	Occurrences       int                  `json:"occurrences"`
	AverageAmount     float64              `json:"averageAmount"`
	Frequency         string               `json:"frequency"`
	FrequencyDays     int                  `json:"frequencyDays"`
	AnnualCost        float64              `json:"annualCost"`
	LastPayment       string               `json:"lastPayment"`
	PotentiallyUnused bool                 `json:"potentiallyUnused"`
}

// Options tunes detection. Zero values take the defaults.
type Options struct {
	// AmountVariance is the maximum fractional deviation from the mean
	// amount a member may have. Default 0.10.
	AmountVariance float64
	// MinOccurrences is the minimum number of payments before a merchant
	// counts as recurring. Default 2.
	MinOccurrences int
	// Now anchors the potentially-unused check.
	Now time.Time
}

func (o *Options) fill() {
	if o.AmountVariance <= 0 {
		o.AmountVariance = 0.10
	}
	if o.MinOccurrences <= 0 {
		o.MinOccurrences = 2
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
}

// Detect finds recurring expense payments. Groups come back sorted by
// annual cost, highest first, with the merchant name as tie-break so equal
// inputs always order equally.
func Detect(transactions []models.Transaction, opts Options) []Group {
	opts.fill()

	buckets := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		merchant := NormalizeMerchant(tx.Description)
		if merchant == "" {
			continue
		}
		buckets[merchant] = append(buckets[merchant], tx)
	}

	var groups []Group
	for merchant, members := range buckets {
		group, ok := buildGroup(merchant, members, opts)
		if !ok {
			continue
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].AnnualCost != groups[j].AnnualCost {
			return groups[i].AnnualCost > groups[j].AnnualCost
		}
		return groups[i].Merchant < groups[j].Merchant
	})

	log.WithField("groups", len(groups)).Debug("Detected recurring payments")
	return groups
}

func buildGroup(merchant string, members []models.Transaction, opts Options) (Group, bool) {
	if len(members) < opts.MinOccurrences {
		return Group{}, false
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Date != members[j].Date {
			return members[i].Date < members[j].Date
		}
		return members[i].Description < members[j].Description
	})

	mean := 0.0
	for _, tx := range members {
		mean += tx.AmountAsFloat()
	}
	mean /= float64(len(members))
	if mean <= 0 {
		return Group{}, false
	}
	for _, tx := range members {
		deviation := tx.AmountAsFloat() - mean
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation/mean > opts.AmountVariance {
			return Group{}, false
		}
	}

	gapSum := 0
	for i := 1; i < len(members); i++ {
		gapSum += dateutils.DaysBetween(members[i-1].Date, members[i].Date)
	}
	avgGap := float64(gapSum) / float64(len(members)-1)
	if avgGap <= 0 {
		return Group{}, false
	}

	frequency, frequencyDays := bucketCadence(avgGap)

	annualCost := mean * 365 / float64(frequencyDays)
	last := members[len(members)-1].Date

	return Group{
		Merchant:          merchant,
		Transactions:      members,
		Occurrences:       len(members),
		AverageAmount:     round2(mean),
		Frequency:         frequency,
		FrequencyDays:     frequencyDays,
		AnnualCost:        round2(annualCost),
		LastPayment:       last,
		PotentiallyUnused: daysSince(last, opts.Now) > 2*frequencyDays,
	}, true
}

// bucketCadence maps an average day gap to a named cadence and its nominal
// day count. Gaps that fit no window stay irregular with the observed gap.
func bucketCadence(avgGap float64) (string, int) {
	switch {
	case avgGap >= 4 && avgGap <= 10:
		return FrequencyWeekly, 7
	case avgGap > 10 && avgGap <= 18:
		return FrequencyFortnightly, 14
	case avgGap >= 23 && avgGap <= 37:
		return FrequencyMonthly, 30
	case avgGap >= 75 && avgGap <= 105:
		return FrequencyQuarterly, 91
	case avgGap >= 335 && avgGap <= 395:
		return FrequencyYearly, 365
	default:
		days := int(avgGap + 0.5)
		if days < 1 {
			days = 1
		}
		return FrequencyIrregular, days
	}
}

// merchantNoise lists company-form suffixes that differ between statement
// prints of the same merchant.
var merchantNoise = map[string]bool{
	"ltd": true, "limited": true, "plc": true, "uk": true,
	"inc": true, "corp": true, "co": true, "com": true,
	"the": true,
}

var merchantStrip = strings.NewReplacer(
	".", " ", ",", " ", "*", " ", "-", " ", "/", " ", "'", "",
)

// NormalizeMerchant reduces a raw description to a stable merchant key: the
// first two meaningful lowercase words, with punctuation and company-form
// suffixes removed. "NETFLIX.COM" and "Netflix UK Ltd" normalize to the same
// key.
func NormalizeMerchant(description string) string {
	lower := strings.ToLower(merchantStrip.Replace(description))

	var words []string
	for _, word := range strings.Fields(lower) {
		if merchantNoise[word] {
			continue
		}
		words = append(words, word)
		if len(words) == 2 {
			break
		}
	}
	return strings.Join(words, " ")
}

func daysSince(date string, now time.Time) int {
	return dateutils.DaysBetween(date, now.Format(dateutils.DateLayoutISO))
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
