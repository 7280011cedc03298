package recurring

// Summary aggregates a set of detected recurring payment groups.
type Summary struct {
	GroupCount       int            `json:"groupCount"`
	MonthlyCost      float64        `json:"monthlyCost"`
	AnnualCost       float64        `json:"annualCost"`
	ByFrequency      map[string]int `json:"byFrequency"`
	UnusedCount      int            `json:"unusedCount"`
	UnusedAnnualCost float64        `json:"unusedAnnualCost"`
}

// Summarize rolls groups up into totals for reporting.
func Summarize(groups []Group) Summary {
	summary := Summary{ByFrequency: make(map[string]int)}
	for _, group := range groups {
		summary.GroupCount++
		summary.AnnualCost += group.AnnualCost
		summary.ByFrequency[group.Frequency]++
		if group.PotentiallyUnused {
			summary.UnusedCount++
			summary.UnusedAnnualCost += group.AnnualCost
		}
	}
	summary.MonthlyCost = round2(summary.AnnualCost / 12)
	summary.AnnualCost = round2(summary.AnnualCost)
	summary.UnusedAnnualCost = round2(summary.UnusedAnnualCost)
	return summary
}
