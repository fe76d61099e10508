package payout

import "github.com/shopspring/decimal"

// Summary aggregates one computation run for reporting. It never feeds the
// commitment; it exists so operators can observe over-allocation against
// the nominal pool.
type Summary struct {
	TotalProfit          decimal.Decimal
	TotalPayout          decimal.Decimal
	AllocationPercentage decimal.Decimal // payout as % of profit, 2 dp
	InvestorCount        int
	TierDistribution     map[string]int
}

// Summarize aggregates the records of one run.
func Summarize(totalProfit decimal.Decimal, records []Record) Summary {
	total := decimal.Zero
	dist := make(map[string]int, 4)
	for i := range records {
		total = total.Add(records[i].FinalAmount)
		dist[records[i].TierID]++
	}

	allocation := decimal.Zero
	if totalProfit.Sign() > 0 {
		allocation = total.Div(totalProfit).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return Summary{
		TotalProfit:          totalProfit,
		TotalPayout:          total.Round(2),
		AllocationPercentage: allocation,
		InvestorCount:        len(records),
		TierDistribution:     dist,
	}
}
