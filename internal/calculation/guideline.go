package calculation

import "github.com/shopspring/decimal"

// childSupportFactors is the guideline percentage-of-net-resources table.
// Rows are indexed by the number of children the obligor supports who are
// not before the court; columns by the number of children before the court
// (column 0 = one child).
var childSupportFactors = factorTable([][]float64{
	{.2000, .2500, .3000, .3500, .4000, .4000, .4000},
	{.1750, .2250, .2738, .3220, .3733, .3771, .3800},
	{.1600, .2063, .2520, .3033, .3543, .3600, .3644},
	{.1475, .1900, .2400, .2900, .3400, .3467, .3520},
	{.1360, .1833, .2314, .2800, .3289, .3360, .3418},
	{.1333, .1786, .2250, .2722, .3200, .3273, .3333},
	{.1314, .1750, .2200, .2660, .3127, .3200, .3262},
	{.1300, .1722, .2160, .2609, .3067, .3138, .3200},
})

func factorTable(rows [][]float64) [][]decimal.Decimal {
	table := make([][]decimal.Decimal, len(rows))
	for i, row := range rows {
		table[i] = make([]decimal.Decimal, len(row))
		for j, f := range row {
			table[i][j] = decimal.NewFromFloat(f)
		}
	}
	return table
}

// clampIndex keeps idx inside [0, n). Out-of-range lookups fall back to the
// nearest edge of the table instead of failing.
func clampIndex(idx, n int) int {
	if idx >= n {
		return n - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// GuidelineFactor returns the table entry for the given row and column,
// clamping both to the table bounds.
func GuidelineFactor(notBeforeCourt, column int) decimal.Decimal {
	row := childSupportFactors[clampIndex(notBeforeCourt, len(childSupportFactors))]
	return row[clampIndex(column, len(row))]
}

// StepdownAmount scales the initial payment to a new roster size. The
// initial amount is treated as the initial child count's share of the
// obligor's net resources; the result is the share for remainingCount+1
// children, i.e. the amount owed while the child being removed is still
// counted. The result is rounded to cents with banker's rounding.
func StepdownAmount(initial decimal.Decimal, initialCount, remainingCount, notBeforeCourt int) decimal.Decimal {
	initialFactor := GuidelineFactor(notBeforeCourt, initialCount-1)
	newFactor := GuidelineFactor(notBeforeCourt, remainingCount)
	return initial.Mul(newFactor).Div(initialFactor).RoundBank(2)
}
