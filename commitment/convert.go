package commitment

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// weiDigits is the number of fractional digits in the ledger's native
// unit: 1 ETH = 10^18 wei.
const weiDigits = 18

// UsdToWei converts a USD amount to wei at the given rate (1 USD = rate
// ETH). The ETH value is rounded half away from zero at 18 fractional
// digits before scaling, so the conversion is exact and reproducible.
func UsdToWei(usd, rate decimal.Decimal) *big.Int {
	return usd.Mul(rate).Round(weiDigits).Shift(weiDigits).BigInt()
}

// WeiToUsd converts a wei amount back to USD at the given rate. The result
// carries the division precision of the decimal package and is intended
// for reporting, not for re-deriving commitments.
func WeiToUsd(wei *big.Int, rate decimal.Decimal) decimal.Decimal {
	eth := decimal.NewFromBigInt(wei, -weiDigits)
	return eth.Div(rate)
}
