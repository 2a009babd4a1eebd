package dexapi

import "strconv"

type pairsResponse struct {
	Pairs []Pair `json:"pairs"`
}

// Pair is one DEX trading pair as reported by the aggregator.
type Pair struct {
	DexID       string      `json:"dexId"`
	PairAddress string      `json:"pairAddress"`
	PriceUsd    string      `json:"priceUsd"`
	BaseToken   TokenRef    `json:"baseToken"`
	QuoteToken  TokenRef    `json:"quoteToken"`
	Liquidity   Liquidity   `json:"liquidity"`
	Volume      Windowed    `json:"volume"`
	PriceChange Windowed    `json:"priceChange"`
	Txns        TxnActivity `json:"txns"`
}

// TokenRef identifies one side of a pair.
type TokenRef struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Liquidity holds the pool's reserves in USD and native units.
type Liquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// Windowed holds a metric at the aggregator's standard time windows.
type Windowed struct {
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// TxnActivity holds buy/sell counts per window.
type TxnActivity struct {
	H24 BuySell `json:"h24"`
}

// BuySell is a buy/sell transaction count pair.
type BuySell struct {
	Buys  int64 `json:"buys"`
	Sells int64 `json:"sells"`
}

// Price returns the pair's USD price as a float, zero when unset.
func (p Pair) Price() float64 {
	if p.PriceUsd == "" {
		return 0
	}
	f, err := strconv.ParseFloat(p.PriceUsd, 64)
	if err != nil {
		return 0
	}
	return f
}

// PrimaryPair picks the pair with the deepest USD liquidity. ok is false
// when the token has no pairs.
func PrimaryPair(pairs []Pair) (Pair, bool) {
	if len(pairs) == 0 {
		return Pair{}, false
	}
	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}
	return best, true
}
