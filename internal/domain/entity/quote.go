package entity

// MinSwapAmount is the smallest amount a swap can be quoted for.
const MinSwapAmount = 0.01

// Quote is the result of converting Amount of From into To at current prices.
type Quote struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	// Rate is the number of To units received for one unit of From.
	Rate            float64 `json:"rate"`
	Result          float64 `json:"result"`
	FormattedResult string  `json:"formattedResult"`
}
