package analysis

// KellyFraction computes the optimal fraction of bankroll to stake
// according to the Kelly criterion.
//
// decimalOdds is the total payout multiplier (must be > 1); b = odds - 1 is
// the net odds received on a win. The edge is p*(b+1) - 1. Any position
// with zero or negative edge returns 0; never bet without an edge.
// For valid inputs the result lies in (0, 1] since edge <= b when p <= 1.
func KellyFraction(pWin, decimalOdds float64) float64 {
	if decimalOdds <= 1 {
		return 0
	}
	b := decimalOdds - 1
	edge := pWin*(b+1) - 1
	if edge <= 0 {
		return 0
	}
	return edge / b
}

// StakeSize converts a Kelly fraction into a dollar stake against a
// bankroll, capped at maxBet when maxBet > 0 (0 = no cap).
func StakeSize(bankroll, fraction, maxBet float64) float64 {
	if fraction <= 0 || bankroll <= 0 {
		return 0
	}
	stake := bankroll * fraction
	if maxBet > 0 && stake > maxBet {
		stake = maxBet
	}
	return stake
}
