package workflow

import "strings"

// Trade eligibility for technician assignment
//
// Trades are a controlled vocabulary plus an "Other: ..." free-text escape
// hatch. Assignment accepts a technician when either side is unspecified,
// the technician covers all trades, the technician's trade is a custom
// entry, or the trades match. One legacy equivalence remains: Handyman
// technicians may take General work orders.

func normalizeTrade(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EligibleForTrade reports whether a technician with techTrade may be
// assigned to a work order with woTrade.
func EligibleForTrade(techTrade, woTrade string) bool {
	t := normalizeTrade(techTrade)
	w := normalizeTrade(woTrade)

	if t == "" || w == "" {
		return true
	}
	if t == "all trades" {
		return true
	}
	if strings.HasPrefix(t, "other:") {
		return true
	}
	if w == "general" && t == "handyman" {
		return true
	}

	return t == w
}

// ResolveTrade converts the trade-picker pair (selection plus optional
// custom text) into the stored trade value. A custom entry is stored as
// "Other: <text>" so it stays recognizable to EligibleForTrade.
func ResolveTrade(trade, tradeOther string) string {
	if trade == "Other (Custom)" {
		if v := SanitizeText(tradeOther, 60); v != "" {
			return "Other: " + v
		}
		return "Other"
	}
	return SanitizeText(trade, 60)
}
