package model

import "github.com/guregu/null/v6"

// PerformanceRow holds one symbol's percentage change per look-back window.
// An invalid value means no anchor price was available for that window.
type PerformanceRow struct {
	Symbol  string
	Changes map[string]null.Float
}
