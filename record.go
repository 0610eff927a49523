package extsort

import "github.com/Siarh199/external-sorter/internal/numeric"

// Number is the set of fixed-width numeric kinds the sorter can operate on.
// It is re-exported from internal/numeric so both this package and the
// merge package share one definition without an import cycle between them.
type Number = numeric.Number

func sizeOfRecord[N Number]() int           { return numeric.SizeOf[N]() }
func roundDownToRecord[N Number](x int) int { return numeric.RoundDown[N](x) }
func recordsAsBytes[N Number](r []N) []byte { return numeric.AsBytes(r) }
