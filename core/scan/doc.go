// Package scan proposes, for every position of a sequence, a primer ending
// just before that position.
//
// For each position i the candidate lengths are [MinLength, min(i, MaxLength)).
// Each candidate's melting temperature comes from a Melter; the chosen length
// is the one whose Tm meets the target and is closest to it (or simply the
// shortest qualifying one, see Pick). The chosen primer is then folded once by
// a Folder. Positions where no candidate reaches the target yield a sentinel
// Record (length 0, ΔG −Inf, no Tm); that is expected, not an error.
//
// The package is synchronous and holds no state between calls.
package scan
