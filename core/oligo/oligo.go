// core/oligo/oligo.go
package oligo

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['a'] = 'T'
	complement['c'] = 'G'
	complement['g'] = 'C'
	complement['t'] = 'A'
}

// RevComp returns the upper-case reverse complement of seq.
// Bytes outside A/C/G/T (either case) become 'N'.
func RevComp(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
