// core/thermo/nn.go
// Nearest-neighbor melting temperature for DNA/DNA duplexes
// (Allawi & SantaLucia 1997 table). Units: ΔH in kcal/mol, ΔS in cal/(K·mol),
// concentrations in mM (ions) and nM (oligo). Tm in °C.
//
// Steps:
//  1) Initiation: per terminal A·T / G·C pair.
//  2) Sum per-stack ΔH/ΔS over the duplex.
//  3) Salt correction to ΔS: 0.368·(N−1)·ln[Mon], Mon the Na+ equivalent
//     of Na, K, Tris and free Mg2+ (von Ahsen 2001).
//  4) Two-state Tm (K): Tm = ΔH·1000 / (ΔS + R·ln k) − 273.15 (°C).
//
// This package has no app/output deps; scan can import it cleanly.

package thermo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// Gas constant in cal/(K·mol)
	Rcal = 1.987
)

// NNParams holds nearest-neighbor propagation parameters.
type NNParams struct {
	DH float64 // kcal/mol
	DS float64 // cal/(K·mol)
}

// Watson–Crick propagation parameters (1 M Na+), "top/bottom" with the bottom
// strand written 3'→5'. Allawi & SantaLucia (1997).
var dimerParams = map[string]NNParams{
	"AA/TT": {-7.9, -22.2},
	"AT/TA": {-7.2, -20.4},
	"TA/AT": {-7.2, -21.3},
	"CA/GT": {-8.5, -22.7},
	"GT/CA": {-8.4, -22.4},
	"CT/GA": {-7.8, -21.0},
	"GA/CT": {-8.2, -22.2},
	"CG/GC": {-10.6, -27.2},
	"GC/CG": {-9.8, -24.4},
	"GG/CC": {-8.0, -19.9},
}

// Initiation (1 M Na+).
var (
	termAT = NNParams{+2.3, +4.1} // per terminal A·T pair
	termGC = NNParams{+0.1, -2.8} // per terminal G·C pair
)

// Conditions describes the solution. Ions are millimolar, Oligo is nanomolar.
type Conditions struct {
	Na    float64
	K     float64
	Tris  float64
	Mg    float64
	DNTPs float64
	Oligo float64
}

// DefaultConditions mirrors the command-line defaults.
func DefaultConditions() Conditions {
	return Conditions{Na: 50, K: 0, Tris: 0, Mg: 2, DNTPs: 0.2, Oligo: 500}
}

// Result reports ΔH/ΔS (1 M and salt-corrected) and Tm.
type Result struct {
	DH_kcal float64 // total ΔH (kcal/mol)
	DS_cal  float64 // total ΔS at 1 M (cal/K·mol)
	DS_Na   float64 // ΔS corrected for salt (cal/K·mol)
	TmC     float64 // melting temperature (°C)
}

// NaEquivalent returns the monovalent-equivalent concentration in mol/L.
// Free Mg2+ (Mg − dNTPs) contributes 120·√[Mg] when any of K, Mg, Tris or
// dNTPs is set and Mg exceeds dNTPs.
func (c Conditions) NaEquivalent() float64 {
	mon := c.Na + c.K + c.Tris/2.0
	if c.K+c.Mg+c.Tris+c.DNTPs > 0 && c.DNTPs < c.Mg {
		mon += 120 * math.Sqrt(c.Mg-c.DNTPs)
	}
	return mon * 1e-3
}

// Tm returns the melting temperature (°C) of seq paired with its perfect
// complement. It satisfies scan.Melter.
func (c Conditions) Tm(seq string) (float64, error) {
	r, err := NN(seq, c)
	if err != nil {
		return 0, err
	}
	return r.TmC, nil
}

// NN computes the full nearest-neighbor result for seq (5'→3') against its
// Watson–Crick complement. Only A/C/G/T bases are supported.
func NN(seq string, c Conditions) (Result, error) {
	var out Result

	p := strings.ToUpper(strings.TrimSpace(seq))
	if len(p) < 2 {
		return out, errors.New("Tm: sequence must be at least 2 nt")
	}
	if c.Oligo <= 0 {
		return out, errors.New("Tm: oligo concentration must be > 0")
	}
	mon := c.NaEquivalent()
	if mon <= 0 {
		return out, errors.New("Tm: total ion concentration must be > 0")
	}
	bot, ok := compStrict(p)
	if !ok {
		return out, errors.New("Tm: non-ACGT base in sequence")
	}

	// 1) Terminal initiation.
	n := len(p)
	var DH, DS float64
	for _, b := range []byte{p[0], p[n-1]} {
		if b == 'A' || b == 'T' {
			DH += termAT.DH
			DS += termAT.DS
		} else {
			DH += termGC.DH
			DS += termGC.DS
		}
	}

	// 2) Stacks.
	for i := 0; i < n-1; i++ {
		key := p[i:i+2] + "/" + bot[i:i+2]
		if prm, ok := dimerParams[key]; ok {
			DH += prm.DH
			DS += prm.DS
			continue
		}
		// The same stack read from the other strand.
		if prm, ok := dimerParams[reverse(key)]; ok {
			DH += prm.DH
			DS += prm.DS
			continue
		}
		return out, fmt.Errorf("Tm: missing NN params for dimer %q", key)
	}

	// 3) Salt correction.
	DS_Na := DS + 0.368*float64(n-1)*math.Log(mon)

	// 4) Two-state Tm. The second strand is absent (dnac2 = 0), so k = c1.
	k := c.Oligo * 1e-9
	tmK := (DH * 1000.0) / (DS_Na + Rcal*math.Log(k))
	out.DH_kcal = DH
	out.DS_cal = DS
	out.DS_Na = DS_Na
	out.TmC = tmK - 273.15
	return out, nil
}

// ---------- helpers ----------

func compStrict(s string) (string, bool) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A':
			out[i] = 'T'
		case 'C':
			out[i] = 'G'
		case 'G':
			out[i] = 'C'
		case 'T':
			out[i] = 'A'
		default:
			return "", false
		}
	}
	return string(out), true
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
