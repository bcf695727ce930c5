// Package sequence turns amino-acid input (raw or FASTA) into HP sequences.
package sequence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hpfold/hpfold/sim"
)

// Strict classification table. Any other letter is rejected.
const (
	hydrophobicLetters = "VIFLMCW"
	polarLetters       = "DEKRHYSTNQGAP"
)

var aaToHP = func() map[rune]sim.Residue {
	m := make(map[rune]sim.Residue, len(hydrophobicLetters)+len(polarLetters))
	for _, r := range hydrophobicLetters {
		m[r] = sim.Hydrophobic
	}
	for _, r := range polarLetters {
		m[r] = sim.Polar
	}
	return m
}()

// IsHPString reports whether s (ignoring case and whitespace) consists only
// of H and P letters.
func IsHPString(s string) bool {
	s = normalize(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != 'H' && r != 'P' {
			return false
		}
	}
	return true
}

// Classify converts an amino-acid sequence to HP classes.
// H = {V,I,F,L,M,C,W}; P = {D,E,K,R,H,Y,S,T,N,Q,G,A,P}. Input made only
// of H and P letters is rejected as ambiguous (histidine vs hydrophobic);
// pass such sequences with sim.ParseSequence instead.
func Classify(aa string) (sim.Sequence, error) {
	s := normalize(aa)
	if s == "" {
		return nil, fmt.Errorf("empty amino-acid sequence")
	}
	if IsHPString(s) {
		return nil, fmt.Errorf("input %q looks like an HP sequence; provide amino acids or use --hp", s)
	}
	seq := make(sim.Sequence, 0, len(s))
	for i, r := range s {
		hp, ok := aaToHP[r]
		if !ok {
			return nil, fmt.Errorf("invalid amino acid %q at position %d; H={%s}, P={%s}",
				r, i+1, strings.Join(strings.Split(hydrophobicLetters, ""), ","), strings.Join(strings.Split(polarLetters, ""), ","))
		}
		seq = append(seq, hp)
	}
	return seq, nil
}

// ReadFASTA concatenates the residue lines of every record in r. Header
// lines start with '>' and comment lines with ';'.
func ReadFASTA(r io.Reader) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ">") || strings.HasPrefix(line, ";") {
			continue
		}
		b.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading FASTA: %w", err)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no sequence found in FASTA input")
	}
	return b.String(), nil
}

// Parse accepts a path to a FASTA file or a raw amino-acid string.
func Parse(input string) (sim.Sequence, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("opening FASTA %s: %w", input, err)
		}
		defer func() { _ = f.Close() }()
		aa, err := ReadFASTA(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input, err)
		}
		return Classify(aa)
	}
	return Classify(input)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), "")
}
