package sequence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		aa   string
		want string
	}{
		{"hydrophobic set", "VIFLMCW", "HHHHHHH"},
		{"polar set", "DEKRYSTNQGA", "PPPPPPPPPPP"},
		{"mixed lower case with spaces", "mkv la", "HPHHP"},
		{"histidine is polar", "HVL", "PHH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Classify(tt.aa)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.String())
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	tests := []struct {
		name    string
		aa      string
		wantMsg string
	}{
		{"empty", "  ", "empty"},
		{"pure HP is ambiguous", "HPPH", "--hp"},
		{"unknown letter", "MKXV", "position 3"},
		{"digit", "MK1", "position 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.aa)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestIsHPString(t *testing.T) {
	assert.True(t, IsHPString("hp HP"))
	assert.False(t, IsHPString("HPA"))
	assert.False(t, IsHPString(""))
}

func TestReadFASTA_SkipsHeadersAndComments(t *testing.T) {
	in := ">sp|P69905|HBA_HUMAN\n;comment\nMVLS\n  PADK\n\n>second\nTNVK\n"
	got, err := ReadFASTA(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "MVLSPADKTNVK", got)
}

func TestReadFASTA_NoResidues(t *testing.T) {
	_, err := ReadFASTA(strings.NewReader(">header only\n"))
	assert.Error(t, err)
}

func TestParse_FileOrRaw(t *testing.T) {
	// GIVEN a FASTA file on disk
	path := filepath.Join(t.TempDir(), "in.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">x\nMKV\nLA\n"), 0o644))

	// WHEN parsed by path and as a raw string
	fromFile, err := Parse(path)
	require.NoError(t, err)
	raw, err := Parse("MKVLA")
	require.NoError(t, err)

	// THEN both classify identically
	assert.Equal(t, "HPHHP", fromFile.String())
	assert.Equal(t, raw, fromFile)
}
