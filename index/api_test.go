package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckK(t *testing.T) {
	assert.NoError(t, CheckK(1, 5))
	assert.NoError(t, CheckK(5, 5))
	assert.ErrorIs(t, CheckK(0, 5), ErrInvalidK)
	assert.ErrorIs(t, CheckK(-1, 5), ErrInvalidK)
	assert.ErrorIs(t, CheckK(6, 5), ErrTooFewPoints)
}

func TestSort(t *testing.T) {
	neighbors := []Neighbor{
		{Index: 4, Distance: 2},
		{Index: 3, Distance: 1},
		{Index: 0, Distance: 2},
		{Index: 1, Distance: 0.5},
	}
	Sort(neighbors)
	assert.Equal(t, []Neighbor{
		{Index: 1, Distance: 0.5},
		{Index: 3, Distance: 1},
		{Index: 0, Distance: 2},
		{Index: 4, Distance: 2},
	}, neighbors)
}

func TestParseKind(t *testing.T) {
	var testCases = []struct {
		input  string
		expect Kind
	}{
		{input: "", expect: KindAuto},
		{input: "auto", expect: KindAuto},
		{input: "Cover", expect: KindCover},
		{input: "brute", expect: KindBruteForce},
		{input: "bruteforce", expect: KindBruteForce},
		{input: "vptree", expect: KindVPTree},
		{input: "sql", expect: KindSQL},
	}
	for _, testCase := range testCases {
		actual, err := ParseKind(testCase.input)
		require.NoError(t, err, testCase.input)
		assert.Equal(t, testCase.expect, actual, testCase.input)
	}
	_, err := ParseKind("hnsw")
	assert.Error(t, err)
}
