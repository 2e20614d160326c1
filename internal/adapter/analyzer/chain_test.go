package analyzer

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowercaseFilter(t *testing.T) {
	tokens, err := Collect(NewLowercaseFilter(NewSliceStream("De", "KAT", "Één")))
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "kat", "één"}, Texts(tokens))
}

func TestStopFilter_Defaults(t *testing.T) {
	tokens, err := Collect(NewStopFilter(NewSliceStream("de", "kat", "zat", "op", "de", "mat"), nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"kat", "zat", "mat"}, Texts(tokens))
	assert.Equal(t, []int{1, 2, 5}, positions(tokens))
}

func TestStopFilter_CustomList(t *testing.T) {
	tokens, err := Collect(NewStopFilter(NewSliceStream("de", "kat", "zat"), []string{"kat"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "zat"}, Texts(tokens))
}

func TestStopFilter_CaseSensitive(t *testing.T) {
	tokens, err := Collect(NewStopFilter(NewSliceStream("De", "de"), nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"De"}, Texts(tokens))
}

func TestChain_PropagatesFailure(t *testing.T) {
	errBoom := errors.New("boom")
	up := &scriptedStream{texts: []string{"De", "-", "Kat"}, failAt: 4, err: errBoom}
	chain := NewStopFilter(NewLowercaseFilter(NewPunctuationFilter(up)), nil)

	tok, err := chain.Next()
	require.NoError(t, err)
	assert.Equal(t, "kat", tok.Text)

	_, err = chain.Next()
	assert.Same(t, errBoom, err)
	_, err = chain.Next()
	assert.Same(t, errBoom, err)
	assert.Equal(t, 4, up.pulls)
}

func TestAll_StopsEarly(t *testing.T) {
	up := &scriptedStream{texts: []string{"a", "b", "c"}}

	var got []string
	for tok, err := range All(up) {
		require.NoError(t, err)
		got = append(got, tok.Text)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 2, up.pulls)
}

func TestAll_YieldsFailureOnce(t *testing.T) {
	errBoom := errors.New("boom")
	up := &scriptedStream{texts: []string{"a"}, failAt: 2, err: errBoom}

	var errs []error
	var texts []string
	for tok, err := range All(up) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"a"}, texts)
	assert.Equal(t, []error{errBoom}, errs)
}

func TestCollect_ReturnsPartial(t *testing.T) {
	errBoom := errors.New("boom")
	tokens, err := Collect(&scriptedStream{texts: []string{"a", "b"}, failAt: 3, err: errBoom})
	assert.Same(t, errBoom, err)
	assert.Equal(t, []string{"a", "b"}, Texts(tokens))
}

func TestCollect_Empty(t *testing.T) {
	tokens, err := Collect(NewSliceStream())
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = NewSliceStream().Next()
	assert.ErrorIs(t, err, io.EOF)
}
