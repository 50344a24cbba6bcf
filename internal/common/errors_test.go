package common

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformed(t *testing.T) {
	err := Malformed("only %d rows", 12)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Equal(t, "malformed input: only 12 rows", err.Error())

	var mErr *MalformedInputError
	assert.True(t, errors.As(err, &mErr))
	assert.Equal(t, "only 12 rows", mErr.Reason)
}

func TestWrapMalformed(t *testing.T) {
	err := WrapMalformed("reading sheet", io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "reading sheet")
	assert.NotErrorIs(t, err, ErrEmptyLedger)
}
