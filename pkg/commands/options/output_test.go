package options

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleErrorJSON(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}

	err := o.HandleError(boom)
	assert.ErrorIs(t, err, ErrReported)
	assert.ErrorIs(t, err, boom)
	assert.JSONEq(t, `{"error":"boom"}`, buf.String())

	assert.NoError(t, o.HandleError(nil))
}

func TestHandleErrorPlain(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	o := &OutputOptions{Out: &buf}

	err := o.HandleError(boom)
	assert.Same(t, boom, err)
	assert.Empty(t, buf.String())
}
