package fault_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/hbs_renderer/fault"
)

func TestError_matches_kind_and_cause(t *testing.T) {
	t.Parallel()

	err := fault.IO("reading template", "/tmp/a.hbs", fs.ErrNotExist)

	assert.ErrorIs(t, err, fault.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, fault.ErrTemplate)
	assert.True(t, fault.Is(err))
	assert.Equal(
		t,
		`io error: reading template "/tmp/a.hbs": file does not exist`,
		err.Error(),
	)
}

func TestError_without_cause(t *testing.T) {
	t.Parallel()

	err := fault.Template("compiling", "", nil)

	assert.ErrorIs(t, err, fault.ErrTemplate)
	assert.Equal(t, "template error: compiling", err.Error())
}

func TestIs_plain_error(t *testing.T) {
	t.Parallel()

	assert.False(t, fault.Is(errors.New("boom")))
}
