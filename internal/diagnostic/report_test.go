package diagnostic

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCounts(t *testing.T) {
	r := &Report{}

	r.AddGenerated()
	r.AddGenerated()
	r.AddSkipped()
	r.AddFailure("a.json", errors.New("boom"))

	assert.Equal(t, 2, r.Generated())
	assert.Equal(t, 1, r.Skipped())
	assert.True(t, r.HasFailures())

	require.Len(t, r.Failures(), 1)
	assert.Equal(t, "a.json", r.Failures()[0].Path)
	assert.Contains(t, r.Failures()[0].String(), "boom")
}

func TestReportErr(t *testing.T) {
	r := &Report{}
	r.AddGenerated()
	assert.NoError(t, r.Err())

	r.AddFailure("bad.yaml", errors.New("parse"))
	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
}

func TestReportConcurrent(t *testing.T) {
	r := &Report{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			r.AddGenerated()
			r.AddFailure("x", errors.New("e"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Generated())
	assert.Len(t, r.Failures(), 50)
}
