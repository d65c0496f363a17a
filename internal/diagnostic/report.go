// Package diagnostic collects per-file outcomes of a batch generation
// run. A failing file never aborts its siblings; the batch driver
// records every failure here and surfaces them together at the end.
package diagnostic

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Failure records one failed input file with its preserved cause.
type Failure struct {
	// Path is the input file the failure belongs to.
	Path string
	// Err is the wrapped underlying error.
	Err error
}

// String returns a formatted failure line.
func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Report accumulates the results of a batch run. It is safe for
// concurrent use by the batch workers.
type Report struct {
	mu sync.Mutex

	generated int
	skipped   int
	failures  []Failure
}

// AddGenerated counts one successfully generated file.
func (r *Report) AddGenerated() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generated++
}

// AddSkipped counts one input file no adapter recognizes.
func (r *Report) AddSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.skipped++
}

// AddFailure records a failed input file.
func (r *Report) AddFailure(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, Failure{Path: path, Err: err})
}

// Generated returns the number of successfully generated files.
func (r *Report) Generated() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.generated
}

// Skipped returns the number of unrecognized, skipped files.
func (r *Report) Skipped() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.skipped
}

// Failures returns a copy of the recorded failures.
func (r *Report) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Failure, len(r.failures))
	copy(out, r.failures)

	return out
}

// HasFailures returns true if any file failed.
func (r *Report) HasFailures() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.failures) > 0
}

// Err returns a combined error listing every failed file, or nil when
// the whole batch succeeded.
func (r *Report) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.failures) == 0 {
		return nil
	}

	var parts []string
	for _, f := range r.failures {
		parts = append(parts, f.String())
	}

	return errors.Newf("%d of %d files failed: %s",
		len(r.failures), r.generated+len(r.failures), strings.Join(parts, "; "))
}
