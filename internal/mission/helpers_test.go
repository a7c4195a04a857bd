// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"bytes"
	"testing"

	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/charmbracelet/log"
)

func ptr[T any](v T) *T { return &v }

// envOf returns a LookupEnv backed by a fixed map.
func envOf(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// newTestMission returns a mission for job with isolated env and a captured log.
func newTestMission(t *testing.T, settings *jobspec.Settings, job jobspec.Job) (*Mission, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	dir := t.TempDir()
	return &Mission{
		LocationName:       "demo",
		JobRef:             jobspec.ConcreteJobRef{Name: "job"},
		Job:                job,
		Settings:           settings,
		ExecutionDirectory: dir,
		PackageDirectory:   dir,
		Logger:             logger,
		LookupEnv:          envOf(nil),
	}, &buf
}
