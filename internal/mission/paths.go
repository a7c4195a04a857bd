// SPDX-License-Identifier: MPL-2.0

package mission

import (
	"os"
	"path/filepath"
)

// ResolvePath makes path absolute.
//
// Absolute paths are returned unchanged. Cargo reports some paths relative to
// the workspace root rather than the package, without saying which, so a
// relative path is first tried under workspaceDir and kept there if it exists;
// otherwise it is joined to packageDir, whether or not that target exists.
func ResolvePath(path, packageDir, workspaceDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if workspaceDir != "" {
		joined := filepath.Join(workspaceDir, path)
		if _, err := os.Stat(joined); err == nil {
			return joined
		}
	}
	return filepath.Join(packageDir, path)
}

// MakeAbsolute resolves path against the mission's package and workspace directories.
func (m *Mission) MakeAbsolute(path string) string {
	return ResolvePath(path, m.PackageDirectory, m.WorkspaceDirectory)
}

// WorkingDirectory is where the command runs: the job's workdir resolved like
// any job path, or the execution directory when the job sets none.
func (m *Mission) WorkingDirectory() string {
	if m.Job.Workdir == "" {
		return m.ExecutionDirectory
	}
	return m.MakeAbsolute(m.Job.Workdir)
}
