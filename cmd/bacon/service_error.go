// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kpbaks/bacon/internal/issue"

	"golang.org/x/term"
)

// ServiceError carries the catalog entry explaining an error. The CLI renders
// the entry after the error itself.
type ServiceError struct {
	Err     error
	IssueID issue.Id
}

// newServiceError panics on a nil err.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError prints the catalog entry of svcErr, if any.
func renderServiceError(w io.Writer, svcErr *ServiceError) {
	if svcErr == nil || svcErr.IssueID == 0 {
		return
	}
	entry := issue.Get(svcErr.IssueID)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(glamourStyle(w))
	if err != nil {
		fmt.Fprintf(w, "failed to render help for issue %d: %v\n", svcErr.IssueID, err)
		return
	}
	fmt.Fprint(w, rendered)
}

// glamourStyle picks the dark style on terminals and plain text elsewhere.
func glamourStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
