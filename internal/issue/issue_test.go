// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	vals := Values()
	if len(vals) != len(issues) {
		t.Fatalf("len(Values()) = %d, want %d", len(vals), len(issues))
	}
	for i := 1; i < len(vals); i++ {
		if vals[i-1].Id() >= vals[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, vals[i-1].Id(), vals[i].Id())
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{JobFileParseErrorId, JobNotFoundId, EmptyCommandId, NoPackageFoundId, WatcherFailedId, ConfigLoadFailedId} {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) = nil", id)
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
	if Get(Id(9999)) != nil {
		t.Error("Get(unknown) should be nil")
	}
}

func TestIssue_DocLinksIsCopy(t *testing.T) {
	t.Parallel()

	iss := Get(JobNotFoundId)
	links := iss.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links")
	}
	links[0] = "changed"
	if iss.DocLinks()[0] == "changed" {
		t.Error("DocLinks() exposes internal slice")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(JobNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Job not found") {
		t.Errorf("Render() misses the title:\n%s", out)
	}
	if !strings.Contains(out, "dystroy.org/bacon/config") {
		t.Errorf("Render() misses the doc link:\n%s", out)
	}
}
