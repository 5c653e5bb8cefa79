package version

import (
	"strings"
	"testing"
)

func TestStringWithoutBuildInfo(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "sitekit version dev (") {
		t.Errorf("String() = %q, want prefix %q", got, "sitekit version dev (")
	}
}

func TestStringWithShortCommit(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	defer func() { Commit, Date = oldCommit, oldDate }()

	Commit = "abc"
	Date = "2026-01-01T00:00:00Z"

	got := String()
	if !strings.Contains(got, "commit: abc,") {
		t.Errorf("String() = %q, want short commit kept intact", got)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "sitekit/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
