package gitmeta

import (
	"os"
	"path/filepath"
	"testing"
)

// makeGitDir writes a .git directory with the given config and HEAD contents.
func makeGitDir(t *testing.T, dir, config, head string) {
	t.Helper()
	gitDir := filepath.Join(dir, ".git")
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	if config != "" {
		if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte(config), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	if head != "" {
		if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte(head), 0644); err != nil {
			t.Fatalf("write HEAD: %v", err)
		}
	}
}

const sshConfig = `[core]
	repositoryformatversion = 0
[remote "origin"]
	url = git@github.com:acme/widgets.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`

const httpsConfig = `[remote "upstream"]
	url = https://example.com/other/repo.git
[remote "origin"]
	url = https://gitlab.com/acme/widgets.git
`

func TestDetectSSHRemote(t *testing.T) {
	dir := t.TempDir()
	makeGitDir(t, dir, sshConfig, "ref: refs/heads/develop\n")

	remote := Detect(dir)
	if remote == nil {
		t.Fatal("Detect returned nil")
	}
	if remote.Host != "github.com" {
		t.Errorf("Host = %q, want github.com", remote.Host)
	}
	if remote.OrgRepo != "acme/widgets" {
		t.Errorf("OrgRepo = %q, want acme/widgets", remote.OrgRepo)
	}
	if remote.Branch != "develop" {
		t.Errorf("Branch = %q, want develop", remote.Branch)
	}
}

func TestDetectHTTPSRemotePicksOrigin(t *testing.T) {
	dir := t.TempDir()
	makeGitDir(t, dir, httpsConfig, "")

	remote := Detect(dir)
	if remote == nil {
		t.Fatal("Detect returned nil")
	}
	if remote.Host != "gitlab.com" || remote.OrgRepo != "acme/widgets" {
		t.Errorf("got %q %q, want gitlab.com acme/widgets", remote.Host, remote.OrgRepo)
	}
	if remote.Branch != "main" {
		t.Errorf("Branch = %q, want fallback main", remote.Branch)
	}
}

func TestDetectDetachedHead(t *testing.T) {
	dir := t.TempDir()
	makeGitDir(t, dir, sshConfig, "0123456789abcdef0123456789abcdef01234567\n")

	remote := Detect(dir)
	if remote == nil {
		t.Fatal("Detect returned nil")
	}
	if remote.Branch != "main" {
		t.Errorf("Branch = %q, want fallback main for detached HEAD", remote.Branch)
	}
}

func TestDetectFailures(t *testing.T) {
	if Detect(t.TempDir()) != nil {
		t.Error("no .git at all: want nil")
	}

	dir := t.TempDir()
	makeGitDir(t, dir, "[core]\n\tbare = false\n", "")
	if Detect(dir) != nil {
		t.Error("no origin remote: want nil")
	}

	dir = t.TempDir()
	makeGitDir(t, dir, "[remote \"origin\"]\n\turl = file:///local/path\n", "")
	if Detect(dir) != nil {
		t.Error("unparseable remote url: want nil")
	}
}

func TestLineLink(t *testing.T) {
	gh := &Remote{Host: "github.com", OrgRepo: "acme/widgets", Branch: "main"}
	gl := &Remote{Host: "gitlab.com", OrgRepo: "acme/widgets", Branch: "main"}
	other := &Remote{Host: "git.corp.internal", OrgRepo: "acme/widgets", Branch: "main"}

	if got, want := gh.LineLink("", "pkg/a.go", 12), "https://github.com/acme/widgets/blob/main/pkg/a.go#L12"; got != want {
		t.Errorf("github link = %q, want %q", got, want)
	}
	if got, want := gl.LineLink("dev", "a.md", 3), "https://gitlab.com/acme/widgets/-/blob/dev/a.md#L3"; got != want {
		t.Errorf("gitlab link = %q, want %q", got, want)
	}
	if got := other.LineLink("", "a.md", 1); got != "" {
		t.Errorf("unknown host link = %q, want empty", got)
	}

	var nilRemote *Remote
	if got := nilRemote.LineLink("", "a.md", 1); got != "" {
		t.Errorf("nil remote link = %q, want empty", got)
	}
}
