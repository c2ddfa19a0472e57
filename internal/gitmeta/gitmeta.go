// Package gitmeta detects a repository's remote host and branch so the
// report can link each marker to its exact line on the remote. Detection
// reads .git/config and .git/HEAD directly; no git command is executed.
// Everything here is best-effort: any parse failure means "no link", never
// an error.
package gitmeta

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Remote describes a repository's origin remote.
type Remote struct {
	// Host is the remote host, e.g. "github.com".
	Host string

	// OrgRepo is the "org/repo" path on the host.
	OrgRepo string

	// Branch is the current branch from .git/HEAD, or "main" when detached
	// or unreadable.
	Branch string
}

// Detect reads the origin remote and current branch of the repository at
// dir. Returns nil when the repository has no usable origin remote.
func Detect(dir string) *Remote {
	url := originURL(filepath.Join(dir, ".git", "config"))
	if url == "" {
		return nil
	}

	host, orgRepo, ok := splitRemoteURL(url)
	if !ok {
		return nil
	}

	return &Remote{
		Host:    host,
		OrgRepo: orgRepo,
		Branch:  headBranch(filepath.Join(dir, ".git", "HEAD")),
	}
}

// originURL extracts the url value of the [remote "origin"] section from a
// git config file. Returns "" when the file or section is missing.
func originURL(configPath string) string {
	f, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // read-only, close best-effort
	}()

	inOrigin := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inOrigin = line == `[remote "origin"]`
			continue
		}
		if !inOrigin {
			continue
		}
		if value, ok := strings.CutPrefix(line, "url"); ok {
			value = strings.TrimSpace(value)
			if value, ok = strings.CutPrefix(value, "="); ok {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// splitRemoteURL normalizes ssh ("git@host:org/repo.git") and http(s)
// ("https://host/org/repo.git") remote URLs into host and org/repo.
func splitRemoteURL(url string) (host, orgRepo string, ok bool) {
	url = strings.TrimSuffix(url, ".git")

	if rest, found := strings.CutPrefix(url, "git@"); found {
		host, orgRepo, ok = strings.Cut(rest, ":")
		return host, orgRepo, ok && host != "" && orgRepo != ""
	}

	rest := url
	if r, found := strings.CutPrefix(url, "https://"); found {
		rest = r
	} else if r, found := strings.CutPrefix(url, "http://"); found {
		rest = r
	} else {
		return "", "", false
	}

	parts := strings.Split(rest, "/")
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[0], parts[1] + "/" + parts[2], true
}

// headBranch reads the current branch from a .git/HEAD file. A detached
// HEAD or unreadable file falls back to "main".
func headBranch(headPath string) string {
	data, err := os.ReadFile(headPath)
	if err != nil {
		return "main"
	}
	line := strings.TrimSpace(string(data))
	if ref, ok := strings.CutPrefix(line, "ref: refs/heads/"); ok && ref != "" {
		return ref
	}
	return "main"
}

// LineLink builds a URL to the given file and line on the remote host.
// The branch argument overrides the detected branch when non-empty.
// Returns "" for hosts without a known line-anchor URL shape.
func (r *Remote) LineLink(branch, relPath string, line int) string {
	if r == nil {
		return ""
	}
	if branch == "" {
		branch = r.Branch
	}

	switch {
	case strings.Contains(r.Host, "github.com"):
		return fmt.Sprintf("https://%s/%s/blob/%s/%s#L%d", r.Host, r.OrgRepo, branch, relPath, line)
	case strings.Contains(r.Host, "gitlab.com"):
		return fmt.Sprintf("https://%s/%s/-/blob/%s/%s#L%d", r.Host, r.OrgRepo, branch, relPath, line)
	}
	return ""
}
