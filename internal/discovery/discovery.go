// Package discovery locates running nodes on the local filesystem. Nodes are
// not registered anywhere central: each one owns a root directory matched by
// a glob pattern, and announces its metrics address in its own log file.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/dm/antmon/internal/logger"
)

// metricsServerRe matches the log line a node writes when its metrics
// endpoint comes up. A node that reconnects announces again, so the last
// match in the file wins.
var metricsServerRe = regexp.MustCompile(`Metrics server on (\S+)`)

// Endpoint ties a discovered node directory to its announced metrics URL.
type Endpoint struct {
	Dir  string // node root directory, the node's stable identity
	Name string // base name of Dir, for display
	URL  string // announced metrics base URL
}

// NodeDirs expands the glob pattern and returns the matching directories,
// sorted. Non-directory matches are dropped. An invalid pattern is a hard
// error; the caller decides whether to retry on the next discovery cycle.
func NodeDirs(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad node path pattern %q: %w", pattern, err)
	}

	var dirs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, m)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// MetricsEndpoints scans each node directory matched by pattern for a log
// file at logRelPath and extracts the last announced metrics URL. Directories
// without a matching log line contribute nothing; unreadable log files are
// skipped with a warning. The result is sorted by directory and deduplicated
// by URL, so when two directories announce the same address only the first
// (by directory order) survives.
func MetricsEndpoints(pattern, logRelPath string, log logger.Logger) ([]Endpoint, error) {
	dirs, err := NodeDirs(pattern)
	if err != nil {
		return nil, err
	}

	var endpoints []Endpoint
	for _, dir := range dirs {
		logPath := filepath.Join(dir, logRelPath)
		url, err := lastAnnouncedURL(logPath)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("cannot read log %s: %v", logPath, err)
			}
			continue
		}
		if url == "" {
			continue
		}
		endpoints = append(endpoints, Endpoint{
			Dir:  dir,
			Name: filepath.Base(dir),
			URL:  url,
		})
	}

	return dedupeByURL(endpoints, log), nil
}

// lastAnnouncedURL returns the URL from the last matching announcement line
// in the file, or "" when no line matches.
func lastAnnouncedURL(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var last string
	for _, m := range metricsServerRe.FindAllSubmatch(content, -1) {
		last = string(m[1])
	}
	return last, nil
}

// dedupeByURL drops endpoints whose URL was already claimed by an earlier
// directory. Address collisions normally mean a restart race where two
// directories briefly report the same port; the merge is logged so it is not
// silent.
func dedupeByURL(endpoints []Endpoint, log logger.Logger) []Endpoint {
	seen := make(map[string]string, len(endpoints))
	out := endpoints[:0]
	for _, ep := range endpoints {
		if prior, ok := seen[ep.URL]; ok {
			log.Warn("nodes %s and %s both announce %s; keeping %s", prior, ep.Dir, ep.URL, prior)
			continue
		}
		seen[ep.URL] = ep.Dir
		out = append(out, ep)
	}
	return out
}
