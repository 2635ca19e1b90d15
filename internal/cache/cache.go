package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Orange-Health/deploy-report/internal/models"
)

const (
	tagDirName    = "tagcache"
	branchDirName = "common_branches"
	historyDepth  = 3
)

// Store is the flat-file cache shared across runs: one tag file per service
// and one branch-report file per (repository, tag). Writes go through a
// temp-file rename so a concurrent reader never sees partial content;
// cross-process locking is deliberately absent (single run at a time,
// last writer wins).
type Store struct {
	root     string
	useCache bool
	log      *logrus.Logger
}

func NewStore(root string, useCache bool, log *logrus.Logger) (*Store, error) {
	for _, dir := range []string{root, filepath.Join(root, tagDirName), filepath.Join(root, branchDirName)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	return &Store{
		root:     root,
		useCache: useCache,
		log:      log,
	}, nil
}

// Tag returns the cached tag for a service, if cache use is enabled and the
// stored content survives validation.
func (s *Store) Tag(service string) (string, bool) {
	return s.read(s.tagPath(service))
}

func (s *Store) WriteTag(service, tag string) error {
	return s.write(s.tagPath(service), tag)
}

// BranchReport returns the cached branch listing for (repo, tag) verbatim.
func (s *Store) BranchReport(repo, tag string) (string, bool) {
	return s.read(s.branchPath(repo, tag))
}

// WriteBranchReport stores a fresh listing and prunes the repository to the
// three most recently modified entries.
func (s *Store) WriteBranchReport(repo, tag, content string) error {
	if err := s.write(s.branchPath(repo, tag), content); err != nil {
		return err
	}
	return s.prune(repo)
}

// History returns up to three retained listings for a repository, newest
// first.
func (s *Store) History(repo string) []models.HistoryEntry {
	var entries []models.HistoryEntry
	for _, path := range s.branchFiles(repo) {
		if len(entries) == historyDepth {
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.WithError(err).WithField("file", path).Warn("skipping unreadable history entry")
			continue
		}
		entries = append(entries, models.HistoryEntry{
			Filename: filepath.Base(path),
			Content:  string(data),
		})
	}
	return entries
}

func (s *Store) tagPath(service string) string {
	return filepath.Join(s.root, tagDirName, service+".txt")
}

func (s *Store) branchPath(repo, tag string) string {
	return filepath.Join(s.root, branchDirName, fmt.Sprintf("%s-%s.txt", repo, tag))
}

// branchFiles lists a repository's cache files, newest first by mtime.
func (s *Store) branchFiles(repo string) []string {
	pattern := filepath.Join(s.root, branchDirName, repo+"-*.txt")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		s.log.WithError(err).Warn("branch cache glob failed")
		return nil
	}
	sort.Slice(matches, func(i, j int) bool {
		return mtime(matches[i]).After(mtime(matches[j]))
	})
	return matches
}

func (s *Store) prune(repo string) error {
	files := s.branchFiles(repo)
	if len(files) <= historyDepth {
		return nil
	}
	for _, path := range files[historyDepth:] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("prune %s: %w", path, err)
		}
		s.log.WithField("file", path).Debug("evicted branch cache entry")
	}
	return nil
}

func (s *Store) read(path string) (string, bool) {
	if !s.useCache {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	content := strings.TrimSpace(string(data))
	if !validContent(content) {
		s.log.WithField("file", path).Warn("discarding malformed cache entry")
		return "", false
	}
	return content, true
}

func (s *Store) write(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.TrimSpace(content)); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish cache file: %w", err)
	}
	return nil
}

func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// validContent rejects entries carrying template artifacts or serialized
// nulls, which indicate a bad write from an earlier revision.
func validContent(content string) bool {
	if content == "" {
		return false
	}
	if strings.ContainsAny(content, `{}`) {
		return false
	}
	return !strings.Contains(content, "null")
}
