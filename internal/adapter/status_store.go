// Package adapter contains the infrastructure adapters for covcode:
// incremental status persistence, HTML rendering, and source filesystem
// access.
package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/nedbat/covcode/internal/model"
	"github.com/nedbat/covcode/internal/version"
)

// StatusFilename is the incremental status file written into the report
// directory.
const StatusFilename = "status.yaml"

// statusFormat is the current status file schema version. Bump it whenever
// the record shape changes; readers discard any other version.
const statusFormat = 1

const statusFilePerm = 0o600

// StatusStore tracks, across report runs, a content fingerprint and cached
// index record per reported file, plus the global fingerprint that gates
// trust in all of them. It is owned by a single report pass.
type StatusStore struct {
	dir     string
	globals string
	files   map[string]*fileStatus
}

type fileStatus struct {
	hash  string
	index m.FileRecord
}

// statusYAML is the serialized shape of the status file.
type statusYAML struct {
	Format  int                       `yaml:"format"`
	Version string                    `yaml:"version"`
	Globals string                    `yaml:"globals"`
	Files   map[string]fileStatusYAML `yaml:"files"`
}

type fileStatusYAML struct {
	Hash  string        `yaml:"hash"`
	Index indexInfoYAML `yaml:"index"`
}

type indexInfoYAML struct {
	HTMLFilename     string `yaml:"html_filename"`
	RelativeFilename string `yaml:"relative_filename"`
	Nums             []int  `yaml:"nums"`
}

// NewStatusStore creates a status store for the given report directory,
// starting empty.
func NewStatusStore(dir string) *StatusStore {
	s := &StatusStore{dir: dir}
	s.Reset()

	return s
}

// Reset discards all cached state, causing every file to be reported.
func (s *StatusStore) Reset() {
	s.globals = ""
	s.files = make(map[string]*fileStatus)
}

func (s *StatusStore) path() string {
	return filepath.Join(s.dir, StatusFilename)
}

// Load reads the status recorded by the previous run. A missing,
// unparseable, or wrong-version file silently leaves the store empty; a
// cold start is never an error.
func (s *StatusStore) Load() {
	s.Reset()

	data, err := os.ReadFile(s.path())
	if err != nil {
		return
	}

	var status statusYAML

	if err := yaml.Unmarshal(data, &status); err != nil {
		return
	}

	if status.Format != statusFormat || status.Version != version.Version {
		return
	}

	files := make(map[string]*fileStatus, len(status.Files))

	for key, fy := range status.Files {
		nums, err := m.NumbersFromSequence(fy.Index.Nums)
		if err != nil {
			s.Reset()

			return
		}

		files[key] = &fileStatus{
			hash: fy.Hash,
			index: m.FileRecord{
				RelativePath: fy.Index.RelativeFilename,
				HTMLFilename: fy.Index.HTMLFilename,
				Nums:         nums,
			},
		}
	}

	s.files = files
	s.globals = status.Globals
}

// Persist writes the current status for the next run to pick up.
func (s *StatusStore) Persist() error {
	status := statusYAML{
		Format:  statusFormat,
		Version: version.Version,
		Globals: s.globals,
		Files:   make(map[string]fileStatusYAML, len(s.files)),
	}

	for key, fs := range s.files {
		status.Files[key] = fileStatusYAML{
			Hash: fs.hash,
			Index: indexInfoYAML{
				HTMLFilename:     fs.index.HTMLFilename,
				RelativeFilename: fs.index.RelativePath,
				Nums:             fs.index.Nums.Sequence(),
			},
		}
	}

	data, err := yaml.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	if err := os.WriteFile(s.path(), data, statusFilePerm); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	return nil
}

// CheckGlobals fingerprints the cross-file inputs that affect every page's
// rendering. When the fingerprint differs from the stored one the whole
// cache is discarded; staleness is never risked.
func (s *StatusStore) CheckGlobals(parts ...string) {
	fingerprint := GlobalFingerprint(parts...)

	if s.globals != fingerprint {
		s.Reset()
		s.globals = fingerprint
	}
}

// GlobalFingerprint hashes an order-stable concatenation of report-wide
// configuration values.
func GlobalFingerprint(parts ...string) string {
	h := sha256.New()

	for _, part := range parts {
		fmt.Fprintf(h, "%d:%s;", len(part), part)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// CanSkip reports whether the page for key can be reused verbatim. On a
// mismatch the computed fingerprint replaces the stored one, so a file that
// changes and changes back is tracked correctly either way.
func (s *StatusStore) CanSkip(key, fingerprint string) bool {
	if fs, ok := s.files[key]; ok && fs.hash == fingerprint {
		return true
	}

	s.setFileHash(key, fingerprint)

	return false
}

func (s *StatusStore) setFileHash(key, fingerprint string) {
	fs, ok := s.files[key]
	if !ok {
		fs = &fileStatus{}
		s.files[key] = fs
	}

	fs.hash = fingerprint
}

// IndexInfo returns the cached index record for key, if any.
func (s *StatusStore) IndexInfo(key string) (m.FileRecord, bool) {
	fs, ok := s.files[key]
	if !ok {
		return m.FileRecord{}, false
	}

	return fs.index, true
}

// SetIndexInfo caches the index record written for key this run.
func (s *StatusStore) SetIndexInfo(key string, rec m.FileRecord) {
	fs, ok := s.files[key]
	if !ok {
		fs = &fileStatus{}
		s.files[key] = fs
	}

	fs.index = rec
}
