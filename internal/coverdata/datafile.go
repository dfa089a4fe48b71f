package coverdata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/tools/cover"
	"gopkg.in/yaml.v3"

	m "github.com/nedbat/covcode/internal/model"
)

// DataFormat is the current native data file schema version.
const DataFormat = 1

// DefaultDataFile is the data file name used when none is configured.
const DefaultDataFile = ".covcode"

const dataFilePerm = 0o644

// Sentinel errors for data file handling.
var (
	ErrNoDataFile        = errors.New("no coverage data file")
	ErrDataFormat        = errors.New("unrecognized data file format")
	ErrDataFormatVersion = errors.New("data file format version mismatch")
)

// dataFileYAML is the serialized shape of the native data file.
type dataFileYAML struct {
	Format int                 `yaml:"format"`
	Mode   string              `yaml:"mode"`
	Files  map[string]fileYAML `yaml:"files"`
}

type fileYAML struct {
	Lines map[int]map[string]int    `yaml:"lines"`
	Arcs  map[string]map[string]int `yaml:"arcs,omitempty"`
}

// Load reads one data file into a new store. Both the native YAML format
// and the Go coverprofile text format are accepted; coverprofiles carry no
// arcs or contexts.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDataFile, path)
		}

		return nil, fmt.Errorf("read data file: %w", err)
	}

	store := NewStore()

	if err := store.merge(path, data); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) merge(path string, data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("mode:")) {
		profiles, err := cover.ParseProfilesFromReader(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parse coverprofile %s: %w", path, err)
		}

		s.AddProfiles(profiles, "")

		return nil
	}

	var parsed dataFileYAML

	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("%w: %s", ErrDataFormat, path)
	}

	if parsed.Format != DataFormat {
		return fmt.Errorf("%w: %s has format %d, want %d", ErrDataFormatVersion, path, parsed.Format, DataFormat)
	}

	s.SetMode(parsed.Mode)

	for file, fy := range parsed.Files {
		for line, byContext := range fy.Lines {
			for ctx, count := range byContext {
				s.AddLineCount(file, line, ctx, count)
			}
		}

		for key, byContext := range fy.Arcs {
			arc, err := parseArcKey(key)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrDataFormat, path, err)
			}

			for ctx, count := range byContext {
				s.AddArcCount(file, arc, ctx, count)
			}
		}
	}

	return nil
}

// Write serializes the store to the native data file format.
func (s *Store) Write(path string) error {
	out := dataFileYAML{
		Format: DataFormat,
		Mode:   s.mode,
		Files:  make(map[string]fileYAML, len(s.files)),
	}

	for file, fd := range s.files {
		fy := fileYAML{Lines: make(map[int]map[string]int, len(fd.lines))}

		for line, byContext := range fd.lines {
			fy.Lines[line] = copyCounts(byContext)
		}

		if len(fd.arcs) > 0 {
			fy.Arcs = make(map[string]map[string]int, len(fd.arcs))

			for arc, byContext := range fd.arcs {
				fy.Arcs[arcKey(arc)] = copyCounts(byContext)
			}
		}

		out.Files[file] = fy
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}

	if err := os.WriteFile(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}

	return nil
}

// AddProfiles folds Go coverprofiles into the store under one context.
// Every line a block spans becomes a recorded statement line.
func (s *Store) AddProfiles(profiles []*cover.Profile, context string) {
	for _, profile := range profiles {
		s.SetMode(profile.Mode)

		for _, block := range profile.Blocks {
			for line := block.StartLine; line <= block.EndLine; line++ {
				s.AddLineCount(profile.FileName, line, context, block.Count)
			}
		}
	}
}

// Erase removes the data file. A missing file is not an error.
func Erase(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erase data file: %w", err)
	}

	return nil
}

func arcKey(arc m.Arc) string {
	return fmt.Sprintf("%d>%d", arc.From, arc.To)
}

func parseArcKey(key string) (m.Arc, error) {
	from, to, ok := strings.Cut(key, ">")
	if !ok {
		return m.Arc{}, fmt.Errorf("bad arc key %q", key)
	}

	fromLine, err := strconv.Atoi(from)
	if err != nil {
		return m.Arc{}, fmt.Errorf("bad arc key %q", key)
	}

	toLine, err := strconv.Atoi(to)
	if err != nil {
		return m.Arc{}, fmt.Errorf("bad arc key %q", key)
	}

	return m.Arc{From: fromLine, To: toLine}, nil
}

func copyCounts(byContext map[string]int) map[string]int {
	out := make(map[string]int, len(byContext))
	for ctx, count := range byContext {
		out[ctx] = count
	}

	return out
}
