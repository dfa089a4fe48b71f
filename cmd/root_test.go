package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedbat/covcode/internal/config"
	"github.com/nedbat/covcode/internal/coverdata"
	"github.com/nedbat/covcode/internal/domain"
)

// writeSampleProject creates a directory with one measured source file and
// a matching data file. Lines 3-5 ran, line 7 did not, so the file is 75%
// covered.
func writeSampleProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	source := "package sample\n" +
		"\n" +
		"func Half(n int) int {\n" +
		"\tif n > 1 {\n" +
		"\t\treturn n / 2\n" +
		"\t}\n" +
		"\treturn n\n" +
		"}\n"

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sample"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample", "half.go"), []byte(source), 0o644))

	store := coverdata.NewStore()
	store.SetMode("count")
	store.AddLineCount("sample/half.go", 3, "", 1)
	store.AddLineCount("sample/half.go", 4, "", 1)
	store.AddLineCount("sample/half.go", 5, "", 1)
	store.AddLineCount("sample/half.go", 7, "", 0)

	require.NoError(t, store.Write(filepath.Join(dir, coverdata.DefaultDataFile)))

	return dir
}

// runCommand executes a subcommand under a fresh root command and captures
// its combined output. Constructing the commands anew resets their flag
// variables to defaults.
func runCommand(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(sub)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCmd_Metadata(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "covcode", cmd.Use)
	assert.Contains(t, cmd.Version, "covcode")
	assert.NotNil(t, cmd.PersistentFlags().Lookup("rcfile"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("data-file"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestExecute_ExitCodes(t *testing.T) {
	stub := func(err error) *cobra.Command {
		cmd := &cobra.Command{
			Use:           "stub",
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(*cobra.Command, []string) error {
				return err
			},
		}
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		return cmd
	}

	assert.Equal(t, exitOK, execute(stub(nil)))
	assert.Equal(t, exitError, execute(stub(errors.New("boom"))))
	assert.Equal(t, exitFailUnder, execute(stub(fmt.Errorf("coverage too low: %w", domain.ErrFailUnder))))
}

func TestLoadStore_MissingFile(t *testing.T) {
	cfg = &config.Config{DataFile: filepath.Join(t.TempDir(), coverdata.DefaultDataFile)}

	_, err := loadStore()
	assert.ErrorIs(t, err, domain.ErrNoDataToReport)
}

func TestLoadStore_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), coverdata.DefaultDataFile)
	require.NoError(t, coverdata.NewStore().Write(path))

	cfg = &config.Config{DataFile: path}

	_, err := loadStore()
	assert.ErrorIs(t, err, domain.ErrNoDataToReport)
}

func TestDataFileFlagOverridesConfig(t *testing.T) {
	dir := writeSampleProject(t)
	t.Chdir(dir)

	path := filepath.Join(dir, "elsewhere.covcode")
	store := coverdata.NewStore()
	store.AddLineCount("sample/half.go", 3, "", 1)
	require.NoError(t, store.Write(path))

	_, err := runCommand(t, newDebugCmd(), "--data-file", path, "debug", "data")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.DataFile)
}
