package manifest_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitag/fahrtenlog/internal/manifest"
)

const sampleManifest = `
datasets:
  - name: erlangen
    glob: "*Fahrten_CarSharing_Erlangen*.csv"
    encoding: iso-8859-1
    delimiter: ";"
  - name: archive-2019
    files:
      - archive/2019_h1.csv
      - archive/2019_h2.csv
    gap_threshold_hours: 12
`

func TestParse(t *testing.T) {
	m, err := manifest.Parse([]byte(sampleManifest))

	require.NoError(t, err)
	require.Len(t, m.Datasets, 2)

	assert.Equal(t, "erlangen", m.Datasets[0].Name)
	assert.Equal(t, "iso-8859-1", m.Datasets[0].Encoding)
	assert.Equal(t, 12, m.Datasets[1].GapThresholdHours)
}

func TestParse_rejectsEmptyDocument(t *testing.T) {
	_, err := manifest.Parse([]byte("datasets: []"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "no datasets")
}

func TestParse_rejectsUnnamedDataset(t *testing.T) {
	_, err := manifest.Parse([]byte("datasets:\n  - glob: '*.csv'\n"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "no name")
}

func TestParse_rejectsDuplicateNames(t *testing.T) {
	doc := "datasets:\n  - name: a\n    glob: '*.csv'\n  - name: a\n    glob: '*.csv'\n"

	_, err := manifest.Parse([]byte(doc))

	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate")
}

func TestParse_rejectsDatasetWithoutSources(t *testing.T) {
	_, err := manifest.Parse([]byte("datasets:\n  - name: empty\n"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "neither files nor a glob")
}

func TestLoad_missingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestDataset_Resolve_globAndFilesDeduplicated(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2023-01.csv", "2023-02.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	d := manifest.Dataset{
		Name:  "test",
		Glob:  "*.csv",
		Files: []string{"2023-01.csv"}, // also matched by the glob
	}

	files, err := d.Resolve(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "2023-01.csv"),
		filepath.Join(dir, "2023-02.csv"),
	}, files)
}

func TestDataset_Resolve_noMatches(t *testing.T) {
	d := manifest.Dataset{Name: "test", Glob: "*.csv"}

	_, err := d.Resolve(t.TempDir())

	require.Error(t, err)
	assert.ErrorContains(t, err, "matched no files")
}

func TestDataset_GapThreshold(t *testing.T) {
	assert.Equal(t, 6*time.Hour, manifest.Dataset{}.GapThreshold(6*time.Hour))
	assert.Equal(t, 12*time.Hour, manifest.Dataset{GapThresholdHours: 12}.GapThreshold(6*time.Hour))
}
