package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailfaker/apperrors"
)

func TestAppendSectionCreatesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "insights.pdf")

	require.NoError(t, AppendSection(path, "Statistics", "The dataset contains 100 transactions.\nAverage total is 118.45."))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF", "expected a PDF file")

	sections, err := Sections(path)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Statistics", sections[0].Title)
}

func TestAppendSectionAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.pdf")

	require.NoError(t, AppendSection(path, "Statistics", "first"))
	require.NoError(t, AppendSection(path, "Predictions", "second"))

	sections, err := Sections(path)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, []string{"Statistics", "Predictions"}, []string{sections[0].Title, sections[1].Title})
	assert.Equal(t, "second", sections[1].Text)
}

func TestAppendSectionRejectsEmptyTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.pdf")

	err := AppendSection(path, "", "text")
	require.Error(t, err)
	assert.True(t, apperrors.IsPrecondition(err))
}

func TestSectionsMissingReport(t *testing.T) {
	sections, err := Sections(filepath.Join(t.TempDir(), "no-such.pdf"))
	require.NoError(t, err)
	assert.Empty(t, sections)
}
