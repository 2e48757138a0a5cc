package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/repository/memory"
)

func newTestApp(repo *memory.SeasonRepository) (*app, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Season:  config.SeasonConfig{SaveDebounce: time.Hour},
	}
	return &app{cfg: cfg, logger: zap.NewNop(), repo: repo, out: out}, out
}

func run(t *testing.T, repo *memory.SeasonRepository, args ...string) (string, error) {
	t.Helper()
	a, out := newTestApp(repo)
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOwnerRequired(t *testing.T) {
	_, err := run(t, memory.NewSeasonRepository(), "years")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--owner")
}

func TestYearsEmpty(t *testing.T) {
	out, err := run(t, memory.NewSeasonRepository(), "--owner", "u1", "years")
	require.NoError(t, err)
	assert.Contains(t, out, "no seasons stored")
}

func TestImportAndExport(t *testing.T) {
	repo := memory.NewSeasonRepository()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "tickets.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"Date,Commodity,Net Amount,Moisture,Farm\n"+
			"2025-10-01,Corn,1000,15,North\n"+
			"2025-10-02,Beans,400,12,East\n"), 0o600))

	out, err := run(t, repo, "--owner", "u1", "--year", "2025", "import", csvPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `farm         <- "Farm"`)
	assert.Contains(t, out, "bushels=1000")
	assert.Equal(t, 0, repo.Upserts())

	out, err = run(t, repo, "--owner", "u1", "--year", "2025", "import", csvPath, "--skip", "farm")
	require.NoError(t, err)
	assert.Contains(t, out, "farm         (skipped)")
	assert.Contains(t, out, "imported 2 tickets into 2025")

	doc, err := repo.FetchDocument(context.Background(), "u1", 2025)
	require.NoError(t, err)
	require.Len(t, doc.GrainTickets, 2)
	assert.Empty(t, doc.GrainTickets[0].Farm)

	out, err = run(t, repo, "--owner", "u1", "years")
	require.NoError(t, err)
	assert.Equal(t, "2025\n", out)

	xlsx := filepath.Join(dir, "out.xlsx")
	out, err = run(t, repo, "--owner", "u1", "export", "-o", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+xlsx)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Tickets")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestImportRejectsUnknownField(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Date,Net Amount\n2025-10-01,10\n"), 0o600))

	_, err := run(t, memory.NewSeasonRepository(), "--owner", "u1", "--year", "2025", "import", csvPath, "--map", "weight=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--map weight=1")
}

func TestCopyAndReport(t *testing.T) {
	repo := memory.NewSeasonRepository()

	out, err := run(t, repo, "--owner", "u1", "--year", "2025", "budget")
	require.NoError(t, err)
	assert.Contains(t, out, "Season 2025")

	out, err = run(t, repo, "--owner", "u1", "--year", "2025", "copy")
	require.NoError(t, err)
	assert.Contains(t, out, "copied 2025 to 2026")

	_, err = run(t, repo, "--owner", "u1", "--year", "2025", "copy")
	require.Error(t, err)

	out, err = run(t, repo, "--owner", "u1", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Crop budget 2026")

	_, err = run(t, repo, "--owner", "u1", "report", "--send")
	require.Error(t, err)
}
