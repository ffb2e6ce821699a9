//go:build !integration

package main

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/dealcraft/dealcraft/internal/model"
	"github.com/dealcraft/dealcraft/internal/service"
	"github.com/dealcraft/dealcraft/internal/store"
)

func TestPartnersCommand(t *testing.T) {
	chdirFixtures(t)

	out, err := executeCommand(t, "partners")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Sarah Chen")
	assert.Contains(t, out, "Series A")
}

func TestCompaniesCommand_JSON(t *testing.T) {
	chdirFixtures(t)

	out, err := executeCommand(t, "companies", "--json")
	require.NoError(t, err)

	var companies []model.Company
	require.NoError(t, json.Unmarshal([]byte(out), &companies))
	require.Len(t, companies, 3)
	// Stage defaulted by the loader.
	assert.Equal(t, "Series A", companies[1].Stage)
}

func TestMatchCompanyCommand(t *testing.T) {
	chdirFixtures(t)

	out, err := executeCommand(t, "match", "company", "PayFlow")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "Sarah Chen (sarah)")
	assert.Contains(t, lines[2], "0.87")
}

func TestMatchCompanyCommand_Fold(t *testing.T) {
	chdirFixtures(t)

	_, err := executeCommand(t, "match", "company", "payflow")
	require.Error(t, err)
	assert.True(t, service.IsNotFound(err))

	out, err := executeCommand(t, "match", "company", "payflow", "--fold", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "Sarah Chen (sarah)")
	assert.Contains(t, out, "Match analysis for Sarah Chen and PayFlow")
}

func TestMatchPartnerCommand_JSON(t *testing.T) {
	chdirFixtures(t)

	out, err := executeCommand(t, "match", "partner", "omar", "--limit", "2", "--json")
	require.NoError(t, err)

	var matches []model.PartnerCompanyMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "Green Grid", matches[0].Company.Name)
	assert.Equal(t, "GridCo", matches[1].Company.Name)
}

func TestMatchPartnerCommand_NotFound(t *testing.T) {
	chdirFixtures(t)

	_, err := executeCommand(t, "match", "partner", "nobody")
	require.Error(t, err)
	assert.True(t, service.IsNotFound(err))
}

func TestMatrixCommand_CSV(t *testing.T) {
	chdirFixtures(t)

	out, err := executeCommand(t, "matrix", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"company", "sarah", "omar", "elena"}, records[0])
	assert.Equal(t, "PayFlow", records[1][0])
	assert.Equal(t, "0.8700", records[1][1])
}

func TestMatrixCommand_XLSX(t *testing.T) {
	dir := chdirFixtures(t)
	path := filepath.Join(dir, "matrix.xlsx")

	_, err := executeCommand(t, "matrix", "--format", "xlsx", "--output", path)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Len(t, f.Sheets[0].Rows, 4)
}

func TestMatrixCommand_Errors(t *testing.T) {
	chdirFixtures(t)

	_, err := executeCommand(t, "matrix", "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output is required")

	_, err = executeCommand(t, "matrix", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestSeedCommand_SQLite(t *testing.T) {
	dir := chdirFixtures(t)
	dbPath := filepath.Join(dir, "seed.db")
	t.Setenv("DEALCRAFT_STORE_DRIVER", "sqlite")
	t.Setenv("DEALCRAFT_STORE_DATABASE_URL", dbPath)

	_, err := executeCommand(t, "seed")
	require.NoError(t, err)

	st, err := store.NewSQLite(dbPath)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	partners, err := st.Partners(t.Context())
	require.NoError(t, err)
	require.Len(t, partners, 3)
	assert.Equal(t, "sarah", partners[0].ID)

	companies, err := st.Companies(t.Context())
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Series A", companies[1].Stage)

	// Reading back through the store source gives the same recommendations.
	t.Setenv("DEALCRAFT_DATA_SOURCE", "sqlite")
	out, err := executeCommand(t, "match", "company", "Green Grid")
	require.NoError(t, err)
	assert.Contains(t, out, "Omar Haddad (omar)")
}
