//go:build !integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testPartnersJSON = `[
  {"partner_id": "sarah", "name": "Sarah Chen", "expertise": ["payments"],
   "investment_preferences": {"sectors": ["Fintech"], "stage": ["Seed"]}},
  {"partner_id": "omar", "name": "Omar Haddad", "expertise": ["energy"],
   "investment_preferences": {"sectors": ["Climate"], "stage": ["Series A"]}},
  {"partner_id": "elena", "name": "Elena Ruiz", "expertise": ["AI"],
   "investment_preferences": {"sectors": ["AI"], "stage": ["Seed"]}}
]`

const testCompaniesJSON = `[
  {"company_name": "PayFlow", "sector": "Fintech payments", "stage": "Seed"},
  {"company_name": "GridCo", "sector": "Climate"},
  {"company_name": "Green Grid", "sector": "Climate energy", "stage": "Series A"}
]`

// writeFixtures writes the test roster into dir and returns the two paths.
func writeFixtures(t *testing.T, dir string) (partnersPath, companiesPath string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	partnersPath = filepath.Join(dir, "data", "partners.json")
	companiesPath = filepath.Join(dir, "data", "preloaded_companies.json")
	require.NoError(t, os.WriteFile(partnersPath, []byte(testPartnersJSON), 0o644))
	require.NoError(t, os.WriteFile(companiesPath, []byte(testCompaniesJSON), 0o644))
	return partnersPath, companiesPath
}

// chdirFixtures switches into a temp dir holding the default fixture paths.
func chdirFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixtures(t, dir)
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	t.Setenv("DEALCRAFT_LOG_LEVEL", "error")
	return dir
}

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default so command
// tests do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
