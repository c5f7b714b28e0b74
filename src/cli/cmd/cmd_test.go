package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/output"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, profile, verbose = "", config.DefaultProfile, false
	assembleFormat, validateWatch, validateJUnit = "text", false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
default:
  extensions:
    Drupal\DrupalExtension:
      blackbox: ~
      drush:
        alias: "@self"
`

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "drupalext ")
}

func TestReference(t *testing.T) {
	out, err := run(t, "reference")
	require.NoError(t, err)
	assert.Contains(t, out, "default_driver: blackbox")
	assert.Contains(t, out, "region_map: {}")
}

func TestDrivers(t *testing.T) {
	out, err := run(t, "drivers")
	require.NoError(t, err)
	assert.Contains(t, out, "blackbox")
	assert.Contains(t, out, "drupal.driver.drush")
}

func TestAssemble_JSON(t *testing.T) {
	path := write(t, t.TempDir(), "behat.yml", validConfig)

	out, err := run(t, "assemble", "--config", path, "--format", "json")
	require.NoError(t, err)

	var snap output.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, []string{"blackbox", "drush"}, snap.Drivers)
	assert.Equal(t, "@self", snap.Parameters["drupal.driver.drush.alias"])
}

func TestAssemble_Text(t *testing.T) {
	path := write(t, t.TempDir(), "behat.yml", validConfig)

	out, err := run(t, "assemble", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "── Components ")
	assert.Contains(t, out, "registerDriver(@drupal.driver.drush)")
}

func TestAssemble_YAML(t *testing.T) {
	path := write(t, t.TempDir(), "behat.yml", validConfig)

	out, err := run(t, "assemble", "--config", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "drivers:\n")
	assert.Contains(t, out, "- blackbox\n")
	assert.Contains(t, out, "registerDriver")
}

func TestAssemble_Errors(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "behat.yml", validConfig)

	_, err := run(t, "assemble", "--config", path, "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)

	bad := write(t, dir, "bad.yml", "drush: {}\n")
	_, err = run(t, "assemble", "--config", bad)
	assert.ErrorContains(t, err, "drush `alias` or `root` path is required")

	_, err = run(t, "assemble", "--config", path, "--profile", "nope")
	assert.ErrorContains(t, err, `profile "nope" not found`)
}

func TestValidate_AggregatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.yml", validConfig)
	bad := write(t, dir, "bad.yml", "drupal: {}\n")
	worse := write(t, dir, "worse.yml", "text: nope\n")
	report := filepath.Join(dir, "out", "validate.xml")

	out, err := run(t, "validate", good, bad, worse, "--junit", report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), worse)

	assert.Contains(t, out, "1 passed, 2 failed")
	assert.FileExists(t, report)
}

func TestValidate_AllPass(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.yml", validConfig)
	b := write(t, dir, "b.yml", "blackbox: ~\n")

	out, err := run(t, "validate", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "2 passed, 0 failed")
}

func TestValidate_GitLabSection(t *testing.T) {
	t.Setenv("GITLAB_CI", "true")
	path := write(t, t.TempDir(), "behat.yml", "drush:\n  root: /var/www\n")

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "section_start:")
	assert.Contains(t, out, "section_end:")
	assert.Contains(t, out, "warning: ")
	assert.Contains(t, out, `default_driver "blackbox" has no "blackbox" section`)
}
