package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const behatYAML = `
default:
  extensions:
    Drupal\DrupalExtension:
      api_driver: drupal
      region_map:
        Right sidebar: "#sidebar-second"
        Content: "#main .region-content"
      drupal:
        drupal_root: /var/www/html
ci:
  extensions:
    Drupal\DrupalExtension:
      api_driver: drush
      drush:
        alias: "@ci"
      region_map:
        Header: "#header"
`

func TestLoad_ProfileDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behat.yml", behatYAML)

	raw, err := Load(path, "")
	require.NoError(t, err)
	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "drupal", rec.APIDriver)
	require.NotNil(t, rec.Drupal)
	assert.Equal(t, "/var/www/html", rec.Drupal.DrupalRoot)
	assert.Nil(t, rec.Drush)
	assert.Equal(t, []Region{
		{Name: "Right sidebar", Selector: "#sidebar-second"},
		{Name: "Content", Selector: "#main .region-content"},
	}, rec.RegionMap)
}

func TestLoad_NamedProfileMergesOverDefault(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behat.yml", behatYAML)

	raw, err := Load(path, "ci")
	require.NoError(t, err)
	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "drush", rec.APIDriver)
	require.NotNil(t, rec.Drupal)
	require.NotNil(t, rec.Drush)
	require.NotNil(t, rec.Drush.Alias)
	assert.Equal(t, "@ci", *rec.Drush.Alias)

	names := make([]string, 0, len(rec.RegionMap))
	for _, r := range rec.RegionMap {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Right sidebar", "Content", "Header"}, names)
}

func TestLoad_UnknownProfile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behat.yml", behatYAML)

	_, err := Load(path, "staging")
	assert.ErrorContains(t, err, `profile "staging" not found`)
}

func TestLoad_NullSectionEnablesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behat.yml", `
default:
  extensions:
    Drupal\DrupalExtension: ~
`)

	raw, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 0, raw.Len())
}

func TestLoad_BareSection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "drupal.yml", `
default_driver: drupal
blackbox: ~
`)

	raw, err := Load(path, "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"default_driver", "blackbox"}, raw.Keys())

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "drupal", rec.DefaultDriver)
	assert.NotNil(t, rec.Blackbox)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "behat.toml", `
[default.extensions.'Drupal\DrupalExtension']
default_driver = "drush"

[default.extensions.'Drupal\DrupalExtension'.drush]
root = "/var/www"

[default.extensions.'Drupal\DrupalExtension'.region_map]
Header = "#header"
Content = "#content"
`)

	raw, err := Load(path, "")
	require.NoError(t, err)
	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "drush", rec.DefaultDriver)
	require.NotNil(t, rec.Drush)
	assert.Equal(t, "/var/www", *rec.Drush.Root)
	// TOML tables are read in sorted key order.
	assert.Equal(t, []Region{
		{Name: "Content", Selector: "#content"},
		{Name: "Header", Selector: "#header"},
	}, rec.RegionMap)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"sequence root", "a.yml", "- one\n- two\n", "document root must be a mapping"},
		{"bad yaml", "b.yml", "key: [unterminated\n", "parsing"},
		{"bad toml", "c.toml", "key = \n", "parsing"},
		{"extensions not a mapping", "d.yml", "default:\n  extensions: []\n", "extensions must be a mapping"},
		{"section not a mapping", "e.yml", "default:\n  extensions:\n    Drupal\\DrupalExtension: on\n", "must be a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(path, "")
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yml"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_EmptyDocument(t *testing.T) {
	m, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	m, err = Parse([]byte("~\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParse_YAMLAnchors(t *testing.T) {
	m, err := Parse([]byte(`
base: &base
  log_in: Sign in
text: *base
`), FormatYAML)
	require.NoError(t, err)

	rec, err := Normalize(m)
	// "base" is passed through untouched; "text" resolves the alias.
	require.NoError(t, err)
	assert.Equal(t, "Sign in", rec.Text.LogIn)
	assert.Contains(t, rec.Extra, "base")
}

func TestParse_DatesStayText(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   map[string]any
	}{
		{
			name:   "yaml timestamp",
			data:   "default_driver: 2024-01-01\nreleased: 2024-01-01T10:00:00Z\n",
			format: FormatYAML,
			want:   map[string]any{"default_driver": "2024-01-01", "released": "2024-01-01T10:00:00Z"},
		},
		{
			name:   "toml dates and times",
			data:   "default_driver = 2024-01-01\nat = 07:30:00\nlocal = 2024-01-01T07:30:00\nreleased = 2024-01-01T10:00:00Z\n",
			format: FormatTOML,
			want: map[string]any{
				"default_driver": "2024-01-01",
				"at":             "07:30:00",
				"local":          "2024-01-01T07:30:00",
				"released":       "2024-01-01T10:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Plain())

			rec, err := Normalize(m)
			require.NoError(t, err)
			assert.Equal(t, "2024-01-01", rec.DefaultDriver)
		})
	}
}
