package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLParser(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr bool
	}{
		{
			name: "all_keys",
			data: `default_template: "%Y_%{UNIQSUFF}"
default_template_single: "%Y_%{NAME}"
default_template_desc: "%Y_%{DESC}_%{UNIQSUFF}"
default_template_desc_single: "%Y_%{DESC}_%{NAME}"
`,
			want: Config{
				DefaultTemplate:           "%Y_%{UNIQSUFF}",
				DefaultTemplateSingle:     "%Y_%{NAME}",
				DefaultTemplateDesc:       "%Y_%{DESC}_%{UNIQSUFF}",
				DefaultTemplateDescSingle: "%Y_%{DESC}_%{NAME}",
			},
		},
		{
			name: "partial_keys",
			data: `default_template: "custom_%{NUM}"` + "\n",
			want: Config{DefaultTemplate: "custom_%{NUM}"},
		},
		{
			name: "empty_file",
			data: "",
			want: Config{},
		},
		{
			name:    "unknown_key_rejected",
			data:    "default_templat: oops\n",
			wantErr: true,
		},
	}

	parser := &YAMLParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(context.Background(), []byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &tt.want, got)
		})
	}
}

func TestHCLParser(t *testing.T) {
	data := `
default_template      = "%Y%m%d_%{UNIQSUFF}"
default_template_desc = "%Y%m%d_%{DESC}_%{UNIQSUFF}"
`
	got, err := (&HCLParser{}).Parse(context.Background(), []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "%Y%m%d_%{UNIQSUFF}", got.DefaultTemplate)
	assert.Equal(t, "%Y%m%d_%{DESC}_%{UNIQSUFF}", got.DefaultTemplateDesc)
	assert.Empty(t, got.DefaultTemplateSingle)
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("renuniq.yaml"))
	assert.IsType(t, &YAMLParser{}, GetParser("renuniq.yml"))
	assert.IsType(t, &HCLParser{}, GetParser("renuniq.hcl"))
	assert.Nil(t, GetParser("renuniq.toml"))
}

func TestLoad_InheritedDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "renuniq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_template: \"base_%{NUM}\"\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	// The single variant inherits the plural key; the desc keys keep the
	// built-in descriptor template.
	assert.Equal(t, "base_%{NUM}", cfg.DefaultTemplate)
	assert.Equal(t, "base_%{NUM}", cfg.DefaultTemplateSingle)
	assert.Equal(t, BuiltinTemplateDesc, cfg.DefaultTemplateDesc)
	assert.Equal(t, BuiltinTemplateDesc, cfg.DefaultTemplateDescSingle)
}

func TestLoad_DescSingleInheritsDesc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "renuniq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_template_desc: \"d_%{DESC}\"\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "d_%{DESC}", cfg.DefaultTemplateDescSingle)
}

func TestResolve(t *testing.T) {
	t.Run("xdg_config_dir", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "renuniq"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(xdg, "renuniq", "renuniq.yaml"),
			[]byte("default_template: \"from_xdg\"\n"), 0o644))

		cfg, err := Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "from_xdg", cfg.DefaultTemplate)
	})

	t.Run("missing_config_uses_defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		homedir.Reset()
		t.Cleanup(homedir.Reset)

		cfg, err := Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestTemplateFor(t *testing.T) {
	cfg := &Config{
		DefaultTemplate:           "plain",
		DefaultTemplateSingle:     "single",
		DefaultTemplateDesc:       "desc",
		DefaultTemplateDescSingle: "desc-single",
	}

	assert.Equal(t, "plain", cfg.TemplateFor(false, false))
	assert.Equal(t, "single", cfg.TemplateFor(true, false))
	assert.Equal(t, "desc", cfg.TemplateFor(false, true))
	assert.Equal(t, "desc-single", cfg.TemplateFor(true, true))
}
