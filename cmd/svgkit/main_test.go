package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/dev"
	svgerrors "github.com/vango-dev/svgkit/internal/errors"
)

const testScene = `{"tag": "svg", "attrs": {"width": 10}, "children": [{"tag": "rect", "attrs": {"x": 1}}]}`

// project creates a directory with a default configuration and a scene.
func project(t *testing.T, sceneName, scene string) (dir, configPath, scenePath string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, config.TOMLFileName)
	require.NoError(t, config.New().SaveTo(configPath))
	scenePath = filepath.Join(dir, sceneName)
	require.NoError(t, os.WriteFile(scenePath, []byte(scene), 0644))
	return dir, configPath, scenePath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	cmd := newRootCmd(&globalFlags{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	se, ok := err.(*svgerrors.SvgkitError)
	require.True(t, ok, "expected *SvgkitError, got %T: %v", err, err)
	assert.Equal(t, code, se.Code, se.Error())
}

func TestRender_Stdout(t *testing.T) {
	_, cfg, scene := project(t, "a.json", testScene)

	out, err := execute(t, "render", scene, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t,
		`<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
			`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="10"><rect x="1" /></svg>`+"\n",
		out)

	out, err = execute(t, "render", scene, "--config", cfg, "--no-declaration")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg "))
}

func TestRender_File(t *testing.T) {
	dir, cfg, scene := project(t, "a.toml", "tag = \"svg\"\ntext = \"hi\"\n")
	target := filepath.Join(dir, "out", "a.svg")

	out, err := execute(t, "render", scene, "--config", cfg, "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), ">hi</svg>")
}

func TestRender_Errors(t *testing.T) {
	_, cfg, scene := project(t, "a.json", `{"tag": "svg",`)
	_, err := execute(t, "render", scene, "--config", cfg)
	requireCode(t, err, "E101")

	_, cfg, scene = project(t, "b.json", `{"tag": "svg", "children": [{"tag": "blink"}]}`)
	_, err = execute(t, "render", scene, "--config", cfg, "--strict")
	requireCode(t, err, "E110")

	_, err = execute(t, "render", filepath.Join(t.TempDir(), "missing.json"), "--config", cfg)
	requireCode(t, err, "E100")

	_, err = execute(t, "render", "scene.yaml", "--config", cfg)
	requireCode(t, err, "E104")
}

func TestRender_MissingConfig(t *testing.T) {
	_, _, scene := project(t, "a.json", testScene)
	_, err := execute(t, "render", scene, "--config", filepath.Join(t.TempDir(), "svgkit.json"))
	requireCode(t, err, "E202")
}

func TestInspect(t *testing.T) {
	_, _, scene := project(t, "a.json", testScene)
	out, err := execute(t, "inspect", scene)
	require.NoError(t, err)
	assert.Contains(t, out, "svg width=10")
	assert.Contains(t, out, "rect x=1")
}

func TestValidate(t *testing.T) {
	_, _, good := project(t, "good.json", testScene)
	_, _, bad := project(t, "bad.json", `{"tag": "svg", "children": [{"tag": "blink"}]}`)

	_, err := execute(t, "validate", good)
	require.NoError(t, err)

	out, err := execute(t, "validate", good, bad)
	requireCode(t, err, "E110")
	assert.Contains(t, out, "blink")
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	_, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.TOMLFileName))
	assert.FileExists(t, filepath.Join(dir, "scene.json"))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)

	_, err = execute(t, "init", dir)
	require.Error(t, err)

	_, err = execute(t, "init", dir, "--force", "--format", "json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.ConfigFileName))

	_, err = execute(t, "init", dir, "--format", "yaml")
	requireCode(t, err, "E201")

	// The example scene renders cleanly in strict mode.
	_, err = execute(t, "validate", filepath.Join(dir, "scene.json"))
	require.NoError(t, err)
}

func TestPublish_NoBucket(t *testing.T) {
	_, cfg, scene := project(t, "a.json", testScene)
	_, err := execute(t, "publish", scene, "--config", cfg)
	requireCode(t, err, "E302")
}

func TestPublish_UnknownProfile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "aws-config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "aws-credentials"))
	t.Setenv("AWS_PROFILE", "")

	_, cfgPath, scene := project(t, "a.json", testScene)
	cfg := config.New()
	cfg.Publish.Bucket = "assets"
	cfg.Publish.Profile = "nope"
	require.NoError(t, cfg.SaveTo(cfgPath))

	_, err := execute(t, "publish", scene, "--config", cfgPath)
	requireCode(t, err, "E301")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2<<20))
}

func TestReloadRenderer_KeepsStrictFlag(t *testing.T) {
	_, cfg, scene := project(t, "b.json", `{"tag": "svg", "children": [{"tag": "blink"}]}`)

	preview := &dev.Preview{}
	reloadRenderer(preview, true)(cfg)
	require.NotNil(t, preview.Render)
	_, err := preview.Render(scene)
	assert.Error(t, err, "--strict survives a configuration reload")

	reloadRenderer(preview, false)(cfg)
	out, err := preview.Render(scene)
	require.NoError(t, err)
	assert.Contains(t, out, "<blink></blink>")

	reloadRenderer(preview, true)(filepath.Join(t.TempDir(), "missing.toml"))
	_, err = preview.Render(scene)
	assert.NoError(t, err, "a failed reload keeps the previous renderer")
}
