package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/aplet/pkg/errors"
	"github.com/matzehuels/aplet/pkg/fm"
	pkgio "github.com/matzehuels/aplet/pkg/io"
)

var testProject = filepath.Join("testdata", "project")

// execute runs the CLI against the test project and returns everything
// written to the command's output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"-c", testProject}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"init", "config", "optional", "toggles", "trim", "status", "products", "matrix", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("no-cache"))
}

func TestOptionalCommand(t *testing.T) {
	out, err := execute(t, "--no-cache", "optional")

	require.NoError(t, err)
	assert.Equal(t, "Priorities\nTags\nStorage\nLocalStorage\nRemoteStorage\n", out)
}

func TestTogglesCommand(t *testing.T) {
	out, err := execute(t, "--no-cache", "toggles", "Basic")

	require.NoError(t, err)
	assert.Equal(t,
		"AddTodo\nListTodos\nStorage\nLocalStorage\ntodoapp\nNotPriorities\nNotRemoteStorage\nNotTags\n",
		out)
}

func TestTogglesRunnerCommandLine(t *testing.T) {
	out, err := execute(t, "--no-cache", "toggles", "Minimal", "--runner")

	require.NoError(t, err)
	assert.Equal(t,
		"vendor/bin/codecept run acceptance --xml -g AddTodo -g ListTodos -g todoapp -g NotLocalStorage -g NotPriorities -g NotRemoteStorage -g NotStorage -g NotTags\n",
		out)
}

func TestTogglesUnknownProduct(t *testing.T) {
	_, err := execute(t, "--no-cache", "toggles", "Deluxe")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound), "got %v", err)
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestTrimCommand(t *testing.T) {
	out, err := execute(t, "--no-cache", "trim", "Basic")
	require.NoError(t, err)

	tree, product, err := pkgio.ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Basic", product)
	assert.Equal(t,
		[]string{"todoapp", "AddTodo", "ListTodos", "Organisation", "Storage", "LocalStorage"},
		fm.Names(tree.Features()))
}

func TestTrimCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.json")

	out, err := execute(t, "--no-cache", "trim", "Full", "-o", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Trimmed Full to")
	assert.Contains(t, out, path)

	tree, product, err := pkgio.ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "Full", product)
	assert.Nil(t, tree.Find("LocalStorage"))
	assert.NotNil(t, tree.Find("RemoteStorage"))
}

func TestStatusWholeLine(t *testing.T) {
	out, err := execute(t, "--no-cache", "status", "--all", "--scenarios")

	require.NoError(t, err)
	assert.Contains(t, out, "todoapp")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "2 report(s)")
	assert.Contains(t, out, "Add multi-word todo")
	assert.Contains(t, out, "└── ")
}

func TestStatusProduct(t *testing.T) {
	tests := []struct {
		product string
		want    []string
	}{
		{"Basic", []string{"todoapp / Basic", "passed", "1 report(s)"}},
		{"Full", []string{"todoapp / Full", "failed"}},
		{"Minimal", []string{"todoapp / Minimal", "inconclusive", "No report for Minimal"}},
	}

	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			out, err := execute(t, "--no-cache", "status", tt.product)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestStatusJSON(t *testing.T) {
	out, err := execute(t, "--no-cache", "status", "Full", "--json")
	require.NoError(t, err)

	tree, product, err := pkgio.ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Full", product)
	assert.Equal(t, fm.Failed, tree.Root.Status)
	assert.Equal(t, fm.Passed, tree.Find("Priorities").Status)
	assert.Equal(t, fm.Inconclusive, tree.Find("Tags").Status)
}

func TestStatusMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aplet.prom")

	_, err := execute(t, "--no-cache", "status", "Basic", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `aplet_product_state{product="Basic",state="passed"} 1`)
	assert.Contains(t, text, `aplet_feature_state{feature="AddTodo",product="Basic",state="passed"} 1`)
	assert.Contains(t, text, `aplet_stage_duration_seconds_count{result="ok",stage="parse_model"} 1`)
}

func TestProductsCommand(t *testing.T) {
	out, err := execute(t, "--no-cache", "products", "--toggles")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PRODUCT")
	assert.Contains(t, lines[0], "TOGGLES")
	assert.Contains(t, lines[1], "Basic")
	assert.Contains(t, lines[1], "passed")
	assert.Contains(t, lines[1], "NotTags")
	assert.Contains(t, lines[2], "failed")
	assert.Contains(t, lines[3], "inconclusive")
}

func TestProductsCommandEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aplet.yml"), []byte("project_name: empty\n"), 0o644))

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"-c", dir, "--no-cache", "products"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "No product configurations")
}

func TestMatrixCommand(t *testing.T) {
	out, err := execute(t, "--no-cache", "matrix")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "FEATURE")
	assert.Contains(t, lines[0], "Minimal")
	assert.Contains(t, out, "Organisation *")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "aplet.yml")
	assert.Contains(t, out, "project_name: todoapp")
	assert.Contains(t, out, "command: vendor/bin/codecept")
}

func TestConfigCommandMissingFile(t *testing.T) {
	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"-c", filepath.Join(t.TempDir(), "nope.yml"), "config"})

	err := root.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized product line")
	assert.FileExists(t, filepath.Join(dir, "aplet.yml"))
	assert.FileExists(t, filepath.Join(dir, "productline", "model.xml"))
	assert.DirExists(t, filepath.Join(dir, "testreports"))

	out, err = execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	out, err := execute(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, appName)+"\n", out)

	_, err = execute(t, "status", "--all")
	require.NoError(t, err)

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 3 cached entries")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")

	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompleteProducts(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = testProject

	got, _ := c.completeProducts(nil, nil, "")
	assert.Equal(t, []string{"Basic", "Full", "Minimal"}, got)

	got, _ = c.completeProducts(nil, nil, "F")
	assert.Equal(t, []string{"Full"}, got)

	got, _ = c.completeProducts(nil, []string{"Basic"}, "")
	assert.Empty(t, got)
}
