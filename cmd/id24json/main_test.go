package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vovanwin/id24json/internal/config"
	"github.com/vovanwin/id24json/pkg/compat"
)

const (
	goodGameConf = `{"type":"gameconf","version":"1.0.0","metadata":{},"data":{"executable":"mbf21","options":"comp_pursuit 1\ncomp_clipmasked 2"}}`
	badGameConf  = `{"type":"gameconf","version":"1.0.0","metadata":{},"data":{"executable":"boom2.02","options":"monkeys 1"}}`
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Команды:")

	code, _, stderr = runCLI(t, "", "bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `"bogus"`)

	code, _, _ = runCLI(t, "", "-h")
	assert.Equal(t, 0, code)
}

func TestRun_BadConfig(t *testing.T) {
	code, _, stderr := runCLI(t, "", "-config", filepath.Join(t.TempDir(), "missing.toml"), "catalog")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Ошибка")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeTempFile(t, dir, "good.json", goodGameConf)
	bad := writeTempFile(t, dir, "bad.json", badGameConf)

	code, stdout, _ := runCLI(t, "", "validate", good)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "✓ "+good)

	code, stdout, stderr := runCLI(t, "", "validate", good, bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "✗ "+bad)
	assert.Contains(t, stdout, "monkeys")
	assert.Contains(t, stderr, "1 из 2")

	code, _, _ = runCLI(t, "", "validate")
	assert.Equal(t, 1, code)
}

func TestOptionsEncode(t *testing.T) {
	dir := t.TempDir()
	preset := writeTempFile(t, dir, "preset.toml", `executable = "mbf21"

[options]
comp_pursuit = true
comp_clipmasked = "none"
`)

	code, stdout, _ := runCLI(t, "", "options", "encode", preset)
	require.Equal(t, 0, code)
	assert.Equal(t, "comp_clipmasked 2\ncomp_pursuit 1\n", stdout)

	code, stdout, _ = runCLI(t, "", "options", "encode", "-json", preset)
	require.Equal(t, 0, code)
	assert.Equal(t, `"comp_clipmasked 2\ncomp_pursuit 1"`+"\n", stdout)

	illegal := writeTempFile(t, dir, "boom.toml", `executable = "boom2.02"

[options]
monkeys = true
`)
	code, _, stderr := runCLI(t, "", "options", "encode", illegal)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "monkeys")

	code, _, _ = runCLI(t, "", "options", "encode", "-tier", "mbf", illegal)
	assert.Equal(t, 0, code)
}

func TestOptionsDecode(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "options", "decode", "-tier", "mbf21", "comp_pursuit 1")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "LEGAL (mbf21)")
	assert.Contains(t, stdout, "comp_pursuit")

	code, stdout, stderr := runCLI(t, "comp_pursuit 1\nmonkeys 1\n", "options", "decode", "-tier", "mbf21")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "not legal")
	assert.Contains(t, stderr, "monkeys")

	code, _, stderr = runCLI(t, "comp_pursuit", "options", "decode")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "line 1")

	path := writeTempFile(t, t.TempDir(), "gameconf.json", goodGameConf)
	code, stdout, _ = runCLI(t, "", "options", "decode", "-file", path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "comp_clipmasked")
}

func TestOptionsDefaults(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "options", "defaults", "mbf21")
	require.Equal(t, 0, code)
	assert.Equal(t, compat.Encode(compat.Defaults(compat.MBF21))+"\n", stdout)

	code, stdout, _ = runCLI(t, "", "options", "defaults", "-preset", "mbf21")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `executable = "mbf21"`)
	assert.Contains(t, stdout, "[options]")

	code, _, _ = runCLI(t, "", "options", "defaults", "zdoom")
	assert.Equal(t, 1, code)

	code, _, _ = runCLI(t, "", "options", "frobnicate")
	assert.Equal(t, 1, code)
}

func TestOptionsCommon(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.toml", "[options]\ncomp_pursuit = true\nmonkeys = true\n")
	b := writeTempFile(t, dir, "b.yaml", "options:\n  comp_pursuit: 1\n  monkeys: false\n")

	code, stdout, _ := runCLI(t, "", "options", "common", a, b)
	require.Equal(t, 0, code)
	assert.Equal(t, "comp_pursuit 1\n", stdout)
}

func TestCatalog(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "catalog", "-format", "text", "-tier", "mbf21")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "comp_pursuit")

	code, _, _ = runCLI(t, "", "catalog", "-format", "pdf")
	assert.Equal(t, 1, code)
}

func TestSchema(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "schema", "-type", "gameconf")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "GameConf")

	dir := filepath.Join(t.TempDir(), "schemas")
	code, _, _ = runCLI(t, "", "schema", "-out", dir)
	require.Equal(t, 0, code)
	for _, name := range []string{"gameconf", "demoloop", "sbardef", "skydefs", "interlevel", "finale"} {
		assert.FileExists(t, filepath.Join(dir, name+".schema.json"))
	}

	code, _, _ = runCLI(t, "", "schema")
	assert.Equal(t, 1, code)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := writeTempFile(t, dir, "gameconf.json", goodGameConf)

	code, stdout, _ := runCLI(t, "", "convert", src)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "options: |-\n")

	out := filepath.Join(dir, "gameconf.yaml")
	code, _, _ = runCLI(t, "", "convert", "-o", out, src)
	require.Equal(t, 0, code)

	code, stdout, _ = runCLI(t, "", "convert", out)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"options": "comp_clipmasked 2\ncomp_pursuit 1"`)

	code, _, _ = runCLI(t, "", "convert", "-to", "xml", src)
	assert.Equal(t, 1, code)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	code, stdout, _ := runCLI(t, "", "init", dir)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "created: gameconf.json")

	code, stdout, _ = runCLI(t, "", "validate", filepath.Join(dir, "gameconf.json"))
	assert.Equal(t, 0, code, stdout)

	code, _, _ = runCLI(t, "", "options", "encode", filepath.Join(dir, "preset.yaml"))
	assert.Equal(t, 0, code)
}

// syncBuffer bytes.Buffer, в который пишет горутина наблюдателя
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testApp(stdout *syncBuffer) *app {
	cfg := config.Default()
	cfg.Watch.Debounce = 20 * time.Millisecond
	return &app{cfg: cfg, log: zap.NewNop(), stdout: stdout, stderr: stdout}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	out := &syncBuffer{}
	a := testApp(out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, []string{dir}) }()

	path := filepath.Join(dir, "gameconf.json")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(badGameConf), 0o644)
		return strings.Contains(out.String(), "✗ "+path)
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("наблюдение не остановилось")
	}
}

func TestRecheck(t *testing.T) {
	dir := t.TempDir()
	out := &syncBuffer{}
	a := testApp(out)

	preset := writeTempFile(t, dir, "preset.yaml", "executable: mbf21\noptions:\n  comp_pursuit: true\n")
	a.recheck(preset)
	assert.Contains(t, out.String(), "✓ "+preset)

	broken := writeTempFile(t, dir, "broken.toml", "[options]\ncomp_nothing = 1\n")
	a.recheck(broken)
	assert.Contains(t, out.String(), "✗ ")
}
