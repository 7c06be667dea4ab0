package shaders

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"photon/internal/tactile"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeExecutor fails any source whose name starts with "bad".
type fakeExecutor struct {
	mu       sync.Mutex
	commands []tactile.Command
	infraErr map[string]error

	delay   time.Duration
	running atomic.Int32
	peak    atomic.Int32
}

func (f *fakeExecutor) Execute(_ context.Context, cmd tactile.Command) (*tactile.ExecutionResult, error) {
	now := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		peak := f.peak.Load()
		if now <= peak || f.peak.CompareAndSwap(peak, now) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	f.mu.Unlock()

	src := cmd.Arguments[0]
	if err := f.infraErr[filepath.Base(src)]; err != nil {
		return nil, err
	}
	if strings.HasPrefix(filepath.Base(src), "bad") {
		return &tactile.ExecutionResult{Success: true, ExitCode: 1, Stderr: "syntax error"}, nil
	}
	return &tactile.ExecutionResult{Success: true, ExitCode: 0, Stdout: ""}, nil
}

func shaderFiles(dir string, names ...string) []ShaderFile {
	files := make([]ShaderFile, 0, len(names))
	for _, name := range names {
		stage, _ := StageOf(name)
		files = append(files, ShaderFile{Path: filepath.Join(dir, name), Stage: stage})
	}
	return files
}

func TestCompileAll_OneOutcomePerFile(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{}
	files := shaderFiles(dir, "a.vert", "bad.frag", "c.frag")

	report := NewCompiler(exec).CompileAll(context.Background(), files, "/sdk/bin/glslc")

	require.Len(t, report.Outcomes, 3)
	assert.NotEqual(t, uuid.Nil, report.RunID)
	assert.Equal(t, "/sdk/bin/glslc", report.CompilerPath)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.False(t, report.OK())

	a := report.Outcomes[0]
	assert.Equal(t, files[0], a.Source)
	assert.True(t, a.Succeeded)
	assert.Equal(t, filepath.Join(dir, "a.spv"), a.OutputPath)

	bad := report.Outcomes[1]
	assert.Equal(t, files[1], bad.Source)
	assert.False(t, bad.Succeeded)
	assert.Equal(t, 1, bad.ExitCode)
	assert.Equal(t, "syntax error", bad.Stderr)
	assert.Equal(t, "syntax error", bad.Detail())

	assert.True(t, report.Outcomes[2].Succeeded, "files after a failure are still compiled")

	require.Len(t, exec.commands, 3)
	first := exec.commands[0]
	assert.Equal(t, "/sdk/bin/glslc", first.Binary)
	assert.Equal(t, []string{filepath.Join(dir, "a.vert"), "-o", filepath.Join(dir, "a.spv")}, first.Arguments)
	assert.Equal(t, dir, first.WorkingDirectory)
}

func TestCompileAll_AllFailuresStillReported(t *testing.T) {
	files := shaderFiles(t.TempDir(), "bad1.vert", "bad2.frag", "bad3.vert", "bad4.frag")
	report := NewCompiler(&fakeExecutor{}).CompileAll(context.Background(), files, "glslc")

	require.Len(t, report.Outcomes, len(files))
	assert.Equal(t, 0, report.Succeeded())
	for i, o := range report.Outcomes {
		assert.Equal(t, files[i], o.Source)
	}
}

func TestCompileAll_InfrastructureErrorIsFailedOutcome(t *testing.T) {
	exec := &fakeExecutor{infraErr: map[string]error{"a.vert": errors.New("binary missing")}}
	files := shaderFiles(t.TempDir(), "a.vert", "b.frag")

	report := NewCompiler(exec).CompileAll(context.Background(), files, "glslc")

	require.Len(t, report.Outcomes, 2)
	assert.False(t, report.Outcomes[0].Succeeded)
	assert.EqualError(t, report.Outcomes[0].Err, "binary missing")
	assert.Equal(t, -1, report.Outcomes[0].ExitCode)
	assert.Equal(t, "binary missing", report.Outcomes[0].Detail())
	assert.True(t, report.Outcomes[1].Succeeded)
}

func TestCompileAll_Empty(t *testing.T) {
	report := NewCompiler(&fakeExecutor{}).CompileAll(context.Background(), nil, "glslc")
	assert.Empty(t, report.Outcomes)
	assert.True(t, report.OK())
}

func TestCompileAll_ParallelKeepsInputOrder(t *testing.T) {
	exec := &fakeExecutor{delay: 20 * time.Millisecond}
	names := []string{"a.vert", "bad.frag", "c.vert", "d.frag", "e.vert", "bad2.vert", "g.frag", "h.vert"}
	files := shaderFiles(t.TempDir(), names...)

	report := NewCompiler(exec, WithParallelism(4)).CompileAll(context.Background(), files, "glslc")

	require.Len(t, report.Outcomes, len(files))
	for i, o := range report.Outcomes {
		assert.Equal(t, files[i], o.Source)
		assert.Equal(t, !strings.HasPrefix(names[i], "bad"), o.Succeeded, names[i])
	}
	assert.LessOrEqual(t, exec.peak.Load(), int32(4))
	assert.Greater(t, exec.peak.Load(), int32(1), "expected concurrent compiles")
}

func TestCompileAll_SequentialByDefault(t *testing.T) {
	exec := &fakeExecutor{delay: 5 * time.Millisecond}
	files := shaderFiles(t.TempDir(), "a.vert", "b.frag", "c.vert")

	NewCompiler(exec, WithParallelism(0)).CompileAll(context.Background(), files, "glslc")
	assert.Equal(t, int32(1), exec.peak.Load())
}

func TestCompileAll_PassesEnvironmentAndLimits(t *testing.T) {
	exec := &fakeExecutor{}
	files := shaderFiles(t.TempDir(), "a.vert")

	NewCompiler(exec, WithEnvironment([]string{"VULKAN_SDK=/sdk"}), WithMaxOutputBytes(512)).
		CompileAll(context.Background(), files, "glslc")

	require.Len(t, exec.commands, 1)
	assert.Equal(t, []string{"VULKAN_SDK=/sdk"}, exec.commands[0].Environment)
	require.NotNil(t, exec.commands[0].Limits)
	assert.Equal(t, int64(512), exec.commands[0].Limits.MaxOutputBytes)
}

// fakeGlslc writes a shell script that behaves like glslc for the tests:
// sources named bad* fail with a diagnostic, the rest produce the output.
func fakeGlslc(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler is a shell script")
	}
	script := filepath.Join(t.TempDir(), "glslc")
	body := `#!/bin/sh
src="$1"
out="$3"
case "$(basename "$src")" in
  bad*) echo "$src:3: error: 'x' : syntax error" >&2; exit 1 ;;
esac
echo "compiled $(basename "$src")"
printf 'SPIRV' > "$out"
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0755))
	return script
}

func TestCompileAll_WithFakeGlslc(t *testing.T) {
	glslc := fakeGlslc(t)
	dir := t.TempDir()
	writeFiles(t, dir, "a.vert", "bad.frag", "notes.txt")

	files, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	report := NewCompiler(tactile.NewDirectExecutor()).CompileAll(context.Background(), files, glslc)
	require.Len(t, report.Outcomes, 2)

	for _, o := range report.Outcomes {
		switch filepath.Base(o.Source.Path) {
		case "a.vert":
			assert.True(t, o.Succeeded)
			assert.Equal(t, "compiled a.vert\n", o.Detail())
			data, err := os.ReadFile(filepath.Join(dir, "a.spv"))
			require.NoError(t, err)
			assert.Equal(t, "SPIRV", string(data))
		case "bad.frag":
			assert.False(t, o.Succeeded)
			assert.Equal(t, 1, o.ExitCode)
			assert.Contains(t, o.Stderr, "syntax error")
			assert.NoFileExists(t, filepath.Join(dir, "bad.spv"))
		default:
			t.Fatalf("unexpected outcome for %s", o.Source.Path)
		}
	}
}

func TestLocateCompiler(t *testing.T) {
	root := t.TempDir()

	_, err := LocateCompiler(root, "linux")
	require.ErrorIs(t, err, ErrCompilerNotFound)

	_, err = LocateCompiler("", "linux")
	require.ErrorIs(t, err, ErrCompilerNotFound)

	unix := filepath.Join(root, "bin", "glslc")
	writeFiles(t, root, filepath.Join("bin", "glslc"))
	got, err := LocateCompiler(root, "linux")
	require.NoError(t, err)
	assert.Equal(t, unix, got)

	win := filepath.Join(root, "Bin", "glslc.exe")
	writeFiles(t, root, filepath.Join("Bin", "glslc.exe"))
	got, err = LocateCompiler(root, "windows")
	require.NoError(t, err)
	assert.Equal(t, win, got)
}

func TestLocateCompiler_DirectoryIsNotACompiler(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin", "glslc"), 0755))

	_, err := LocateCompiler(root, "linux")
	assert.ErrorIs(t, err, ErrCompilerNotFound)
}
