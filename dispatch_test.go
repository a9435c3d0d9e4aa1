package extr_test

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Defacto2/extr"
	"github.com/Defacto2/extr/process"
	"github.com/Defacto2/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runner records the commands it is asked to run.
type runner struct {
	mu    sync.Mutex
	cmds  []process.Command
	check func(c process.Command) error
}

func (r *runner) RunContext(_ context.Context, c process.Command, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, c)
	if r.check != nil {
		return r.check(c)
	}
	return nil
}

func (r *runner) runs() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]process.Command(nil), r.cmds...)
}

// host is a fake search path of program names to their paths.
type host map[string]string

func (h host) lookPath(name string) (string, error) {
	if p, ok := h[name]; ok {
		return p, nil
	}
	return "", exec.ErrNotFound
}

func trustedBin(path string) bool {
	return strings.HasPrefix(path, "/usr/bin/")
}

func dispatcher(r *runner, h host, adapters ...extr.Adapter) *extr.Dispatcher {
	return extr.New(extr.NewRegistry(adapters...),
		extr.WithLookPath(h.lookPath),
		extr.WithTrust(trustedBin),
		extr.WithRunner(r))
}

var (
	zipper = fake{name: "zip", exts: []string{"zip"}, bins: []string{"unzip", "7z"}}
	tarrer = fake{name: "tar", exts: []string{"tar", "tar.gz"}, bins: []string{"tar"}}
	gzipr  = fake{name: "gzip", exts: []string{"gz"}, bins: []string{"gzip"}}
)

func TestResolve(t *testing.T) {
	t.Parallel()
	abc := fake{exts: []string{"abc"}, bins: []string{"a", "b", "c"}}
	tests := []struct {
		name    string
		host    host
		want    string
		wantErr bool
	}{
		{"second candidate", host{"b": "/usr/bin/b", "c": "/usr/bin/c"}, "/usr/bin/b", false},
		{"first candidate", host{"a": "/usr/bin/a", "b": "/usr/bin/b"}, "/usr/bin/a", false},
		{"untrusted skipped", host{"a": "/tmp/a", "b": "/home/x/b", "c": "/usr/bin/c"}, "/usr/bin/c", false},
		{"all untrusted", host{"a": "/tmp/a", "b": "/tmp/b", "c": "/tmp/c"}, "", true},
		{"none installed", host{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := dispatcher(&runner{}, tt.host, abc)
			res, err := d.Resolve("file.ABC")
			if tt.wantErr {
				require.ErrorIs(t, err, extr.ErrNoTrustedTool)
				var nt *extr.NoTrustedToolError
				require.ErrorAs(t, err, &nt)
				assert.Equal(t, "abc", nt.Key)
				assert.Equal(t, []string{"a", "b", "c"}, nt.Candidates)
				for _, name := range []string{"a", "b", "c"} {
					assert.Contains(t, err.Error(), name)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Binary)
			assert.Equal(t, "abc", res.Key)
			assert.Equal(t, "file.ABC", res.File)
		})
	}
}

func TestResolve_Unsupported(t *testing.T) {
	t.Parallel()
	d := dispatcher(&runner{}, host{"unzip": "/usr/bin/unzip"}, zipper)
	for _, file := range []string{"x.rar", "README", "x.zip.bak"} {
		_, err := d.Resolve(file)
		require.ErrorIs(t, err, extr.ErrUnsupportedFormat, file)
		assert.NotErrorIs(t, err, extr.ErrNoTrustedTool)
	}
	res, err := d.Resolve("X.ZIP")
	require.NoError(t, err)
	assert.Equal(t, "zip", res.Key)
}

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()
	h := host{"tar": "/usr/bin/tar", "gzip": "/usr/bin/gzip"}
	d := dispatcher(&runner{}, h, tarrer, gzipr)
	res, err := d.Resolve("release.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "tar.gz", res.Key)
	assert.Equal(t, "/usr/bin/tar", res.Binary)

	res, err = d.Resolve("release.gz")
	require.NoError(t, err)
	assert.Equal(t, "gz", res.Key)
	assert.Equal(t, "/usr/bin/gzip", res.Binary)
}

// gzipFile writes a small gzip stream into the named file.
func gzipFile(t *testing.T, name string) {
	t.Helper()
	f, err := os.Create(name)
	require.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestResolve_Signature(t *testing.T) {
	t.Parallel()
	name := filepath.Join(t.TempDir(), "DOWNLOAD.BIN")
	gzipFile(t, name)
	h := host{"gzip": "/usr/bin/gzip"}

	d := dispatcher(&runner{}, h, gzipr)
	_, err := d.Resolve(name)
	require.ErrorIs(t, err, extr.ErrUnsupportedFormat)

	d = extr.New(extr.NewRegistry(gzipr),
		extr.WithLookPath(h.lookPath),
		extr.WithTrust(trustedBin),
		extr.WithRunner(&runner{}),
		extr.WithSignature())
	res, err := d.Resolve(name)
	require.NoError(t, err)
	assert.Equal(t, "gz", res.Key)

	_, err = d.Resolve(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, extr.ErrUnsupportedFormat)

	key, err := extr.Sniff(name)
	require.NoError(t, err)
	assert.Equal(t, "gz", key)

	_, err = extr.Sniff(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestExtract(t *testing.T) {
	t.Parallel()
	r := &runner{}
	d := dispatcher(r, host{"unzip": "/usr/bin/unzip"}, zipper)
	dst := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, d.Extract("testdata.zip", dst, false))
	assert.DirExists(t, dst)

	cmds := r.runs()
	require.Len(t, cmds, 1)
	assert.Equal(t, "/usr/bin/unzip", cmds[0].Path)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(wd, "testdata.zip"), dst}, cmds[0].Args)
}

func TestExtract_DefaultOutput(t *testing.T) {
	t.Parallel()
	r := &runner{}
	d := dispatcher(r, host{"unzip": "/usr/bin/unzip"}, zipper)
	require.NoError(t, d.Extract("testdata.zip", "", false))
	wd, err := os.Getwd()
	require.NoError(t, err)
	cmds := r.runs()
	require.Len(t, cmds, 1)
	assert.Equal(t, wd, cmds[0].Args[1])
}

func TestExtract_Build(t *testing.T) {
	t.Parallel()
	errBad := errors.New("bad variant")
	bad := fake{exts: []string{"bad"}, bins: []string{"bad"},
		build: func(string, string, string, bool) (process.Command, error) {
			return process.Command{}, errBad
		}}
	r := &runner{}
	d := dispatcher(r, host{"bad": "/usr/bin/bad"}, bad)
	dst := filepath.Join(t.TempDir(), "out")
	err := d.Extract("x.bad", dst, false)
	require.ErrorIs(t, err, extr.ErrAdapterBuild)
	require.ErrorIs(t, err, errBad)
	assert.NoDirExists(t, dst)
	assert.Empty(t, r.runs())
}

func TestExtract_Failures(t *testing.T) {
	t.Parallel()
	exit := &process.ExitError{Path: "/usr/bin/unzip", Code: 9, Status: "exit status 9"}
	r := &runner{check: func(process.Command) error { return exit }}
	d := dispatcher(r, host{"unzip": "/usr/bin/unzip"}, zipper)
	err := d.Extract("x.zip", t.TempDir(), true)
	require.ErrorIs(t, err, extr.ErrExecution)
	var ee *process.ExitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 9, ee.Code)

	spawn := &runner{check: func(process.Command) error { return process.ErrSpawn }}
	d = dispatcher(spawn, host{"unzip": "/usr/bin/unzip"}, zipper)
	err = d.Extract("x.zip", t.TempDir(), true)
	require.ErrorIs(t, err, extr.ErrSpawn)
	assert.NotErrorIs(t, err, extr.ErrExecution)
}

func TestExtract_OutputIsFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, helper.Touch(file))
	d := dispatcher(&runner{}, host{"unzip": "/usr/bin/unzip"}, zipper)
	err := d.Extract("x.zip", filepath.Join(file, "out"), false)
	require.ErrorIs(t, err, extr.ErrIO)
}

func stager() fake {
	return fake{exts: []string{"arc"}, bins: []string{"arc"},
		build: func(binary, file, outputDir string, _ bool) (process.Command, error) {
			return process.Command{
				Path:  binary,
				Args:  []string{"x", filepath.Base(file)},
				Dir:   outputDir,
				Stage: file,
			}, nil
		}}
}

func TestExtract_Stage(t *testing.T) {
	t.Parallel()
	src := filepath.Join(t.TempDir(), "ARC601.ARC")
	require.NoError(t, os.WriteFile(src, []byte("arc data"), helper.WriteWriteRead))
	dst := filepath.Join(t.TempDir(), "out")
	staged := filepath.Join(dst, "ARC601.ARC")

	r := &runner{check: func(c process.Command) error {
		// the copy is in the working directory while the program runs
		b, err := os.ReadFile(filepath.Join(c.Dir, c.Args[1]))
		if err != nil {
			return err
		}
		if string(b) != "arc data" {
			return errors.New("unexpected staged content")
		}
		return nil
	}}
	d := dispatcher(r, host{"arc": "/usr/bin/arc"}, stager())
	require.NoError(t, d.Extract(src, dst, false))
	require.Len(t, r.runs(), 1)
	assert.NoFileExists(t, staged)
	assert.FileExists(t, src)

	n, err := helper.Count(dst)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExtract_StageInPlace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "ARC601.ARC")
	require.NoError(t, os.WriteFile(src, []byte("arc data"), helper.WriteWriteRead))
	d := dispatcher(&runner{}, host{"arc": "/usr/bin/arc"}, stager())
	require.NoError(t, d.Extract(src, dir, false))
	// the source archive is never removed
	assert.FileExists(t, src)
}

func TestExtract_StageExisting(t *testing.T) {
	t.Parallel()
	src := filepath.Join(t.TempDir(), "ARC601.ARC")
	require.NoError(t, os.WriteFile(src, []byte("arc data"), helper.WriteWriteRead))
	dst := t.TempDir()
	other := filepath.Join(dst, "ARC601.ARC")
	require.NoError(t, os.WriteFile(other, []byte("keep"), helper.WriteWriteRead))
	r := &runner{}
	d := dispatcher(r, host{"arc": "/usr/bin/arc"}, stager())
	err := d.Extract(src, dst, false)
	require.ErrorIs(t, err, extr.ErrIO)
	assert.Empty(t, r.runs())
	b, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(b))
}

func TestExtractAll_Validation(t *testing.T) {
	t.Parallel()
	r := &runner{}
	d := dispatcher(r, host{"unzip": "/usr/bin/unzip"}, zipper)
	dst := filepath.Join(t.TempDir(), "out")
	err := d.ExtractAll([]string{"a.zip", "b.unknownext"}, dst, false)
	require.ErrorIs(t, err, extr.ErrUnsupportedFormat)
	assert.NoDirExists(t, dst)
	assert.Empty(t, r.runs())

	err = d.ExtractAll([]string{"a.zip", "b.tar"}, dst, false)
	require.ErrorIs(t, err, extr.ErrUnsupportedFormat)
	assert.NoDirExists(t, dst)

	d = dispatcher(r, host{"unzip": "/usr/bin/unzip"}, zipper, tarrer)
	err = d.ExtractAll([]string{"a.zip", "b.tar"}, dst, false)
	require.ErrorIs(t, err, extr.ErrNoTrustedTool)
	assert.NoDirExists(t, dst)
	assert.Empty(t, r.runs())
}

func TestExtractAll_UnregisteredContent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	b := filepath.Join(dir, "b.unknownext")
	gzipFile(t, b)
	r := &runner{}
	d := dispatcher(r, host{"unzip": "/usr/bin/unzip", "gzip": "/usr/bin/gzip"}, zipper, gzipr)
	dst := filepath.Join(dir, "out")
	err := d.ExtractAll([]string{"a.zip", b}, dst, false)
	require.ErrorIs(t, err, extr.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "unknownext")
	assert.NoDirExists(t, dst)
	assert.Empty(t, r.runs())
}

func TestExtractAll_FailFast(t *testing.T) {
	t.Parallel()
	r := &runner{check: func(c process.Command) error {
		if filepath.Base(c.Args[0]) == "b.zip" {
			return &process.ExitError{Path: c.Path, Code: 1, Status: "exit status 1"}
		}
		return nil
	}}
	d := dispatcher(r, host{"unzip": "/usr/bin/unzip"}, zipper)
	err := d.ExtractAll([]string{"a.zip", "b.zip", "c.zip"}, t.TempDir(), false)
	require.ErrorIs(t, err, extr.ErrExecution)
	cmds := r.runs()
	require.Len(t, cmds, 2)
	assert.Equal(t, "a.zip", filepath.Base(cmds[0].Args[0]))
	assert.Equal(t, "b.zip", filepath.Base(cmds[1].Args[0]))

	require.NoError(t, d.ExtractAll(nil, t.TempDir(), false))
}

func TestExtract_Timeout(t *testing.T) {
	t.Parallel()
	var deadline bool
	r := &runnerFunc{fn: func(ctx context.Context, _ process.Command, _ bool) error {
		_, deadline = ctx.Deadline()
		return nil
	}}
	d := extr.New(extr.NewRegistry(zipper),
		extr.WithLookPath(host{"unzip": "/usr/bin/unzip"}.lookPath),
		extr.WithTrust(trustedBin),
		extr.WithRunner(r),
		extr.WithTimeout(time.Minute))
	require.NoError(t, d.Extract("x.zip", t.TempDir(), false))
	assert.True(t, deadline)
}

type runnerFunc struct {
	fn func(ctx context.Context, c process.Command, verbose bool) error
}

func (r *runnerFunc) RunContext(ctx context.Context, c process.Command, verbose bool) error {
	return r.fn(ctx, c, verbose)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := host{"unzip": "/usr/bin/unzip", "7z": "/tmp/7z", "tar": "/usr/bin/tar"}
	d := dispatcher(&runner{}, h, zipper, tarrer, gzipr)
	formats := d.Health()
	require.Len(t, formats, 4)
	keys := make([]string, 0, len(formats))
	for _, f := range formats {
		keys = append(keys, f.Ext)
	}
	assert.Equal(t, []string{"gz", "tar", "tar.gz", "zip"}, keys)

	assert.Equal(t, []extr.Tool{{Name: "gzip"}}, formats[0].Tools)
	assert.False(t, formats[0].Usable())
	assert.True(t, formats[1].Usable())
	assert.Equal(t, []extr.Tool{
		{Name: "unzip", Path: "/usr/bin/unzip", Available: true},
		{Name: "7z", Path: "/tmp/7z", Available: false},
	}, formats[3].Tools)
}
