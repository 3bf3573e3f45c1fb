package assemble_test

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gh0st17/upkextract/arc/internal/assemble"
	"github.com/gh0st17/upkextract/arc/internal/scan"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/spf13/afero"
)

const outDir = "/out"

var allOn = assemble.Options{OutputDir: outDir, EmitMeta: true, EmitPreview: true}

func stage(t *testing.T, fsys afero.Fs, id string, files map[string][]byte) scan.AssetDir {
	t.Helper()

	dir := scan.AssetDir{Name: id, Path: filepath.Join("/stage", id)}
	if err := fsys.MkdirAll(dir.Path, 0755); err != nil {
		t.Fatal(err)
	}
	for name, data := range files {
		if err := afero.WriteFile(fsys, filepath.Join(dir.Path, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func expectFile(t *testing.T, fsys afero.Fs, path string, want []byte) {
	t.Helper()

	got, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("'%s': %v", path, err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("'%s': expected %v got %v", path, want, got)
	}
}

func expectAbsent(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()

	if ok, _ := afero.Exists(fsys, path); ok {
		t.Errorf("'%s' must not exist", path)
	}
}

func TestAssemblePayload(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := stage(t, fsys, "0a1b", map[string][]byte{
		"asset":    {0x01, 0x02, 0x03},
		"pathname": []byte("Assets/Foo/Bar.txt"),
	})

	out, err := assemble.Assemble(fsys, dir, allOn)
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(outDir, "Assets", "Foo", "Bar.txt")
	if out.Path != want || !out.Written || out.Bytes != 3 {
		t.Errorf("unexpected output %+v", out)
	}
	expectFile(t, fsys, want, []byte{0x01, 0x02, 0x03})
}

func TestAssemblePreview(t *testing.T) {
	files := map[string][]byte{
		"asset":       {9},
		"pathname":    []byte("Assets/Foo.png"),
		"preview.png": {0x89, 0x50},
	}
	preview := filepath.Join(outDir, "Assets", "Foo_preview.png")

	fsys := afero.NewMemMapFs()
	if _, err := assemble.Assemble(fsys, stage(t, fsys, "0a1b", files), allOn); err != nil {
		t.Fatal(err)
	}
	expectFile(t, fsys, preview, []byte{0x89, 0x50})

	fsys = afero.NewMemMapFs()
	opts := allOn
	opts.EmitPreview = false
	if _, err := assemble.Assemble(fsys, stage(t, fsys, "0a1b", files), opts); err != nil {
		t.Fatal(err)
	}
	expectAbsent(t, fsys, preview)
	expectFile(t, fsys, filepath.Join(outDir, "Assets", "Foo.png"), []byte{9})
}

func TestAssembleMeta(t *testing.T) {
	files := map[string][]byte{
		"asset":      {1},
		"pathname":   []byte("Assets/Scene.unity"),
		"asset.meta": []byte("guid: 0a1b"),
	}
	meta := filepath.Join(outDir, "Assets", "Scene.unity.meta")

	fsys := afero.NewMemMapFs()
	if _, err := assemble.Assemble(fsys, stage(t, fsys, "0a1b", files), allOn); err != nil {
		t.Fatal(err)
	}
	expectFile(t, fsys, meta, []byte("guid: 0a1b"))

	fsys = afero.NewMemMapFs()
	opts := allOn
	opts.EmitMeta = false
	if _, err := assemble.Assemble(fsys, stage(t, fsys, "0a1b", files), opts); err != nil {
		t.Fatal(err)
	}
	expectAbsent(t, fsys, meta)
}

func TestAssembleMissingPathname(t *testing.T) {
	for name, files := range map[string]map[string][]byte{
		"absent":     {"asset": {1}},
		"empty":      {"asset": {1}, "pathname": {}},
		"whitespace": {"asset": {1}, "pathname": []byte(" \t\r\n")},
		"dots":       {"asset": {1}, "pathname": []byte("./..")},
	} {
		fsys := afero.NewMemMapFs()
		_, err := assemble.Assemble(fsys, stage(t, fsys, "dead", files), allOn)

		if !errors.Is(err, errtype.MissingPathError) {
			t.Errorf("%s: expected MissingPathError, got %v", name, err)
		}
		if ok, _ := afero.Exists(fsys, outDir); ok {
			t.Errorf("%s: nothing must be written", name)
		}
	}
}

func TestAssembleEmptyPayload(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := stage(t, fsys, "0a1b", map[string][]byte{
		"asset":       {},
		"pathname":    []byte("Assets/Folder"),
		"asset.meta":  []byte("folderAsset: yes"),
		"preview.png": {1},
	})

	out, err := assemble.Assemble(fsys, dir, allOn)
	if err != nil {
		t.Fatal(err)
	}
	if out.Written {
		t.Error("empty payload must not be written")
	}

	expectAbsent(t, fsys, filepath.Join(outDir, "Assets", "Folder"))
	expectFile(t, fsys, filepath.Join(outDir, "Assets", "Folder.meta"), []byte("folderAsset: yes"))
	expectFile(t, fsys, filepath.Join(outDir, "Assets", "Folder_preview.png"), []byte{1})
}

func TestAssembleFirstLineOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := stage(t, fsys, "0a1b", map[string][]byte{
		"asset":    {5},
		"pathname": []byte("Assets/Win.cs\r\n00\x00"),
	})

	out, err := assemble.Assemble(fsys, dir, allOn)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(outDir, "Assets", "Win.cs"); out.Path != want {
		t.Errorf("expected %s got %s", want, out.Path)
	}
}

func TestAssembleUnknownMember(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := stage(t, fsys, "0a1b", map[string][]byte{
		"asset":     {5},
		"pathname":  []byte("Assets/A.txt"),
		"extra.bin": {1, 2},
	})

	if _, err := assemble.Assemble(fsys, dir, allOn); err != nil {
		t.Fatalf("unknown member must not fail: %v", err)
	}
	expectFile(t, fsys, filepath.Join(outDir, "Assets", "A.txt"), []byte{5})
}

func TestAssembleOverwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	target := filepath.Join(outDir, "Assets", "A.txt")
	fsys.MkdirAll(filepath.Dir(target), 0755)
	afero.WriteFile(fsys, target, []byte("old and longer"), 0644)

	dir := stage(t, fsys, "0a1b", map[string][]byte{"asset": {5}, "pathname": []byte("Assets/A.txt")})
	if _, err := assemble.Assemble(fsys, dir, allOn); err != nil {
		t.Fatal(err)
	}
	expectFile(t, fsys, target, []byte{5})
}

func TestAssembleWriteError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	// Файл на месте родительской директории
	fsys.MkdirAll(outDir, 0755)
	afero.WriteFile(fsys, filepath.Join(outDir, "Assets"), []byte{0}, 0644)

	dir := stage(t, fsys, "0a1b", map[string][]byte{"asset": {5}, "pathname": []byte("Assets/A.txt")})
	_, err := assemble.Assemble(fsys, dir, allOn)
	if !errors.Is(err, errtype.AssetWriteError) {
		t.Fatalf("expected AssetWriteError, got %v", err)
	}
	if errtype.ExitCode(err) != errtype.CodeAsset {
		t.Errorf("unexpected exit code %d", errtype.ExitCode(err))
	}
}

func TestAssembleStaysInsideOutput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := stage(t, fsys, "0a1b", map[string][]byte{"asset": {5}, "pathname": []byte("../../etc/evil")})

	out, err := assemble.Assemble(fsys, dir, allOn)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(outDir, "etc", "evil"); out.Path != want {
		t.Errorf("expected %s got %s", want, out.Path)
	}
}

func TestPreviewPath(t *testing.T) {
	cases := map[string]string{
		"/out/Assets/Foo.png":    "/out/Assets/Foo_preview.png",
		"/out/Assets/Bar.txt":    "/out/Assets/Bar_preview.png",
		"/out/Assets/NoExt":      "/out/Assets/NoExt_preview.png",
		"/out/Assets/a.b/c.anim": "/out/Assets/a.b/c_preview.png",
	}
	for in, want := range cases {
		if got := assemble.PreviewPath(in); got != want {
			t.Errorf("PreviewPath(%q): expected %q got %q", in, want, got)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]assemble.Kind{
		"asset":       assemble.Payload,
		"pathname":    assemble.Pathname,
		"asset.meta":  assemble.Metadata,
		"preview.png": assemble.Preview,
		"Asset":       assemble.Unrecognized,
		"pathname.1":  assemble.Unrecognized,
	}
	for name, want := range cases {
		if got := assemble.Classify(name); got != want {
			t.Errorf("Classify(%q): expected %s got %s", name, want, got)
		}
	}
}
