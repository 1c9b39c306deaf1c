package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
)

func writeInputs(t *testing.T, dir string, n int) []string {
	t.Helper()
	var paths []string
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, fmt.Sprintf("msg%02d.txt", i))
		body := bytes.Repeat([]byte(fmt.Sprintf("message %d ", i)), 10+i)
		if err := os.WriteFile(p, body, 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func testConfig(out string) Config {
	return Config{
		Geometry:  a51.Canonical(),
		Key:       bits.FromBytesLSB([]byte{0x12, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}),
		OutputDir: out,
		Workers:   4,
	}
}

func TestRunRoundTrip(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "in")
	if err := os.MkdirAll(in, 0755); err != nil {
		t.Fatal(err)
	}
	paths := writeInputs(t, in, 9)

	enc := testConfig(filepath.Join(root, "enc"))
	results := Run(enc, Jobs(paths, 100))
	for _, r := range results {
		if !r.Success {
			t.Fatalf("%s: %s", r.Path, r.Error)
		}
	}
	if results[3].Frame != 103 || filepath.Base(results[3].Output) != "msg03.txt.a51" {
		t.Errorf("result 3 = %+v", results[3])
	}

	manifest := filepath.Join(enc.OutputDir, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadManifest(manifest)
	if err != nil {
		t.Fatal(err)
	}

	dec := testConfig(filepath.Join(root, "dec"))
	dec.Decrypt = true
	back := Run(dec, ManifestJobs(enc.OutputDir, entries))
	if len(back) != len(paths) {
		t.Fatalf("%d decrypted, want %d", len(back), len(paths))
	}
	for i, r := range back {
		if !r.Success {
			t.Fatalf("%s: %s", r.Path, r.Error)
		}
		want, _ := os.ReadFile(paths[i])
		got, _ := os.ReadFile(r.Output)
		if !bytes.Equal(got, want) {
			t.Errorf("%s did not round trip", r.Output)
		}
		if filepath.Base(r.Output) != filepath.Base(paths[i]) {
			t.Errorf("decrypted name %s", r.Output)
		}
	}
}

func TestFramesGiveDistinctCiphertexts(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "same.bin")
	if err := os.WriteFile(p, make([]byte, 64), 0644); err != nil {
		t.Fatal(err)
	}
	a := Run(testConfig(filepath.Join(root, "a")), []Job{{Path: p, Frame: 1}})
	b := Run(testConfig(filepath.Join(root, "b")), []Job{{Path: p, Frame: 2}})
	ca, _ := os.ReadFile(a[0].Output)
	cb, _ := os.ReadFile(b[0].Output)
	if bytes.Equal(ca, cb) {
		t.Error("frames 1 and 2 produced the same ciphertext")
	}
}

func TestRunErrors(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	results := Run(cfg, []Job{
		{Path: filepath.Join(root, "missing"), Frame: 1},
		{Path: filepath.Join(root, "missing"), Frame: 1 << 22},
	})
	for _, r := range results {
		if r.Success || r.Error == "" {
			t.Errorf("expected failure for %+v", r)
		}
	}

	cfg.Key = cfg.Key[:10]
	p := writeInputs(t, root, 1)
	if r := Run(cfg, Jobs(p, 0)); r[0].Success {
		t.Error("short key accepted")
	}
}

func TestRunSameBaseNameInDifferentDirs(t *testing.T) {
	root := t.TempDir()
	var paths []string
	bodies := []string{"first file", "SECOND FILE!!"}
	for i, dir := range []string{"x", "y"} {
		p := filepath.Join(root, dir, "data.bin")
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(bodies[i]), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	enc := testConfig(filepath.Join(root, "enc"))
	results := Run(enc, Jobs(paths, 10))
	if results[0].Output == results[1].Output {
		t.Fatalf("both inputs written to %s", results[0].Output)
	}
	for _, r := range results {
		if !r.Success {
			t.Fatalf("%s: %s", r.Path, r.Error)
		}
	}
	manifest := filepath.Join(enc.OutputDir, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadManifest(manifest)
	if err != nil {
		t.Fatal(err)
	}

	dec := testConfig(filepath.Join(root, "dec"))
	dec.Decrypt = true
	back := Run(dec, ManifestJobs(enc.OutputDir, entries))
	for i, r := range back {
		if !r.Success {
			t.Fatalf("%s: %s", r.Path, r.Error)
		}
		got, _ := os.ReadFile(r.Output)
		if string(got) != bodies[i] {
			t.Errorf("frame %d decrypted to %q, want %q", r.Frame, got, bodies[i])
		}
	}
}

func TestOutputNamesCollisions(t *testing.T) {
	jobs := []Job{
		{Path: "x/data.bin", Frame: 10},
		{Path: "y/data.bin", Frame: 11},
		{Path: "z/other.bin", Frame: 12},
		{Path: "w/data.bin", Frame: 10},
	}
	got := outputNames(jobs, false)
	want := []string{"10-data.bin.a51", "11-data.bin.a51", "other.bin.a51", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outputNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	root := t.TempDir()
	p := filepath.Join(root, "same.bin")
	if err := os.WriteFile(p, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}
	results := Run(testConfig(filepath.Join(root, "out")), []Job{{Path: p, Frame: 5}, {Path: p, Frame: 5}})
	if !results[0].Success || results[1].Success || results[1].Error == "" {
		t.Errorf("duplicate job results = %+v", results)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in      string
		decrypt bool
		want    string
	}{
		{"dir/a.txt", false, "a.txt.a51"},
		{"dir/a.txt.a51", true, "a.txt"},
		{"dir/.a51", true, ".a51.plain"},
		{"dir/raw", true, "raw.plain"},
	}
	for _, tt := range tests {
		if got := outputName(tt.in, tt.decrypt); got != tt.want {
			t.Errorf("outputName(%q, %v) = %q, want %q", tt.in, tt.decrypt, got, tt.want)
		}
	}
}
