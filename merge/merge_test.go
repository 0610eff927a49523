package merge

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Siarh199/external-sorter/pool"
)

func mustWriteRun(t *testing.T, dir string, name string, values []uint32) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create run %s: %v", name, err)
	}
	defer f.Close()
	buf := make([]byte, 4)
	for _, v := range values {
		binary.NativeEndian.PutUint32(buf, v)
		if _, err := f.Write(buf); err != nil {
			t.Fatalf("write run %s: %v", name, err)
		}
	}
	return path
}

func readUint32File(t *testing.T, path string) []uint32 {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.NativeEndian.Uint32(data[i*4 : i*4+4])
	}
	return out
}

func TestMergeProducesSortedOutput(t *testing.T) {
	dir := t.TempDir()
	runs := []string{
		mustWriteRun(t, dir, "chunk_0", []uint32{1, 4, 9, 20}),
		mustWriteRun(t, dir, "chunk_1", []uint32{2, 3, 3, 100}),
		mustWriteRun(t, dir, "chunk_2", nil), // empty run must be skipped
		mustWriteRun(t, dir, "chunk_3", []uint32{0, 50}),
	}

	outPath := filepath.Join(dir, "output")
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output: %v", err)
	}

	p := pool.New(4)
	defer p.Close()

	cfg := Config{ReadBudgetBytes: 4096, WriteBudgetBytes: 256}
	if err := Merge[uint32](context.Background(), p, runs, out, cfg); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close output: %v", err)
	}

	got := readUint32File(t, outPath)
	want := []uint32{1, 4, 9, 20, 2, 3, 3, 100, 0, 50}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(got), len(want), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("output not sorted at index %d: %v", i, got)
		}
	}

	gotSorted := append([]uint32(nil), got...)
	sort.Slice(gotSorted, func(i, j int) bool { return gotSorted[i] < gotSorted[j] })
	for i := range want {
		if gotSorted[i] != want[i] {
			t.Fatalf("multiset mismatch at %d: got %v want %v", i, gotSorted, want)
		}
	}
}

func TestMergeNoRunsIsNoop(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output")
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output: %v", err)
	}
	defer out.Close()

	p := pool.New(2)
	defer p.Close()

	if err := Merge[uint32](context.Background(), p, nil, out, Config{ReadBudgetBytes: 1024, WriteBudgetBytes: 256}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty output, got %d bytes", info.Size())
	}
}

func TestMergeDeduplicatesAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	runs := []string{
		mustWriteRun(t, dir, "chunk_0", []uint32{1, 2, 2, 3}),
		mustWriteRun(t, dir, "chunk_1", []uint32{2, 2, 4}),
	}

	outPath := filepath.Join(dir, "output")
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output: %v", err)
	}

	p := pool.New(4)
	defer p.Close()

	cfg := Config{ReadBudgetBytes: 4096, WriteBudgetBytes: 256, Deduplicate: true}
	if err := Merge[uint32](context.Background(), p, runs, out, cfg); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close output: %v", err)
	}

	got := readUint32File(t, outPath)
	want := []uint32{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMergeRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	runs := []string{mustWriteRun(t, dir, "chunk_0", []uint32{1, 2, 3})}

	outPath := filepath.Join(dir, "output")
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output: %v", err)
	}
	defer out.Close()

	p := pool.New(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = Merge[uint32](ctx, p, runs, out, Config{ReadBudgetBytes: 4096, WriteBudgetBytes: 256})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
