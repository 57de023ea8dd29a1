package archive

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestTimestampedName(t *testing.T) {
	ts := time.Date(2026, 7, 31, 9, 5, 1, 0, time.UTC)
	got := TimestampedName("report.pdf", ts)
	want := "report_26_07_31_09_05_01.pdf"
	if got != want {
		t.Fatalf("TimestampedName = %q, want %q", got, want)
	}
}

func TestTimestampedZipName(t *testing.T) {
	ts := time.Date(2026, 7, 31, 9, 5, 1, 0, time.UTC)
	if got := TimestampedZipName("project", "", ts); got != "project_26_07_31_09_05_01.zip" {
		t.Fatalf("unexpected zip name: %q", got)
	}
	if got := TimestampedZipName("project", "backup", ts); got != "project_backup_26_07_31_09_05_01.zip" {
		t.Fatalf("unexpected prefixed zip name: %q", got)
	}
}

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.err
}
func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, nil
}
func (f *fakeRunner) Start(ctx context.Context, name string, args ...string) error { return nil }

func TestExternalZipperInvokesZip(t *testing.T) {
	runner := &fakeRunner{}
	z := ExternalZipper{Runner: runner}
	if err := z.ZipDirectory(context.Background(), "/tmp/src", "/tmp/out.zip"); err != nil {
		t.Fatalf("ZipDirectory: %v", err)
	}
	if len(runner.calls) != 1 || runner.calls[0][0] != "zip" {
		t.Fatalf("expected one zip invocation, got %+v", runner.calls)
	}
}

func TestSingleFileArchiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSingleFileArchive(&buf, "notes.txt", []byte("hello world")); err != nil {
		t.Fatalf("WriteSingleFileArchive: %v", err)
	}
	name, content, err := ReadSingleFileArchive(&buf)
	if err != nil {
		t.Fatalf("ReadSingleFileArchive: %v", err)
	}
	if name != "notes.txt" || string(content) != "hello world" {
		t.Fatalf("round trip mismatch: name=%q content=%q", name, content)
	}
}
