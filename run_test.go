package mojinamer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mojinamer/describer"
)

// fakeDescriber serves scripted phrases keyed by image contents, standing in
// for the network call.
type fakeDescriber struct {
	phrases map[string]string
	errs    map[string]error
	calls   int
}

func (f *fakeDescriber) Name() string    { return "fake" }
func (f *fakeDescriber) IsHealthy() bool { return true }

func (f *fakeDescriber) DescribeImage(ctx context.Context, img describer.Image) (string, error) {
	f.calls++
	key := string(img.Data)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.phrases[key], nil
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img1.jpg", "one")
	writeFile(t, dir, "img2.png", "two")

	fd := &fakeDescriber{phrases: map[string]string{
		"one": "a red bicycle leaning on a wall",
		"two": "!!!",
	}}

	stats, err := Run(context.Background(), Options{Dir: dir, Describer: fd})
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	if expected, actual := (Stats{Total: 2, Renamed: 2}), stats; expected != actual {
		t.Errorf("Expected stats %+v, got %+v", expected, actual)
	}
	for _, name := range []string{"red_bicycle_leaning_on_a_wall.jpg", "unnamed_1.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
	if got := dirEntries(t, dir); len(got) != 2 {
		t.Errorf("Expected 2 files after run, got %v", got)
	}
	if expected, actual := 2, fd.calls; expected != actual {
		t.Errorf("Expected %d naming calls, got %d", expected, actual)
	}
}

func TestRunPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", "1")
	writeFile(t, dir, "b.jpg", "2")
	writeFile(t, dir, "c.jpg", "3")

	fd := &fakeDescriber{
		phrases: map[string]string{
			"1": "sleeping tabby cat",
			"3": "ocean waves at dusk",
		},
		errs: map[string]error{
			"2": errors.New("connection refused"),
		},
	}

	stats, err := Run(context.Background(), Options{Dir: dir, Describer: fd})
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	if expected, actual := (Stats{Total: 3, Renamed: 2, Failed: 1}), stats; expected != actual {
		t.Errorf("Expected stats %+v, got %+v", expected, actual)
	}
	// The failed file stays at its original path.
	if _, err := os.Stat(filepath.Join(dir, "b.jpg")); err != nil {
		t.Errorf("Expected b.jpg untouched: %v", err)
	}
	for _, name := range []string{"sleeping_tabby_cat.jpg", "ocean_waves_at_dusk.jpg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
	if got := dirEntries(t, dir); len(got) != 3 {
		t.Errorf("Expected 3 files after run, got %v", got)
	}
}

func TestRunNoClobber(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "forest_path.jpg", "already named")
	writeFile(t, dir, "x.jpg", "fresh")

	fd := &fakeDescriber{phrases: map[string]string{
		"already named": "forest path",
		"fresh":         "forest path",
	}}

	stats, err := Run(context.Background(), Options{Dir: dir, Describer: fd})
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	if expected, actual := (Stats{Total: 2, Renamed: 1, Skipped: 1}), stats; expected != actual {
		t.Errorf("Expected stats %+v, got %+v", expected, actual)
	}
	data, err := os.ReadFile(filepath.Join(dir, "forest_path.jpg"))
	if err != nil || string(data) != "already named" {
		t.Errorf("Pre-existing file clobbered: %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "forest_path_2.jpg")); err != nil {
		t.Errorf("Expected forest_path_2.jpg: %v", err)
	}
	if got := dirEntries(t, dir); len(got) != 2 {
		t.Errorf("Expected 2 files after run, got %v", got)
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img1.jpg", "one")
	writeFile(t, dir, "img2.png", "two")

	fd := &fakeDescriber{phrases: map[string]string{
		"one": "red bicycle",
		"two": "blue door",
	}}

	stats, err := Run(context.Background(), Options{Dir: dir, Describer: fd, DryRun: true})
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}

	if expected, actual := 2, stats.Renamed; expected != actual {
		t.Errorf("Expected %d planned renames, got %d", expected, actual)
	}
	for _, name := range []string{"img1.jpg", "img2.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Dry run moved %s: %v", name, err)
		}
	}
	if got := dirEntries(t, dir); len(got) != 2 {
		t.Errorf("Dry run changed the directory: %v", got)
	}
}

func TestRunInvalidDirectory(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Dir:       filepath.Join(t.TempDir(), "nope"),
		Describer: &fakeDescriber{},
	})
	if !errors.Is(err, ErrInvalidDirectory) {
		t.Errorf("Expected ErrInvalidDirectory, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img1.jpg", "one")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fd := &fakeDescriber{phrases: map[string]string{"one": "red bicycle"}}
	stats, err := Run(ctx, Options{Dir: dir, Describer: fd})
	if err != nil {
		t.Fatalf("Unexpected error %s", err)
	}
	if expected, actual := 0, stats.Renamed; expected != actual {
		t.Errorf("Expected no renames after cancellation, got %d", actual)
	}
	if expected, actual := 0, fd.calls; expected != actual {
		t.Errorf("Expected no naming calls after cancellation, got %d", actual)
	}
}
