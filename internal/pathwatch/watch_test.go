package pathwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func init() {
	notifyOnAdd = true
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcherDebounce(50 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	t.Run("OnWrite", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "A.cs"))
		changes := w.addWait(t, f.Name())
		f.WriteString("class A {}")
		f.Close()
		waitChange(t, changes, 500*time.Millisecond)
	})
	t.Run("OnDelete", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "B.cs"))
		f.Close()
		changes := w.addWait(t, f.Name())
		os.Remove(f.Name())
		waitChange(t, changes, 500*time.Millisecond)
	})
	t.Run("OnCreate", func(t *testing.T) {
		name := filepath.Join(dir, "C.cs")
		changes := w.addWait(t, name)
		create(t, name).Close()
		waitChange(t, changes, 500*time.Millisecond)
	})
	t.Run("OnRename", func(t *testing.T) {
		name := filepath.Join(dir, "D.cs")
		create(t, name).Close()
		changes := w.addWait(t, name)
		tmp := create(t, filepath.Join(dir, ".D.cs.tmp"))
		tmp.WriteString("class D {}")
		tmp.Close()
		if err := os.Rename(tmp.Name(), name); err != nil {
			t.Fatal(err)
		}
		waitChange(t, changes, 500*time.Millisecond)
	})
	t.Run("Debounce", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "E.cs"))
		changes := w.addWait(t, f.Name())
		settle(changes)
		for i := 0; i < 5; i++ {
			f.WriteString("// more\n")
			f.Sync()
		}
		f.Close()
		waitChange(t, changes, 500*time.Millisecond)
		select {
		case <-changes:
			t.Error("got a second notification for a single burst of writes")
		case <-time.After(100 * time.Millisecond):
		}
	})
	t.Run("Remove", func(t *testing.T) {
		name := filepath.Join(dir, "F.cs")
		create(t, name).Close()
		changes := w.addWait(t, name)
		w.Remove(name, changes)
		settle(changes)
		os.Remove(name)
		select {
		case <-changes:
			t.Error("got a notification after Remove")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func (w *Watcher) addWait(t *testing.T, path string) chan struct{} {
	t.Helper()
	changes := make(chan struct{}, 10)
	if err := w.Add(path, changes); err != nil {
		t.Fatal(err)
	}
	<-changes
	return changes
}

func TestAddMissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	name := filepath.Join(t.TempDir(), "gone", "A.cs")
	if err := w.Add(name, make(chan struct{}, 1)); err == nil {
		t.Error("Add in a missing directory succeeded; want error")
	}
}

func TestResetTimerDiscardsExpiry(t *testing.T) {
	timer := time.NewTimer(time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	resetTimer(timer, time.Hour)
	defer timer.Stop()
	select {
	case <-timer.C:
		t.Error("timer delivered an expiry from before the reset")
	default:
	}
}

func create(t *testing.T, path string) *os.File {
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func waitChange(t *testing.T, ch <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Error("failed to receive notification after", timeout)
	}
}

// settle waits for notifications about changes made before a path was added
// to arrive, and discards them.
func settle(ch <-chan struct{}) {
	deadline := time.After(150 * time.Millisecond)
	for {
		select {
		case <-ch:
		case <-deadline:
			return
		}
	}
}
