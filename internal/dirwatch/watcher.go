// Package dirwatch publishes the content of a directory as an observable mapping of file names to FileInfo.
package dirwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"

	"github.com/nginx/state-observer/internal/framework/events"
	"github.com/nginx/state-observer/internal/framework/runnables"
	"github.com/nginx/state-observer/pkg/observer"
)

// FileInfo describes one entry of the watched directory.
type FileInfo struct {
	// ModTime is the modification time.
	ModTime time.Time `json:"modTime"`
	// Name is the base name of the entry.
	Name string `json:"name"`
	// Mode is the file mode, for example "-rw-r--r--".
	Mode string `json:"mode"`
	// Size is the size in bytes. It is zero for directories.
	Size int64 `json:"size"`
	// Dir tells if the entry is a directory.
	Dir bool `json:"dir"`
}

// Equal reports whether two FileInfos describe the same state of an entry.
func (f FileInfo) Equal(other FileInfo) bool {
	return f.Name == other.Name &&
		f.Mode == other.Mode &&
		f.Size == other.Size &&
		f.Dir == other.Dir &&
		f.ModTime.Equal(other.ModTime)
}

// Poster runs events on the goroutine that owns the observable state.
type Poster interface {
	Post(ctx context.Context, e events.Event) error
}

// Config is the configuration of a Watcher.
type Config struct {
	// Poster runs the updates of the Files subject. It must be the owner of the subject's goroutine.
	Poster Poster
	// Logger is the logger.
	Logger logr.Logger
	// Dir is the watched directory.
	Dir string
	// Period is the time between two scans.
	Period time.Duration
	// SubjectOptions configure the Files subject.
	SubjectOptions []observer.Option
	// ShowHidden includes entries whose name starts with a dot.
	ShowHidden bool
}

// Watcher scans a directory periodically and publishes every change of its content through a MapSubject.
// The Watcher never touches the subject outside of the events it posts, so it knows nothing about the consumers.
type Watcher struct {
	files *observer.MapSubject[string, FileInfo]
	cfg   Config
}

// NewWatcher creates a new Watcher. The Files subject is empty until the first scan.
func NewWatcher(cfg Config) *Watcher {
	return &Watcher{
		files: observer.NewMapSubjectFunc[string, FileInfo](nil, FileInfo.Equal, cfg.SubjectOptions...),
		cfg:   cfg,
	}
}

// Files returns the subject holding the directory content, keyed by file name.
// It must only be used from the events run by the Poster.
func (w *Watcher) Files() *observer.MapSubject[string, FileInfo] {
	return w.files
}

// Start scans the directory every Period until the ctx is closed.
func (w *Watcher) Start(ctx context.Context) error {
	job := runnables.NewCronJob(runnables.CronJobConfig{
		Worker: w.scan,
		Logger: w.cfg.Logger.WithName("scanner"),
		Period: w.cfg.Period,
	})

	return job.Start(ctx)
}

func (w *Watcher) scan(ctx context.Context) error {
	snapshot, err := Scan(w.cfg.Dir, w.cfg.ShowHidden)
	if err != nil {
		return err
	}

	err = w.cfg.Poster.Post(ctx, func() {
		if w.files.SetIfChanged(snapshot) {
			w.cfg.Logger.V(1).Info("Directory changed", "dir", w.cfg.Dir, "entries", len(snapshot))
		}
	})
	if err != nil {
		// the ctx is closed, so the snapshot is not needed anymore
		w.cfg.Logger.V(1).Info("Dropped directory snapshot", "reason", err.Error())
	}

	return nil
}

// Scan reads the entries of dir.
func Scan(dir string, showHidden bool) (map[string]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	snapshot := make(map[string]FileInfo, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && name[0] == '.' {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				// removed between ReadDir and Info
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", filepath.Join(dir, name), err)
		}

		fi := FileInfo{
			Name:    name,
			Mode:    info.Mode().String(),
			ModTime: info.ModTime(),
			Dir:     entry.IsDir(),
		}
		if !fi.Dir {
			fi.Size = info.Size()
		}

		snapshot[name] = fi
	}

	return snapshot, nil
}
