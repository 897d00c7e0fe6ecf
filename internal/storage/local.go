package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/hashutil"
	"github.com/yamkelajack06/Study-Flow/internal/logging"
)

const (
	localDir = "entries"
	localExt = ".json"
)

// localFile is the on-disk form of one entry. Seq keeps insertion order
// because diskv lists keys in directory order.
type localFile struct {
	Seq   int64        `json:"seq"`
	Entry entry.Record `json:"entry"`
}

// Local keeps one JSON file per entry under a directory, for timetables
// used without signing in. Storage ids are short hashes.
type Local struct {
	mu  sync.Mutex
	d   *diskv.Diskv
	now func() time.Time
	log logging.Logger
}

// NewLocal opens a Local strategy rooted at basePath.
func NewLocal(basePath string) *Local {
	return &Local{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		now: time.Now,
		log: logging.NewNopLogger(),
	}
}

// SetLogger sets where skipped files are reported.
func (l *Local) SetLogger(log logging.Logger) { l.log = log }

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{localDir}, FileName: key + localExt}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, localExt)
}

func (l *Local) read(key string) (localFile, error) {
	data, err := l.d.Read(key)
	if err != nil {
		return localFile{}, err
	}
	var f localFile
	if err := json.Unmarshal(data, &f); err != nil {
		return localFile{}, err
	}
	f.Entry.StorageID = key
	return f, nil
}

func (l *Local) write(key string, f localFile) error {
	f.Entry.StorageID = key
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return l.d.Write(key, data)
}

// all reads every file, skipping ones that are not valid entries so a
// corrupted file does not hide the rest of the timetable.
func (l *Local) all(ctx context.Context) []localFile {
	var files []localFile
	for key := range l.d.Keys(ctx.Done()) {
		f, err := l.read(key)
		if err != nil {
			l.log.Warn("skipping stored entry", "key", key, "error", err)
			continue
		}
		files = append(files, f)
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Seq != files[j].Seq {
			return files[i].Seq < files[j].Seq
		}
		return files[i].Entry.StorageID < files[j].Entry.StorageID
	})
	return files
}

// resolve maps an identifier to a key, falling back to a scan by derived id.
func (l *Local) resolve(ctx context.Context, id string) (string, bool) {
	if l.d.Has(id) {
		return id, true
	}
	for _, f := range l.all(ctx) {
		if f.Entry.ID == id {
			return f.Entry.StorageID, true
		}
	}
	return "", false
}

func (l *Local) GetEntries(ctx context.Context) ([]entry.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	files := l.all(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := make([]entry.Record, len(files))
	for i, f := range files {
		records[i] = f.Entry
	}
	return records, nil
}

func (l *Local) AddEntry(_ context.Context, r entry.Record) (entry.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := hashutil.EntryKey(r.ID, now, 0)
	for attempt := 1; l.d.Has(key); attempt++ {
		key = hashutil.EntryKey(r.ID, now, attempt)
	}
	f := localFile{Seq: now.UnixNano(), Entry: r}
	if err := l.write(key, f); err != nil {
		return entry.Record{}, fmt.Errorf("writing entry %q: %w", r.ID, err)
	}
	r.StorageID = key
	return r, nil
}

func (l *Local) UpdateEntry(ctx context.Context, id string, r entry.Record) (entry.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key, ok := l.resolve(ctx, id)
	if !ok {
		return entry.Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	prev, err := l.read(key)
	if err != nil {
		return entry.Record{}, fmt.Errorf("reading entry %q: %w", key, err)
	}
	if err := l.write(key, localFile{Seq: prev.Seq, Entry: r}); err != nil {
		return entry.Record{}, fmt.Errorf("writing entry %q: %w", key, err)
	}
	r.StorageID = key
	return r, nil
}

func (l *Local) DeleteEntry(ctx context.Context, id string) error {
	if err := ValidateIdentifier(id); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key, ok := l.resolve(ctx, id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err := l.d.Erase(key); err != nil {
		return fmt.Errorf("erasing entry %q: %w", key, err)
	}
	return nil
}

func (l *Local) Close() error { return nil }
