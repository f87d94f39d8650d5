package core

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SnapshotTimeLayout renders local wall time with a literal Z suffix. Older
// catalog files use this exact format, so it is kept even though the value is
// not UTC.
const SnapshotTimeLayout = "2006-01-02T15:04:05Z"

var ErrTitleNotFound = errors.New("title not found")
var ErrSnapshotNotFound = errors.New("snapshot not found")
var ErrNoProductionPath = errors.New("no production path for snapshot")
var ErrSnapshotLimit = errors.New("snapshot count limit reached")

type Snapshot struct {
	Count          uint32 `json:"count"`
	BackupPath     string `json:"backup_path"`
	ProductionPath string `json:"production_path"`
	ParentGame     string `json:"parent_game"`
	SavedAt        string `json:"saved_at"`
}

type Title struct {
	Name        string     `json:"game_title"`
	ID          uint32     `json:"game_id"`
	InstallPath string     `json:"install_path,omitempty"`
	SavePath    string     `json:"save_path,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Developer   string     `json:"developer,omitempty"`
	Saves       []Snapshot `json:"saves"`
	Artwork     []string   `json:"thumbnail"`
}

func NewTitleFromManifest(m Manifest, artwork []string) Title {
	if artwork == nil {
		artwork = []string{}
	}

	return Title{
		Name:        m.Name,
		ID:          m.AppID,
		InstallPath: m.InstallPath,
		Saves:       []Snapshot{},
		Artwork:     artwork,
	}
}

// SnapshotPath is the backup location of snapshot count for the named title.
func SnapshotPath(snapshotRoot string, titleName string, count uint32) string {
	return filepath.Join(snapshotRoot, titleName, strconv.FormatUint(uint64(count), 10))
}

// NextSnapshotCount is one past the highest existing count, or 0 when the
// title has no snapshots. Gaps left by removed snapshots are not reused.
func (t *Title) NextSnapshotCount() (uint32, error) {
	if len(t.Saves) == 0 {
		return 0, nil
	}

	var highest uint32
	for _, save := range t.Saves {
		if save.Count > highest {
			highest = save.Count
		}
	}
	if highest == math.MaxUint32 {
		return 0, fmt.Errorf("%s: %w", t.Name, ErrSnapshotLimit)
	}
	return highest + 1, nil
}

// AddSnapshot records a new snapshot of productionPath. Nothing is copied;
// see Backup for that.
func (t *Title) AddSnapshot(productionPath string, snapshotRoot string, now time.Time) (Snapshot, error) {
	if strings.TrimSpace(productionPath) == "" {
		return Snapshot{}, fmt.Errorf("%s: %w", t.Name, ErrNoProductionPath)
	}

	count, err := t.NextSnapshotCount()
	if err != nil {
		return Snapshot{}, err
	}

	save := Snapshot{
		Count:          count,
		BackupPath:     SnapshotPath(snapshotRoot, t.Name, count),
		ProductionPath: productionPath,
		ParentGame:     t.Name,
		SavedAt:        now.Format(SnapshotTimeLayout),
	}
	t.Saves = append(t.Saves, save)

	InfoLogger.Printf("Added snapshot %d for %s at %s", count, t.Name, save.BackupPath)
	return save, nil
}

func (t *Title) Snapshot(count uint32) (*Snapshot, error) {
	for i := range t.Saves {
		if t.Saves[i].Count == count {
			return &t.Saves[i], nil
		}
	}
	return nil, fmt.Errorf("%s snapshot %d: %w", t.Name, count, ErrSnapshotNotFound)
}

func (t *Title) LatestSnapshot() (*Snapshot, error) {
	var latest *Snapshot
	for i := range t.Saves {
		if latest == nil || t.Saves[i].Count > latest.Count {
			latest = &t.Saves[i]
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%s: %w", t.Name, ErrSnapshotNotFound)
	}
	return latest, nil
}

// FindTitle looks a title up by display name. An exact match is preferred over
// a case-insensitive one.
func FindTitle(titles []Title, name string) (*Title, error) {
	name = strings.TrimSpace(name)
	for i := range titles {
		if titles[i].Name == name {
			return &titles[i], nil
		}
	}
	for i := range titles {
		if strings.EqualFold(titles[i].Name, name) {
			return &titles[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrTitleNotFound)
}

// MergeTitles appends every discovered title whose id is not already present
// in existing and returns the merged list along with the number added.
func MergeTitles(existing []Title, discovered []Title) ([]Title, int) {
	known := make(map[uint32]struct{}, len(existing))
	for _, title := range existing {
		known[title.ID] = struct{}{}
	}

	added := 0
	for _, title := range discovered {
		if _, ok := known[title.ID]; ok {
			continue
		}
		known[title.ID] = struct{}{}
		existing = append(existing, title)
		added++
	}
	return existing, added
}

// SortTitles orders titles by display name using locale-aware collation.
func SortTitles(titles []Title) {
	c := collate.New(language.English, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(titles, func(i, j int) bool {
		return c.CompareString(titles[i].Name, titles[j].Name) < 0
	})
}
