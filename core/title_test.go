package core

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eldenRing() *Title {
	return &Title{
		Name:      "Elden Ring",
		ID:        1245620,
		SavePath:  "/mnt/storage/SteamLibrary/steamapps/compatdata/1245620/",
		Publisher: "Bandai Namco",
		Developer: "FROM Software",
		Saves:     []Snapshot{},
		Artwork:   []string{},
	}
}

func TestAddSnapshotCountsUp(t *testing.T) {
	title := eldenRing()
	now := time.Date(2024, 3, 30, 15, 0, 0, 0, time.Local)

	for want := uint32(0); want < 5; want++ {
		s, err := title.AddSnapshot("/saves/er", "/backups", now)
		require.NoError(t, err)
		assert.Equal(t, want, s.Count)
	}

	seen := map[uint32]bool{}
	for _, s := range title.Saves {
		assert.False(t, seen[s.Count], "duplicate count %d", s.Count)
		seen[s.Count] = true
	}
	assert.Len(t, title.Saves, 5)
}

func TestAddSnapshotAfterGap(t *testing.T) {
	title := eldenRing()
	title.Saves = []Snapshot{{Count: 0}, {Count: 2}}

	s, err := title.AddSnapshot("/saves/er", "/backups", time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint32(3), s.Count)

	s, err = title.AddSnapshot("/saves/er", "/backups", time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint32(4), s.Count)
}

func TestAddSnapshotRecord(t *testing.T) {
	title := eldenRing()
	title.Saves = nil
	now := time.Date(2024, 3, 30, 15, 4, 5, 0, time.FixedZone("CEST", 2*60*60))

	s, err := title.AddSnapshot("/saves/er", "/home/user/Documents/Saves", now)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{
		Count:          0,
		BackupPath:     filepath.Join("/home/user/Documents/Saves", "Elden Ring", "0"),
		ProductionPath: "/saves/er",
		ParentGame:     "Elden Ring",
		SavedAt:        "2024-03-30T15:04:05Z",
	}, s)
	assert.Equal(t, []Snapshot{s}, title.Saves)
}

func TestAddSnapshotWithoutProductionPath(t *testing.T) {
	title := eldenRing()

	_, err := title.AddSnapshot("  ", "/backups", time.Now())
	assert.ErrorIs(t, err, ErrNoProductionPath)
	assert.Empty(t, title.Saves)
}

func TestAddSnapshotLimit(t *testing.T) {
	title := eldenRing()
	title.Saves = []Snapshot{{Count: math.MaxUint32}}

	_, err := title.AddSnapshot("/saves", "/backups", time.Now())
	assert.ErrorIs(t, err, ErrSnapshotLimit)
	assert.Len(t, title.Saves, 1)
}

func TestSnapshotPathsNeverCollide(t *testing.T) {
	assert.NotEqual(t, SnapshotPath("/b", "Game", 1), SnapshotPath("/b", "Game", 2))
	assert.NotEqual(t, SnapshotPath("/b", "Game", 1), SnapshotPath("/b", "Other", 1))
	assert.Equal(t, "/b/Game/12", SnapshotPath("/b", "Game", 12))
}

func TestSnapshotLookup(t *testing.T) {
	title := eldenRing()
	_, err := title.LatestSnapshot()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	title.Saves = []Snapshot{{Count: 4}, {Count: 9}, {Count: 1}}
	latest, err := title.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, uint32(9), latest.Count)

	s, err := title.Snapshot(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), s.Count)

	_, err = title.Snapshot(2)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestFindTitle(t *testing.T) {
	titles := []Title{{Name: "portal"}, {Name: "Portal"}, {Name: "Hades"}}

	found, err := FindTitle(titles, "Portal")
	require.NoError(t, err)
	assert.Same(t, &titles[1], found)

	found, err = FindTitle(titles, " hades ")
	require.NoError(t, err)
	assert.Equal(t, "Hades", found.Name)

	_, err = FindTitle(titles, "Celeste")
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestMergeTitles(t *testing.T) {
	existing := []Title{{Name: "Hades", ID: 1145360, Saves: []Snapshot{{Count: 3}}}}
	discovered := []Title{{Name: "Hades", ID: 1145360}, {Name: "Celeste", ID: 504230}, {Name: "Celeste", ID: 504230}}

	merged, added := MergeTitles(existing, discovered)
	assert.Equal(t, 1, added)
	require.Len(t, merged, 2)
	assert.Len(t, merged[0].Saves, 1)
	assert.Equal(t, "Celeste", merged[1].Name)
}

func TestSortTitles(t *testing.T) {
	titles := []Title{{Name: "portal 2"}, {Name: "Hades"}, {Name: "Portal"}, {Name: "hollow Knight"}, {Name: "Age of Empires II"}}
	SortTitles(titles)

	names := make([]string, 0, len(titles))
	for _, title := range titles {
		names = append(names, title.Name)
	}
	assert.Equal(t, []string{"Age of Empires II", "Hades", "hollow Knight", "Portal", "portal 2"}, names)
}
