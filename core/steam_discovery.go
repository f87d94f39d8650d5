package core

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SteamPaths gathers every location discovery reads from. All of them are
// derived from an explicit home directory by DefaultSteamPaths.
type SteamPaths struct {
	Home           string
	LibraryListing string
	Thumbnails     string
	Placeholder    string
}

func DefaultSteamPaths(home string) SteamPaths {
	steamRoot := filepath.Join(home, ".local", "share", "Steam")
	return SteamPaths{
		Home:           home,
		LibraryListing: filepath.Join(steamRoot, "config", "libraryfolders.vdf"),
		Thumbnails:     filepath.Join(steamRoot, "appcache", "librarycache"),
		Placeholder:    PlaceholderPath(ConfigDir(home)),
	}
}

type DiscoveryOptions struct {
	// ResolveSaveRoots probes each library for the title's compatibility
	// prefix and records it as the title's save path.
	ResolveSaveRoots bool
}

// DiscoverTitles builds catalog entries for every complete, non-banned
// manifest in every library listed in paths.LibraryListing. A library that
// cannot be scanned is logged and skipped; only a failure to read the listing
// itself is returned.
func DiscoverTitles(paths SteamPaths, opts DiscoveryOptions) ([]Title, error) {
	roots, err := LibraryRoots(paths.LibraryListing)
	if err != nil {
		return nil, err
	}
	InfoLogger.Printf("Found %d steam libraries in %s", len(roots), paths.LibraryListing)

	titles := []Title{}
	for _, root := range roots {
		found, err := ScanLibraryRoot(root, paths.Thumbnails, paths.Placeholder)
		if err != nil {
			ErrorLogger.Println(err)
			continue
		}
		titles = append(titles, found...)
	}

	if opts.ResolveSaveRoots {
		for i := range titles {
			titles[i].SavePath = ResolveSaveRoot(roots, titles[i].ID, paths.Home)
		}
	}

	return titles, nil
}

// ScanLibraryRoot reads the manifests directly inside root. Manifests that
// cannot be opened, are incomplete or belong to banned titles are skipped.
func ScanLibraryRoot(root string, thumbDir string, placeholder string) ([]Title, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, newLibraryError(root, err)
	}

	titles := []Title{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ManifestExt) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		m, err := ParseManifestFile(path, root)
		if err != nil {
			if !errors.Is(err, ErrIncompleteManifest) {
				ErrorLogger.Println(err)
			} else {
				InfoLogger.Println("Skipping", err)
			}
			continue
		}

		if IsBannedTitle(&m.Name) {
			InfoLogger.Printf("Skipping %s (%d): not a game", m.Name, m.AppID)
			continue
		}

		titles = append(titles, NewTitleFromManifest(m, ResolveArtwork(m.AppID, thumbDir, placeholder)))
	}

	return titles, nil
}

// CompatPrefixCandidates lists, most specific first, the compatibility
// prefix directories under root that may hold saves for appID.
func CompatPrefixCandidates(root string, appID uint32) []string {
	prefix := filepath.Join(root, "compatdata", strconv.FormatUint(uint64(appID), 10), "pfx")
	return []string{
		filepath.Join(prefix, "drive_c", "users", "steamuser"),
		filepath.Join(prefix, "drive_c"),
		prefix,
	}
}

// ResolveSaveRoot returns the first existing compatibility prefix for appID
// across roots, falling back to home.
func ResolveSaveRoot(roots []string, appID uint32, home string) string {
	for _, root := range roots {
		for _, candidate := range CompatPrefixCandidates(root, appID) {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return candidate
			}
		}
	}
	return home
}
