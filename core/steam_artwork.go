package core

import (
	"fmt"
	"os"
	"path/filepath"
)

type ArtworkRole int

const (
	ArtworkCover ArtworkRole = iota
	ArtworkIcon
	ArtworkLogo
	ArtworkHero
	ArtworkHeroBlur
	ArtworkHeader
)

// ArtworkRoles lists every role in the order the resolver returns them.
var ArtworkRoles = []ArtworkRole{
	ArtworkCover,
	ArtworkIcon,
	ArtworkLogo,
	ArtworkHero,
	ArtworkHeroBlur,
	ArtworkHeader,
}

func (r ArtworkRole) String() string {
	switch r {
	case ArtworkCover:
		return "cover"
	case ArtworkIcon:
		return "icon"
	case ArtworkLogo:
		return "logo"
	case ArtworkHero:
		return "hero"
	case ArtworkHeroBlur:
		return "hero_blur"
	case ArtworkHeader:
		return "header"
	default:
		return "unknown"
	}
}

// Suffix is the librarycache filename suffix following the app id.
func (r ArtworkRole) Suffix() string {
	switch r {
	case ArtworkCover:
		return "_library_600x900.jpg"
	case ArtworkIcon:
		return "_icon.jpg"
	case ArtworkLogo:
		return "_logo.png"
	case ArtworkHero:
		return "_library_hero.jpg"
	case ArtworkHeroBlur:
		return "_library_hero_blur.jpg"
	case ArtworkHeader:
		return "_header.jpg"
	default:
		return ""
	}
}

// ArtworkCandidate is the expected cache path of one role for appID.
func ArtworkCandidate(thumbDir string, appID uint32, role ArtworkRole) string {
	return filepath.Join(thumbDir, fmt.Sprintf("%d%s", appID, role.Suffix()))
}

// ResolveArtwork returns one path per role. Roles missing from thumbDir get
// the placeholder path. The result is nil when no role exists at all, or when
// a role is missing and the placeholder file is not on disk.
func ResolveArtwork(appID uint32, thumbDir string, placeholder string) []string {
	result := make([]string, 0, len(ArtworkRoles))
	found, missing := 0, 0
	for _, role := range ArtworkRoles {
		candidate := ArtworkCandidate(thumbDir, appID, role)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			result = append(result, placeholder)
			missing++
			continue
		}

		if real, err := filepath.EvalSymlinks(candidate); err == nil {
			candidate = real
		}
		result = append(result, candidate)
		found++
	}

	if found == 0 {
		return nil
	}
	if missing > 0 && !isRegularFile(placeholder) {
		InfoLogger.Printf("Placeholder %s is missing, dropping artwork for %d", placeholder, appID)
		return nil
	}
	return result
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
