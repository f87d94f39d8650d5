package core

import "strings"

// bannedTitles are the runtime and compatibility tool entries Steam installs
// next to real games.
var bannedTitles = []string{
	"Proton",
	"Steam Linux Runtime",
	"Steam Runtime",
	"Steamworks Common Redistributables",
}

// IsBannedTitle reports whether name contains one of the banned substrings.
// A nil name is never banned.
func IsBannedTitle(name *string) bool {
	if name == nil {
		return false
	}

	for _, banned := range bannedTitles {
		if strings.Contains(*name, banned) {
			return true
		}
	}
	return false
}
