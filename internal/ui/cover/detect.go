package cover

import (
	"os"
	"strings"
)

// KittySupported reports whether the terminal described by getenv speaks
// the Kitty graphics protocol. A nil getenv reads the process environment.
func KittySupported(getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch {
	case getenv("KITTY_WINDOW_ID") != "":
		return true
	case getenv("TERM_PROGRAM") == "WezTerm":
		return true
	case getenv("GHOSTTY_RESOURCES_DIR") != "":
		return true
	}

	// KONSOLE_VERSION is like "220401"; 22.04 added the protocol.
	if v := getenv("KONSOLE_VERSION"); len(v) >= 4 && v[:4] >= "2204" {
		return true
	}

	return strings.Contains(getenv("TERM"), "kitty")
}
