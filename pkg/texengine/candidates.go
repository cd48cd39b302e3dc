package texengine

import (
	"path/filepath"
	"strconv"
	"strings"
)

// texLiveYears lists the TeX Live release years probed under the default
// installation roots, newest first.
var texLiveYears = func() []string {
	years := make([]string, 0, 9)
	for y := 2026; y >= 2018; y-- {
		years = append(years, strconv.Itoa(y))
	}

	return years
}()

// CandidateDirs returns the ordered list of directories searched for an engine
// when it is not on the search path. getenv supplies environment lookups so
// that per-user locations (LOCALAPPDATA, HOME) can be expanded; a nil getenv
// skips those entries.
func CandidateDirs(goos string, getenv func(string) string) []string {
	env := func(key string) string {
		if getenv == nil {
			return ""
		}

		return getenv(key)
	}

	var dirs []string

	switch goos {
	case "windows":
		if local := env("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, winJoin(local, "Programs", "MiKTeX", "miktex", "bin", "x64"))
		}

		programFiles := env("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}

		dirs = append(dirs,
			winJoin(programFiles, "MiKTeX", "miktex", "bin", "x64"),
			winJoin(programFiles, "MiKTeX 2.9", "miktex", "bin", "x64"),
		)

		for _, y := range texLiveYears {
			dirs = append(dirs,
				winJoin(`C:\texlive`, y, "bin", "windows"),
				winJoin(`C:\texlive`, y, "bin", "win32"),
			)
		}
	case "darwin":
		dirs = append(dirs, "/Library/TeX/texbin")

		for _, y := range texLiveYears {
			dirs = append(dirs, filepath.Join("/usr/local/texlive", y, "bin", "universal-darwin"))
		}

		dirs = append(dirs, "/opt/homebrew/bin", "/usr/local/bin")

		if home := env("HOME"); home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "TinyTeX", "bin", "universal-darwin"))
		}
	default:
		dirs = append(dirs, "/usr/bin", "/usr/local/bin")

		for _, y := range texLiveYears {
			dirs = append(dirs,
				filepath.Join("/usr/local/texlive", y, "bin", "x86_64-linux"),
				filepath.Join("/usr/local/texlive", y, "bin", "aarch64-linux"),
			)
		}

		dirs = append(dirs, "/opt/texlive/bin/x86_64-linux")

		if home := env("HOME"); home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".TinyTeX", "bin", "x86_64-linux"),
				filepath.Join(home, "bin"),
			)
		}
	}

	return dirs
}

// winJoin joins Windows path elements regardless of the host separator.
func winJoin(elem ...string) string {
	return strings.Join(elem, `\`)
}

// InstallHint returns a remediation message for a missing engine on goos.
func InstallHint(e Engine, goos string) string {
	switch goos {
	case "windows":
		return "install MiKTeX (https://miktex.org/download) or TeX Live (https://tug.org/texlive/) and make sure " + e.Executable(goos) + " is on PATH"
	case "darwin":
		return "install MacTeX (brew install --cask mactex) or BasicTeX and add /Library/TeX/texbin to PATH"
	default:
		switch e {
		case LuaLaTeX:
			return "install TeX Live, e.g. sudo apt install texlive-luatex texlive-latex-extra"
		case XeLaTeX:
			return "install TeX Live, e.g. sudo apt install texlive-xetex texlive-latex-extra"
		default:
			return "install TeX Live, e.g. sudo apt install texlive-latex-base texlive-latex-extra"
		}
	}
}
