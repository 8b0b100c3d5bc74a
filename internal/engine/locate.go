package engine

import (
	"path/filepath"
	"runtime"

	"rsafront/internal/fileops"
	"rsafront/internal/log"
)

// ExecutableName is the engine's base name without a platform extension.
const ExecutableName = "rsa_encrypt"

// DefaultName is the bare name shown when no candidate exists.
func DefaultName(goos string) string {
	if goos == "windows" {
		return ExecutableName + ".exe"
	}
	return ExecutableName
}

// Candidates lists the relative locations searched for the engine, in order.
// The .exe names come first on every platform; elsewhere the bare names
// are appended.
func Candidates(goos string) []string {
	exe := ExecutableName + ".exe"
	list := []string{
		filepath.Join("build", exe),
		exe,
		filepath.Join("src", exe),
		filepath.Join("..", "build", exe),
	}
	if goos != "windows" {
		list = append(list,
			filepath.Join("build", ExecutableName),
			ExecutableName,
			filepath.Join("src", ExecutableName),
			filepath.Join("..", "build", ExecutableName),
		)
	}
	return list
}

// Locator searches for the engine executable.
type Locator struct {
	// BaseDir anchors relative candidates. Empty means the working directory.
	BaseDir string
	// Extra candidates are tried before the built-in list.
	Extra []string
	// GOOS selects the platform variants. Empty means runtime.GOOS.
	GOOS string
}

// Locate returns the first candidate that is an existing regular file, as an
// absolute path, and true. When nothing matches it returns DefaultName and
// false; that name is not verified to exist.
func (l Locator) Locate() (string, bool) {
	goos := l.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	list := make([]string, 0, len(l.Extra)+8)
	list = append(list, l.Extra...)
	list = append(list, Candidates(goos)...)

	for _, c := range list {
		p := c
		if !filepath.IsAbs(p) && l.BaseDir != "" {
			p = filepath.Join(l.BaseDir, p)
		}
		if !fileops.IsRegularFile(p) {
			log.Debug("engine candidate missing", log.String("candidate", p))
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			log.Warn("engine candidate has no absolute form", log.String("candidate", p), log.Err(err))
			continue
		}
		log.Info("engine located", log.String("path", abs))
		return abs, true
	}

	name := DefaultName(goos)
	log.Info("engine not located, using default name", log.String("name", name))
	return name, false
}

// Locate searches the working directory with the built-in candidates.
func Locate() (string, bool) {
	return Locator{}.Locate()
}
