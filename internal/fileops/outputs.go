// Package fileops derives the files an encryption run writes next to its input.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rsafront/internal/errors"
)

// File name parts appended to the input stem.
const (
	EncryptedSuffix = "_encrypted"
	EncryptedExt    = ".enc"
	KeySuffix       = "_keys"
	KeyExt          = ".key"
)

// maxSuffix bounds the collision search.
const maxSuffix = 1 << 16

// OutputPaths is the pair of files one encryption run produces.
type OutputPaths struct {
	Encrypted string
	Key       string
}

// Stem returns the input's base name without its extension.
// A dot-file such as ".env" keeps its whole name.
func Stem(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// GenerateOutputPaths returns "<stem>_encrypted.enc" and "<stem>_keys.key" in
// the input's directory. If either file exists, both names get the same
// numeric suffix (_1, _2, ...), using the smallest one for which neither
// exists. The result is only collision-free at the moment of the call.
//
// Existence of the input itself is not checked here.
func GenerateOutputPaths(inputPath string) (OutputPaths, error) {
	if inputPath == "" {
		return OutputPaths{}, errors.ErrPathGeneration
	}

	dir := filepath.Dir(inputPath)
	stem := Stem(inputPath)

	for n := 0; n <= maxSuffix; n++ {
		tag := ""
		if n > 0 {
			tag = "_" + strconv.Itoa(n)
		}
		paths := OutputPaths{
			Encrypted: filepath.Join(dir, stem+EncryptedSuffix+tag+EncryptedExt),
			Key:       filepath.Join(dir, stem+KeySuffix+tag+KeyExt),
		}

		taken, err := anyExists(paths.Encrypted, paths.Key)
		if err != nil {
			return OutputPaths{}, fmt.Errorf("%w: %w", errors.ErrPathGeneration, err)
		}
		if !taken {
			return paths, nil
		}
	}

	return OutputPaths{}, fmt.Errorf("%w: no free name for %s after %d attempts", errors.ErrPathGeneration, stem, maxSuffix)
}

// anyExists reports whether any of the paths names an existing entry.
// Errors other than "not exist" are returned so a permission problem is not
// mistaken for a free name.
func anyExists(paths ...string) (bool, error) {
	for _, p := range paths {
		_, err := os.Lstat(p)
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, errors.NewFileError("stat", p, err)
		}
	}
	return false, nil
}

// IsRegularFile reports whether path names an existing regular file.
func IsRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
