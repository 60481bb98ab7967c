package fs

import (
	"os"
	"path/filepath"
)

// LogicalWorkingDir returns the working directory as the shell sees it. $PWD
// keeps symlinked path components intact, so it is preferred whenever it is
// absolute and names the same directory as the resolved working directory.
func LogicalWorkingDir(getenv func(string) string, getwd func() (string, error)) (string, error) {
	resolved, err := getwd()
	if err != nil {
		return "", err
	}

	pwd := getenv("PWD")
	if pwd == "" || !filepath.IsAbs(pwd) {
		return resolved, nil
	}

	pwdInfo, err := os.Stat(pwd)
	if err != nil {
		return resolved, nil
	}
	resolvedInfo, err := os.Stat(resolved)
	if err != nil || !os.SameFile(pwdInfo, resolvedInfo) {
		return resolved, nil
	}
	return ResolveLogical(pwd, ""), nil
}
