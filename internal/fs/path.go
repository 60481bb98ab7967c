package fs

import (
	"path/filepath"
	"strings"
)

// ResolveLogical resolves target against the logical directory base without
// touching the filesystem. "." segments are dropped, ".." pops the last pushed
// segment (never above the root), and repeated separators collapse. Symlinks
// are not resolved, so "link/.." yields the directory containing "link".
func ResolveLogical(base, target string) string {
	if target == "" {
		return normalizeLogical(base)
	}
	if filepath.IsAbs(target) || (filepath.VolumeName(target) != "" && filepath.VolumeName(target) != filepath.VolumeName(base)) {
		return normalizeLogical(target)
	}
	return normalizeLogical(base + string(filepath.Separator) + target)
}

// normalizeLogical collapses an absolute path lexically.
func normalizeLogical(p string) string {
	volume := filepath.VolumeName(p)
	rest := filepath.ToSlash(p[len(volume):])

	segments := make([]string, 0, strings.Count(rest, "/")+1)
	for _, seg := range strings.Split(rest, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, seg)
		}
	}

	sep := string(filepath.Separator)
	return volume + sep + strings.Join(segments, sep)
}

// ParentDir returns the lexical parent of an absolute path. The parent of the
// root is the root itself.
func ParentDir(p string) string {
	return ResolveLogical(p, "..")
}

// IsRoot reports whether p names a filesystem root.
func IsRoot(p string) bool {
	return ParentDir(p) == normalizeLogical(p)
}

// SplitComponents returns the components of an absolute logical path, without
// the root. On Windows the volume name is returned as the first component.
func SplitComponents(p string) []string {
	clean := normalizeLogical(p)
	volume := filepath.VolumeName(clean)
	rest := strings.Trim(clean[len(volume):], string(filepath.Separator))

	var parts []string
	if volume != "" {
		parts = append(parts, volume)
	}
	if rest == "" {
		return parts
	}
	return append(parts, strings.Split(rest, string(filepath.Separator))...)
}

// Root returns the filesystem root that p lives under.
func Root(p string) string {
	return filepath.VolumeName(p) + string(filepath.Separator)
}
