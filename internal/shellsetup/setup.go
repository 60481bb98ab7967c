// Package shellsetup prints the shell function that lets rcd change the
// working directory of the shell it was started from.
//
// A child process cannot change its parent's directory, so the wrapper
// creates a result file, passes its name in ResultFileEnv, runs rcd and
// cds into whatever path rcd wrote there.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
)

// ResultFileEnv names the file rcd writes the chosen folder to.
const ResultFileEnv = "RCD_RESULT_FILE"

const executablePlaceholder = "@RCD@"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	Executable   func() (string, error)
}

// WriteSetup writes the wrapper for shellOverride, or for the detected shell
// when shellOverride is empty.
func WriteSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}
	executable := cfg.Executable
	if executable == nil {
		executable = os.Executable
	}

	shell := canonicalShellName(normalizeShellName(shellOverride))
	if shell == "" {
		shell = detectShell(parent)
	}

	tmpl, quote, ok := snippetFor(shell)
	if !ok {
		if shellOverride != "" {
			return fmt.Errorf("unsupported shell %q (want bash, zsh, sh, ksh, fish, pwsh, tcsh or cmd)", shellOverride)
		}
		tmpl, quote, _ = snippetFor("bash")
	}

	exe, err := executable()
	if err != nil || exe == "" {
		exe = "rcd"
	}
	_, err = io.WriteString(w, strings.ReplaceAll(tmpl, executablePlaceholder, quote(exe)))
	return err
}

func snippetFor(shell string) (string, func(string) string, bool) {
	switch shell {
	case "bash", "zsh", "sh", "ksh", "dash":
		return posixSnippet, quotePOSIX, true
	case "fish":
		return fishSnippet, quoteFish, true
	case "pwsh":
		return pwshSnippet, quotePwsh, true
	case "tcsh", "csh":
		return tcshSnippet, quoteDouble, true
	case "cmd":
		return cmdSnippet, quoteDouble, true
	}
	return "", nil, false
}

const posixSnippet = `rcd() {
    rcd_result=$(mktemp "${TMPDIR:-/tmp}/rcd_result_XXXXXX") || return 1
    RCD_RESULT_FILE="$rcd_result" command @RCD@ "$@"
    rcd_status=$?
    if [ -s "$rcd_result" ] && [ ! -L "$rcd_result" ]; then
        rcd_dest=$(cat "$rcd_result")
        if [ -d "$rcd_dest" ]; then
            cd "$rcd_dest" || rcd_status=$?
        fi
    fi
    rm -f "$rcd_result"
    unset rcd_result rcd_dest
    return $rcd_status
}
`

const fishSnippet = `function rcd
    set -l tmp $TMPDIR
    test -n "$tmp"; or set tmp /tmp
    set -l result_file (mktemp "$tmp/rcd_result_XXXXXX"); or return 1
    env RCD_RESULT_FILE=$result_file @RCD@ $argv
    set -l rc $status
    if test -s "$result_file" -a ! -L "$result_file"
        set -l dest (cat "$result_file")
        if test -d "$dest"
            builtin cd "$dest"
        end
    end
    rm -f "$result_file"
    return $rc
end
`

const pwshSnippet = `function rcd {
    $resultFile = Join-Path ([System.IO.Path]::GetTempPath()) "rcd_result_$([guid]::NewGuid()).txt"
    $env:RCD_RESULT_FILE = $resultFile
    try {
        & @RCD@ @args
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue
            if ($dest -and (Test-Path -LiteralPath $dest -PathType Container)) {
                Set-Location -LiteralPath $dest
            }
        }
    } finally {
        Remove-Item Env:RCD_RESULT_FILE -ErrorAction SilentlyContinue
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`

const tcshSnippet = `alias rcd 'set rcd_result = "/tmp/rcd_result_$$.txt"; env RCD_RESULT_FILE="$rcd_result" @RCD@ \!*; if (-f "$rcd_result") cd "` + "`" + `cat $rcd_result` + "`" + `"; rm -f "$rcd_result"; unset rcd_result'
`

const cmdSnippet = `:: Save as rcd.cmd somewhere on PATH.
@echo off
setlocal
set "RCD_RESULT_FILE=%TEMP%\rcd_result_%RANDOM%%RANDOM%.txt"
@RCD@ %*
set "RCD_STATUS=%ERRORLEVEL%"
set "RCD_DEST="
if exist "%RCD_RESULT_FILE%" set /p RCD_DEST=<"%RCD_RESULT_FILE%"
del "%RCD_RESULT_FILE%" 2>nul
endlocal & if not "%RCD_DEST%"=="" cd /d "%RCD_DEST%" & exit /b %RCD_STATUS%
`

func quotePOSIX(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func quotePwsh(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteDouble(s string) string {
	return `"` + s + `"`
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell == "cmd" {
			return shell
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		// Login shells show up as "-bash" in ps output.
		return strings.TrimPrefix(name, "-")
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	return strings.TrimSpace(strings.TrimSuffix(base, ".exe"))
}

// extractExecutable returns the program part of a command line such as
// COMSPEC, honouring a leading quoted path.
func extractExecutable(value string) string {
	for _, q := range []string{`"`, "'"} {
		if rest, ok := strings.CutPrefix(value, q); ok {
			if idx := strings.Index(rest, q); idx >= 0 {
				return rest[:idx]
			}
			return rest
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
