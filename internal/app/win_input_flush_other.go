//go:build !windows

package app

// Terminal input is read by tcell; the discard timestamp covers it.
func flushConsoleInput() error {
	return nil
}
