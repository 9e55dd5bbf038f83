package file

import "os"

// Exists checks if the file at the given path exists.
func Exists(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return true
}
