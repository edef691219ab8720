//go:build !unix && !windows

package store

import "os"

// No advisory locking on this platform; a single instance is assumed.
func tryLock(*os.File) (bool, error) {
	return true, nil
}

func unlock(*os.File) error {
	return nil
}
