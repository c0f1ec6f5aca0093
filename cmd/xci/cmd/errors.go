package cmd

import (
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, bolt.ErrTimeout) || strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when the store is held by
// another process, usually a running `xci watch`.
func diagnoseDBLock(root string) string {
	return "database is locked by another xci process\n" +
		"  → a watcher may be running for " + root + "\n" +
		"  → find the process:  ps aux | grep 'xci watch'\n" +
		"  → stop it, then retry your command"
}
