//go:build !unix

package securemem

import "errors"

var errLockUnsupported = errors.New("memory locking not supported on this platform")

func lock([]byte) error { return errLockUnsupported }

func unlock([]byte) error { return nil }
