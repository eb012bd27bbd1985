//go:build linux

package sharedmem

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// mapSegment creates an anonymous memory file of the requested size and maps it shared, so the
// descriptor can be handed to another process and mapped there
func mapSegment(name string, size int) ([]byte, func() error, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create anonymous file")
	}

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		return nil, nil, errors.Wrapf(err, "failed to size anonymous file to %d bytes", size)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, nil, errors.Wrap(err, "failed to map memory")
	}

	return data, func() error {
		return errors.CombineErrors(unix.Munmap(data), unix.Close(fd))
	}, nil
}
