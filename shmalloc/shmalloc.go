// Package shmalloc allocates the memory regions a fastfifo.Queue is built
// on top of. It is a thin convenience layer, not part of the queue's core
// contract: a caller is always free to supply its own memory (arena, mmap,
// cgo allocation) directly to fastfifo.Construct instead.
//
// Two flavours are provided: an anonymous segment for same-process or
// fork-inherited sharing (backed by memfd_create, so it needs no path in
// the filesystem), and a named POSIX shared memory segment another,
// unrelated process can open by name.
package shmalloc

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// Segment is a single mapped region of shared memory, sized to hold one
// fastfifo header immediately followed by its ring buffer.
type Segment struct {
	mem  []byte
	name string
}

// Bytes returns the whole mapped region.
func (s *Segment) Bytes() []byte { return s.mem }

// Name reports the segment's identifying name, or "" for an anonymous
// segment that only this process (and its descendants) can reach.
func (s *Segment) Name() string { return s.name }

// Close unmaps the segment. For a named segment, it does not unlink the
// underlying /dev/shm entry; call Unlink for that.
func (s *Segment) Close() error {
	if s.mem == nil {
		return nil
	}
	err := unix.Munmap(s.mem)
	s.mem = nil
	return err
}

// CreateAnonymous allocates a size-byte region backed by memfd_create,
// suitable for sharing with processes forked from this one: the shared
// mapping is inherited across fork. The fd is closed once the region is
// mapped, so it cannot be carried over exec or passed over a unix socket.
// The memfd name is cosmetic: it shows up in /proc/<pid>/maps but does
// not appear in the filesystem, and the returned Segment's Name is "".
func CreateAnonymous(size uint64) (*Segment, error) {
	name := "fastfifo-" + uuid.NewString()
	fd, err := unix.MemfdCreate(name, 0)
	if err != nil {
		return nil, fmt.Errorf("shmalloc: memfd_create: %w", err)
	}
	defer unix.Close(fd)

	return mapFd(fd, size, "")
}

// shmPath mirrors what glibc's shm_open does under the hood on Linux: a
// POSIX shared memory name is just a file in the tmpfs mounted at
// /dev/shm. name is not validated; unlike glibc, a slash in name is not
// rejected and is passed into the path as is.
func shmPath(name string) string { return "/dev/shm/" + name }

// CreateNamed creates (or truncates) a POSIX shared memory object at
// /dev/shm/name and maps it. Any other process that knows name can call
// OpenNamed to map the same bytes.
func CreateNamed(name string, size uint64) (*Segment, error) {
	fd, err := unix.Open(shmPath(name), unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, fmt.Errorf("shmalloc: open %q: %w", name, err)
	}
	defer unix.Close(fd)

	return mapFd(fd, size, name)
}

// OpenNamed maps an existing POSIX shared memory object previously created
// with CreateNamed (by this process or another). size must match the
// size the creator passed to CreateNamed.
func OpenNamed(name string, size uint64) (*Segment, error) {
	fd, err := unix.Open(shmPath(name), unix.O_RDWR|unix.O_CLOEXEC, 0600)
	if err != nil {
		return nil, fmt.Errorf("shmalloc: open %q: %w", name, err)
	}
	defer unix.Close(fd)

	return mapFd(fd, size, name)
}

// Unlink removes a named segment's /dev/shm entry. Existing mappings
// opened before the call remain valid; new OpenNamed calls will fail
// until something calls CreateNamed again.
func Unlink(name string) error {
	if err := unix.Unlink(shmPath(name)); err != nil {
		return fmt.Errorf("shmalloc: unlink %q: %w", name, err)
	}
	return nil
}

func mapFd(fd int, size uint64, name string) (*Segment, error) {
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		return nil, fmt.Errorf("shmalloc: ftruncate: %w", err)
	}
	mem, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shmalloc: mmap: %w", err)
	}
	return &Segment{mem: mem, name: name}, nil
}
