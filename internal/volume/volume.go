// Package volume reports capacity for a named storage volume.
package volume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// ErrVolumeNotFound reports that an identifier does not resolve to a
// mounted volume.
var ErrVolumeNotFound = errors.New("volume not found")

// Info is a read-only capacity snapshot for one volume, fetched fresh
// on every Inspect call.
type Info struct {
	Volume      string
	TotalBytes  uint64
	FreeBytes   uint64
	UsedPercent float64
}

// Root normalizes a volume identifier ("C:", "D:\", "/", "/mnt/data")
// to a filesystem root path, verifying the path exists and is a
// directory. Drive letters gain their trailing separator.
func Root(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrVolumeNotFound)
	}
	root := id
	if len(root) == 2 && root[1] == ':' {
		root += string(os.PathSeparator)
	}
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrVolumeNotFound, id)
	}
	return root, nil
}

// Inspect returns total capacity and remaining free space for one
// mounted volume. Pure read; the caller decides what to log.
func Inspect(id string) (Info, error) {
	root, err := Root(id)
	if err != nil {
		return Info{}, err
	}

	// Require the identifier to name a mount point, not an arbitrary
	// directory. When the partition table cannot be read at all (some
	// containers), fall through to the usage query.
	if parts, perr := disk.Partitions(false); perr == nil && len(parts) > 0 {
		if !isMountPoint(root, parts) {
			return Info{}, fmt.Errorf("%w: %s is not a mounted volume", ErrVolumeNotFound, id)
		}
	}

	usage, err := disk.Usage(root)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %s: %v", ErrVolumeNotFound, id, err)
	}

	return Info{
		Volume:      id,
		TotalBytes:  usage.Total,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

func isMountPoint(root string, parts []disk.PartitionStat) bool {
	for _, p := range parts {
		mount := filepath.Clean(p.Mountpoint)
		if runtime.GOOS == "windows" {
			if strings.EqualFold(mount, root) {
				return true
			}
			continue
		}
		if mount == root {
			return true
		}
	}
	return false
}
