package activity

import (
	"fmt"
	"time"

	"github.com/prometheus/procfs"
)

// DefaultProcRoot is where the host procfs is mounted
const DefaultProcRoot = procfs.DefaultMountPoint

func openProcFS(root string) (procfs.FS, error) {
	if root == "" {
		root = DefaultProcRoot
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return procfs.FS{}, fmt.Errorf("error opening procfs at %s: %w", root, err)
	}
	return fs, nil
}

// BootTime reads the kernel boot time from the btime line of stat
func BootTime(root string) (time.Time, error) {
	fs, err := openProcFS(root)
	if err != nil {
		return time.Time{}, err
	}
	stat, err := fs.Stat()
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading kernel stat: %w", err)
	}
	if stat.BootTime == 0 {
		return time.Time{}, fmt.Errorf("kernel stat reports no boot time")
	}
	return time.Unix(int64(stat.BootTime), 0), nil
}
