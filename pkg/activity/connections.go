package activity

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/prometheus/procfs"
	"github.com/younsl/autostop/internal/models"
)

const tcpEstablished = 1

// ProcNetCounter counts established, non-loopback connections to the
// service ports listed in Ports.
type ProcNetCounter struct {
	Root  string
	Ports []int
}

func (c *ProcNetCounter) Name() string   { return "procnet" }
func (c *ProcNetCounter) Signal() string { return models.SignalConnections }

func (c *ProcNetCounter) Read(ctx context.Context) (Reading, error) {
	proc, err := openProcFS(c.Root)
	if err != nil {
		return Reading{}, err
	}

	lines, err := proc.NetTCP()
	if err != nil {
		return Reading{}, fmt.Errorf("error reading tcp sockets: %w", err)
	}
	lines6, err := proc.NetTCP6()
	switch {
	// tcp6 is absent when IPv6 is disabled
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Reading{}, fmt.Errorf("error reading tcp6 sockets: %w", err)
	default:
		lines = append(lines, lines6...)
	}

	return Reading{Connections: countServiceConnections(lines, c.Ports)}, nil
}

func countServiceConnections(lines procfs.NetTCP, servicePorts []int) int {
	ports := make(map[uint64]bool, len(servicePorts))
	for _, p := range servicePorts {
		ports[uint64(p)] = true
	}

	count := 0
	for _, line := range lines {
		if line.St != tcpEstablished || !ports[line.LocalPort] {
			continue
		}
		if line.RemAddr.IsLoopback() {
			continue
		}
		count++
	}
	return count
}
