package activity

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/younsl/autostop/internal/models"
)

// LivenessFile reports the modification time of a file the editor touches
// on user interaction. autostop never writes it.
type LivenessFile struct {
	Path string
}

func (l *LivenessFile) Name() string   { return "liveness:" + l.Path }
func (l *LivenessFile) Signal() string { return models.SignalLastActivity }

func (l *LivenessFile) Read(ctx context.Context) (Reading, error) {
	info, err := os.Stat(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		// The editor creates the artifact on its first user interaction
		return Reading{}, fmt.Errorf("%w: %w", ErrNoActivity, err)
	}
	if err != nil {
		return Reading{}, fmt.Errorf("error reading liveness artifact: %w", err)
	}
	return Reading{LastActivity: info.ModTime()}, nil
}
