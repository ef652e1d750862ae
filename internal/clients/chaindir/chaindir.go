package chaindir

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/utils"
)

// Directory lists the chain files hosted next to the langserve service.
// The listing is ground truth for chain selection and is re-read on every
// call; nothing here is cached.
type Directory interface {
	List() ([]string, error)
}

type directory struct {
	path string
	log  *logger.Logger
}

func New(baseLog *logger.Logger) Directory {
	clientLog := baseLog.With("client", "ChainDirectory")
	path := utils.GetEnv("CHAINS_DIR", "./chains", baseLog)
	return &directory{path: path, log: clientLog}
}

func (d *directory) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		d.log.Error("Failed to scan chains directory", "path", d.path, "error", err)
		return nil, fmt.Errorf("scan chains directory %q: %w", d.path, err)
	}

	fileNames := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			continue
		}
		d.log.Debug("Found chain file", "file_name", entry.Name())
		fileNames = append(fileNames, entry.Name())
	}

	d.log.Info("Scanned chains directory", "path", d.path, "count", len(fileNames))
	return fileNames, nil
}
