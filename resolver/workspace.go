package resolver

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/where"
)

// Workspace is a transient directory holding the downloaded and merged
// artifacts of a single materialization. Workspaces are tracked in a
// process-wide registry so leftovers can be swept on startup and shutdown.
type Workspace struct {
	ID  string
	Dir string
}

var (
	workspacesMu sync.Mutex
	workspaces   = make(map[string]*Workspace)
)

// NewWorkspace allocates a fresh uuid-named directory under the downloads
// root and registers it.
func NewWorkspace() (*Workspace, error) {
	id := uuid.New().String()
	dir := filepath.Join(where.Downloads(), id)

	if err := filesystem.API().MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	ws := &Workspace{ID: id, Dir: dir}

	workspacesMu.Lock()
	workspaces[id] = ws
	workspacesMu.Unlock()

	return ws, nil
}

// Purge deletes the workspace directory and removes it from the registry.
// Safe to call more than once.
func (w *Workspace) Purge() {
	workspacesMu.Lock()
	delete(workspaces, w.ID)
	workspacesMu.Unlock()

	if err := filesystem.API().RemoveAll(w.Dir); err != nil {
		log.Warnf("purge workspace %s: %v", w.ID, err)
	}
}

// PurgeAll deletes every live workspace. Called on shutdown.
func PurgeAll() {
	workspacesMu.Lock()
	live := make([]*Workspace, 0, len(workspaces))
	for _, ws := range workspaces {
		live = append(live, ws)
	}
	workspacesMu.Unlock()

	for _, ws := range live {
		ws.Purge()
	}
}

// Sweep removes leftover workspace directories from previous runs.
// Directories belonging to live workspaces of this process are kept.
func Sweep() {
	root := where.Downloads()

	entries, err := filesystem.API().ReadDir(root)
	if err != nil {
		log.Warnf("sweep downloads: %v", err)
		return
	}

	workspacesMu.Lock()
	defer workspacesMu.Unlock()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if _, live := workspaces[entry.Name()]; live {
			continue
		}

		if err := filesystem.API().RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			log.Warnf("sweep workspace %s: %v", entry.Name(), err)
		}
	}
}
