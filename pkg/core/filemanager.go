package core

import (
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// FileManager buffers every contributed write request across all items
// before resolving anything. Deferred, whole-run conflict resolution is
// intentional: a cross-item collision on a shared path is only
// detectable once all items are known, and streaming writes could let a
// low-priority request win a race against a not-yet-seen high-priority
// one.
type FileManager struct {
	requests []model.WriteRequest
	mergers  []Merger
	l        *zap.Logger
}

// NewFileManager creates a file manager with the given ordered mergers.
func NewFileManager(l *zap.Logger, mergers ...Merger) *FileManager {
	if l == nil {
		l = zap.NewNop()
	}
	return &FileManager{mergers: mergers, l: l}
}

// Add buffers contributions.
func (m *FileManager) Add(reqs ...model.WriteRequest) {
	m.requests = append(m.requests, reqs...)
}

// Pending reports the number of buffered requests.
func (m *FileManager) Pending() int { return len(m.requests) }

// Resolve groups buffered requests by (type, path) and reconciles each
// group to a single request. A group of size one passes through
// unchanged. Larger groups go to the first accepting merger; when none
// accepts, the numerically highest priority wins outright and the rest
// of the group is discarded. Requests that resolve to the same output
// path across different types are then reduced the same way, so exactly
// one artifact owns each file.
func (m *FileManager) Resolve() ([]model.WriteRequest, error) {
	groups := map[model.RequestKey][]model.WriteRequest{}
	var order []model.RequestKey
	for _, req := range m.requests {
		key := req.Key()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], req)
	}

	var resolved []model.WriteRequest
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			resolved = append(resolved, group[0])
			continue
		}
		req, err := m.resolveGroup(key, group)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, req)
	}

	return m.resolvePathOwnership(resolved), nil
}

func (m *FileManager) resolveGroup(key model.RequestKey, group []model.WriteRequest) (model.WriteRequest, error) {
	for _, merger := range m.mergers {
		if merger.Accepts(group) {
			m.l.Debug("merging conflict group",
				zap.String("merger", merger.Name()),
				zap.String("path", key.Path),
				zap.Int("contributors", len(group)),
			)
			return merger.Merge(group)
		}
	}
	m.l.Warn("no merger accepts conflict group, falling back to priority",
		zap.String("type", string(key.Type)),
		zap.String("path", key.Path),
		zap.Int("contributors", len(group)),
	)
	return highestPriority(group), nil
}

// resolvePathOwnership keeps, per output path, only the winning request
// when different artifact types target the same file. First seen wins a
// priority tie, so generated artifacts added before plain copies keep
// precedence.
func (m *FileManager) resolvePathOwnership(reqs []model.WriteRequest) []model.WriteRequest {
	byPath := map[string]int{}
	var out []model.WriteRequest
	for _, req := range reqs {
		i, seen := byPath[req.Path]
		if !seen {
			byPath[req.Path] = len(out)
			out = append(out, req)
			continue
		}
		if req.Priority > out[i].Priority {
			m.l.Debug("output path reassigned to higher-priority artifact",
				zap.String("path", req.Path),
				zap.String("type", string(req.Type)),
			)
			out[i] = req
		}
	}
	return out
}

// highestPriority returns the request with the numerically highest
// priority, first seen winning a tie. Always well-defined for a
// non-empty group.
func highestPriority(group []model.WriteRequest) model.WriteRequest {
	winner := group[0]
	for _, req := range group[1:] {
		if req.Priority > winner.Priority {
			winner = req
		}
	}
	return winner
}
