package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// SnapshotVersion is the version written into every snapshot document
const SnapshotVersion = 1

// snapshotDocument is the on-disk form of the project collection
type snapshotDocument struct {
	Version  int        `json:"version"`
	SavedAt  time.Time  `json:"saved_at"`
	Projects []*Project `json:"projects"`
}

// EncodeSnapshot serializes the project collection. Projects are written in id
// order so that identical collections produce identical documents apart from
// the timestamp.
func EncodeSnapshot(projects map[int]*Project, savedAt time.Time) ([]byte, error) {
	doc := snapshotDocument{
		Version:  SnapshotVersion,
		SavedAt:  savedAt.UTC(),
		Projects: make([]*Project, 0, len(projects)),
	}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, p)
	}
	sort.Slice(doc.Projects, func(i, j int) bool {
		return doc.Projects[i].ID < doc.Projects[j].ID
	})

	return json.MarshalIndent(doc, "", "  ")
}

// DecodeSnapshot parses a snapshot document back into an id-keyed collection.
// Any structural problem is reported as ErrCorruptSnapshot.
func DecodeSnapshot(data []byte) (map[int]*Project, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	if doc.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, doc.Version)
	}

	type projectKey struct{ name, creator string }
	seen := make(map[projectKey]int, len(doc.Projects))

	projects := make(map[int]*Project, len(doc.Projects))
	for i, p := range doc.Projects {
		if p == nil {
			return nil, fmt.Errorf("%w: empty record at position %d", ErrCorruptSnapshot, i)
		}
		if p.ID < 0 || p.ID >= MaxProjectID {
			return nil, fmt.Errorf("%w: project id %d out of range", ErrCorruptSnapshot, p.ID)
		}
		if _, exists := projects[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate project id %d", ErrCorruptSnapshot, p.ID)
		}
		key := projectKey{name: p.Name, creator: p.Creator}
		if other, exists := seen[key]; exists {
			return nil, fmt.Errorf("%w: projects %d and %d share name %q for creator %q",
				ErrCorruptSnapshot, other, p.ID, p.Name, p.Creator)
		}
		seen[key] = p.ID
		projects[p.ID] = p
	}

	return projects, nil
}
