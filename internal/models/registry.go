package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MaxProjectID is the exclusive upper bound of generated project ids
const MaxProjectID = 10_000_000

// Registry owns every project and the set of ids issued so far
type Registry struct {
	// Projects keyed by their id
	projects map[int]*Project

	// Every id ever issued or loaded. Ids stay here after deletion so they are
	// never handed out twice.
	usedIDs map[int]struct{}

	store  SnapshotStore
	logger *zap.Logger
	nextID func() int
	now    func() time.Time

	// Mutex for concurrent access
	mu sync.RWMutex
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLogger sets the logger used by the registry
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithIDSource replaces the random id sampler. The source must return values
// in [0, MaxProjectID).
func WithIDSource(next func() int) RegistryOption {
	return func(r *Registry) {
		if next != nil {
			r.nextID = next
		}
	}
}

// NewRegistry creates an empty registry backed by the given snapshot store
func NewRegistry(store SnapshotStore, opts ...RegistryOption) *Registry {
	r := &Registry{
		projects: make(map[int]*Project),
		usedIDs:  make(map[int]struct{}),
		store:    store,
		logger:   zap.NewNop(),
		nextID:   func() int { return rand.Intn(MaxProjectID) },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateProject adds a new project and returns its generated id
func (r *Registry) CreateProject(name, description, creator string, date time.Time, services IllustrationServices, teamMembers []string) (int, error) {
	if name == "" || creator == "" || date.IsZero() || services == nil {
		return 0, ErrMissingValues
	}

	name = strings.ToLower(name)
	creator = strings.ToLower(creator)

	// Team members are compared as given, only the creator is lowercased
	for _, member := range teamMembers {
		if member == creator {
			return 0, ErrCreatorIsMember
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.projects {
		if p.Name == name && p.Creator == creator {
			return 0, ErrDuplicateProject
		}
	}

	id := r.generateID()
	r.usedIDs[id] = struct{}{}

	p := &Project{
		ID:                   id,
		Name:                 name,
		Description:          description,
		Creator:              creator,
		CreatedDate:          date.UTC(),
		IllustrationServices: services,
		TeamMembers:          teamMembers,
	}
	r.projects[id] = p.Clone()

	r.logger.Debug("project created",
		zap.Int("project_id", id),
		zap.String("name", name),
		zap.String("creator", creator),
	)

	return id, nil
}

// generateID draws until it finds an id that was never issued. The loop has no
// cap: with a 10M id space it only fails to terminate if every id is taken.
// Callers must hold the write lock.
func (r *Registry) generateID() int {
	for {
		id := r.nextID()
		if _, used := r.usedIDs[id]; !used {
			return id
		}
		r.logger.Debug("project id collision, redrawing", zap.Int("project_id", id))
	}
}

// ProjectsByCreator returns every project created by the given user. The
// comparison ignores case.
func (r *Registry) ProjectsByCreator(creator string) map[int]*Project {
	creator = strings.ToLower(creator)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int]*Project)
	for id, p := range r.projects {
		if p.Creator == creator {
			result[id] = p.Clone()
		}
	}
	return result
}

// SharedProjects returns every project whose team contains the lowercased user
// name. Team entries are matched as stored.
func (r *Registry) SharedProjects(userName string) map[int]*Project {
	userName = strings.ToLower(userName)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int]*Project)
	for id, p := range r.projects {
		if p.HasMember(userName) {
			result[id] = p.Clone()
		}
	}
	return result
}

// OpenProject returns the project if the requester is its creator or a team
// member. The result always holds exactly one entry.
func (r *Registry) OpenProject(projectID, requester string) (map[int]*Project, error) {
	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}

	if p.Creator != strings.ToLower(requester) && !p.HasMember(requester) {
		return nil, ErrNoAccess
	}

	return map[int]*Project{id: p.Clone()}, nil
}

// DeleteProject removes a project. Only its creator may delete it. The id is
// never reissued.
func (r *Registry) DeleteProject(projectID, requester string) error {
	id, err := parseProjectID(projectID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return ErrProjectNotFound
	}

	if p.Creator != strings.ToLower(requester) {
		return ErrNotCreator
	}

	delete(r.projects, id)

	r.logger.Debug("project deleted", zap.Int("project_id", id), zap.String("creator", p.Creator))
	return nil
}

// Len returns the number of projects currently held
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

// Snapshot encodes the current project collection without touching the store
func (r *Registry) Snapshot() ([]byte, error) {
	data, _, err := r.snapshot()
	return data, err
}

// snapshot encodes the collection and reports how many projects went into the
// blob, both taken under the same read lock
func (r *Registry) snapshot() ([]byte, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := EncodeSnapshot(r.projects, r.now())
	return data, len(r.projects), err
}

// SaveSnapshot encodes the project collection, writes it to the store and
// returns the written blob. Issued ids are not part of the snapshot.
func (r *Registry) SaveSnapshot() ([]byte, error) {
	data, count, err := r.snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrIOFailure, err)
	}

	if err := r.store.WriteSnapshot(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	r.logger.Info("snapshot saved", zap.Int("count", count), zap.Int("bytes", len(data)))
	return data, nil
}

// LoadSnapshot replaces the project collection with the stored snapshot. On
// any failure the registry is left untouched.
func (r *Registry) LoadSnapshot() error {
	data, err := r.store.ReadSnapshot()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	count, err := r.restore(data)
	if err != nil {
		return err
	}

	r.logger.Info("snapshot loaded", zap.Int("count", count))
	return nil
}

// Restore replaces the project collection with the decoded blob. Ids of the
// loaded projects are added to the issued set; ids already tracked are kept.
func (r *Registry) Restore(data []byte) error {
	_, err := r.restore(data)
	return err
}

func (r *Registry) restore(data []byte) (int, error) {
	projects, err := DecodeSnapshot(data)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects = projects
	for id := range projects {
		r.usedIDs[id] = struct{}{}
	}
	return len(projects), nil
}

// parseProjectID validates and converts a caller supplied project id
func parseProjectID(projectID string) (int, error) {
	if projectID == "" {
		return 0, ErrEmptyID
	}
	id, err := strconv.Atoi(projectID)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrEmptyID, projectID)
	}
	return id, nil
}
