package app_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"taskmanager/internal/taskmanager/domain/entities"
)

// memoryStore backs both repository ports with maps so scenarios can run
// end to end through the use cases. Soft-deleted tasks stay in tasks.
type memoryStore struct {
	mu    sync.Mutex
	seq   int
	clock time.Time
	users map[int64]*entities.User
	tasks map[string]*entities.Task
	order []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		users: make(map[int64]*entities.User),
		tasks: make(map[string]*entities.Task),
	}
}

func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryStore) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

type memoryUserRepo struct{ s *memoryStore }

func (r memoryUserRepo) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, entities.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.s.users[user.IdentifyNumber]; ok {
		return nil, entities.ErrIdentifyNumberAlreadyExists
	}

	stored := *user
	stored.ID = r.s.nextID("user")
	stored.CreatedAt = r.s.tick()
	r.s.users[stored.IdentifyNumber] = &stored
	out := stored
	return &out, nil
}

func (r memoryUserRepo) FindByIdentifyNumber(_ context.Context, n int64) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[n]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r memoryUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r memoryUserRepo) FindAll(_ context.Context) ([]*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := make([]*entities.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out := *u
		users = append(users, &out)
	}
	return users, nil
}

func (r memoryUserRepo) Update(_ context.Context, user *entities.User) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.IdentifyNumber]; !ok {
		return nil, entities.ErrUserNotFound
	}
	stored := *user
	r.s.users[user.IdentifyNumber] = &stored
	out := stored
	return &out, nil
}

func (r memoryUserRepo) Delete(_ context.Context, n int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[n]; !ok {
		return entities.ErrUserNotFound
	}
	delete(r.s.users, n)
	return nil
}

type memoryTaskRepo struct{ s *memoryStore }

func (r memoryTaskRepo) Create(_ context.Context, task *entities.Task) (*entities.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[task.UserID]; !ok {
		return nil, entities.ErrUserNotFound
	}
	stored := *task
	stored.ID = r.s.nextID("task")
	stored.CreatedAt = r.s.tick()
	stored.UpdatedAt = stored.CreatedAt
	r.s.tasks[stored.ID] = &stored
	r.s.order = append(r.s.order, stored.ID)
	return r.withUser(&stored), nil
}

func (r memoryTaskRepo) withUser(t *entities.Task) *entities.Task {
	out := *t
	if u, ok := r.s.users[t.UserID]; ok {
		owner := *u
		out.User = &owner
	}
	return &out
}

func (r memoryTaskRepo) FindByID(_ context.Context, id string) (*entities.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.IsDeleted {
		return nil, entities.ErrTaskNotFound
	}
	return r.withUser(t), nil
}

func (r memoryTaskRepo) list(keep func(*entities.Task) bool) []*entities.Task {
	var out []*entities.Task
	for _, id := range r.s.order {
		t, ok := r.s.tasks[id]
		if ok && !t.IsDeleted && keep(t) {
			out = append(out, r.withUser(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r memoryTaskRepo) FindByUserID(_ context.Context, userID int64, status *entities.TaskStatus) ([]*entities.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.list(func(t *entities.Task) bool {
		return t.UserID == userID && (status == nil || t.Status == *status)
	}), nil
}

func (r memoryTaskRepo) FindAll(_ context.Context) ([]*entities.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.list(func(*entities.Task) bool { return true }), nil
}

func (r memoryTaskRepo) Update(_ context.Context, task *entities.Task) (*entities.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.tasks[task.ID]
	if !ok || current.IsDeleted {
		return nil, entities.ErrTaskNotFound
	}
	stored := *task
	stored.User = nil
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = r.s.tick()
	r.s.tasks[task.ID] = &stored
	return r.withUser(&stored), nil
}

func (r memoryTaskRepo) SoftDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.IsDeleted {
		return entities.ErrTaskNotFound
	}
	t.IsDeleted = true
	return nil
}

func (r memoryTaskRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

// raw returns the stored row including soft-deleted ones.
func (s *memoryStore) raw(id string) (*entities.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	out := *t
	return &out, true
}
