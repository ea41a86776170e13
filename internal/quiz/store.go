package quiz

import (
	"context"
	"sort"
	"sync"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

type ListOpts struct {
	Limit  int
	Offset int
}

func (o ListOpts) normalize() ListOpts {
	if o.Limit <= 0 || o.Limit > 200 {
		o.Limit = 50
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// Store persists quizzes keyed by ID. Quizzes are written once; Get
// returns apperr.ErrNotFound for unknown IDs.
type Store interface {
	Put(ctx context.Context, q Quiz) error
	Get(ctx context.Context, id string) (Quiz, error)
	List(ctx context.Context, opts ListOpts) ([]Summary, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	quizzes map[string]Quiz
}

func NewInMemoryStore() Store {
	return &memoryStore{quizzes: map[string]Quiz{}}
}

func (m *memoryStore) Put(_ context.Context, q Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = cloneQuiz(q)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, apperr.ErrNotFound
	}
	return cloneQuiz(q), nil
}

func (m *memoryStore) List(_ context.Context, opts ListOpts) ([]Summary, error) {
	m.mu.RLock()
	all := make([]Summary, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		all = append(all, q.Summary())
	}
	m.mu.RUnlock()
	return page(all, opts), nil
}

// page sorts newest first and applies limit/offset.
func page(all []Summary, opts ListOpts) []Summary {
	opts = opts.normalize()
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt != all[j].CreatedAt {
			return all[i].CreatedAt > all[j].CreatedAt
		}
		return all[i].ID < all[j].ID
	})
	if opts.Offset >= len(all) {
		return []Summary{}
	}
	end := opts.Offset + opts.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[opts.Offset:end]
}

// cloneQuiz copies the slices and map so callers cannot mutate stored state.
func cloneQuiz(q Quiz) Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		if qq.Options != nil {
			qq.Options = append([]string(nil), qq.Options...)
		}
		out.Questions[i] = qq
	}
	if q.Metadata != nil {
		out.Metadata = make(map[string]any, len(q.Metadata))
		for k, v := range q.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
