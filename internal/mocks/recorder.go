package mocks

import (
	"sync"

	"github.com/VitaminP8/socialgraph/internal/storage"
)

// Recorder запоминает вызовы хранилищ и умеет подставлять ошибку для конкретного метода.
// Имена методов вида "Users.GetUser", "Posts.AddLike".
type Recorder struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error
}

func NewRecorder() *Recorder {
	return &Recorder{failures: make(map[string]error)}
}

// FailOn - все последующие вызовы method вернут err (без обращения к хранилищу)
func (r *Recorder) FailOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[method] = err
}

func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *Recorder) Count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, method)
	return r.failures[method]
}

// WrapStores оборачивает все три хранилища; транзакции проходят насквозь
func WrapStores(stores storage.Stores, rec *Recorder) storage.Stores {
	return storage.Stores{
		Users:    &MockUserStorage{next: stores.Users, rec: rec},
		Posts:    &MockPostStorage{next: stores.Posts, rec: rec},
		Comments: &MockCommentStorage{next: stores.Comments, rec: rec},
		Tx:       stores.Tx,
	}
}
