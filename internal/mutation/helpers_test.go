package mutation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/VitaminP8/socialgraph/internal/mocks"
	"github.com/VitaminP8/socialgraph/internal/password"
	"github.com/VitaminP8/socialgraph/internal/storage"
	"github.com/VitaminP8/socialgraph/internal/storage/memory"
	"github.com/VitaminP8/socialgraph/models"
)

type env struct {
	c      *Coordinator
	stores storage.Stores // без записи вызовов, для проверок
	rec    *mocks.Recorder
	feed   *mocks.MockSubscriptionManager
}

func newEnv(t *testing.T) env {
	t.Helper()
	return newEnvWith(t, memory.NewStores())
}

func newEnvWith(t *testing.T, stores storage.Stores) env {
	t.Helper()
	rec := mocks.NewRecorder()
	feed := mocks.NewMockSubscriptionManager()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewCoordinator(mocks.WrapStores(stores, rec), password.NewBcryptHasher(bcrypt.MinCost), feed, logger)
	return env{c: c, stores: stores, rec: rec, feed: feed}
}

func strPtr(s string) *string { return &s }

func (e env) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := e.c.CreateUser(context.Background(), CreateUserInput{Name: name, Email: email, Password: "secret"})
	require.NoError(t, err)
	return u
}

func (e env) createPost(t *testing.T, content string, author *models.User) *models.Post {
	t.Helper()
	p, err := e.c.CreatePost(context.Background(), CreatePostInput{Content: content, Author: author.ID.Hex()})
	require.NoError(t, err)
	return p
}

func (e env) createComment(t *testing.T, text string, author *models.User, p *models.Post) *models.Comment {
	t.Helper()
	cm, err := e.c.CreateComment(context.Background(), CreateCommentInput{Text: text, Author: author.ID.Hex(), Post: p.ID.Hex()})
	require.NoError(t, err)
	return cm
}
