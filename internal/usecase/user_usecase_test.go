package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"alumx/internal/domain/user"
	ucuser "alumx/internal/usecase/user"
)

type countingRepo struct {
	users    []user.User
	getCalls int
}

func (r *countingRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *countingRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *countingRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = int64(len(r.users) + 1)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, u)
	return u, nil
}

func (r *countingRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.getCalls++
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *countingRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *countingRepo) ListAll(_ context.Context) ([]user.User, error) {
	return r.users, nil
}

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestUserUsecase_GetUserProfile_ReadThrough(t *testing.T) {
	repo := &countingRepo{users: []user.User{{ID: 1, Username: "jdoe", Email: "j@doe.com", Skills: []string{"Go"}}}}
	uc := NewUserUsecase(repo, plainHasher{}, newMemoryCache())

	first, err := uc.GetUserProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	calls := repo.getCalls

	second, err := uc.GetUserProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.getCalls != calls {
		t.Fatalf("second read should be served from cache")
	}
	if first.Username != second.Username || len(second.Skills) != 1 {
		t.Fatalf("cached profile differs: %+v vs %+v", first, second)
	}
}

func TestUserUsecase_CreateUser_InvalidatesListing(t *testing.T) {
	repo := &countingRepo{}
	cache := newMemoryCache()
	uc := NewUserUsecase(repo, plainHasher{}, cache)

	if _, err := uc.GetAllUsers(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.entries[listAllCacheKey]; !ok {
		t.Fatalf("expected listing to be cached")
	}

	created, err := uc.CreateUser(context.Background(), ucuser.CreateInput{
		Username: "jdoe",
		Name:     "John Doe",
		Email:    "j@doe.com",
		Password: "secret1",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.PasswordHash != "" {
		t.Fatalf("created response must not carry the password hash")
	}

	if _, ok := cache.entries[listAllCacheKey]; ok {
		t.Fatalf("expected listing cache to be invalidated on create")
	}

	users, err := uc.GetAllUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(users) != 1 || users[0].Username != "jdoe" {
		t.Fatalf("expected fresh listing with created user, got %+v", users)
	}
}

func TestUserUsecase_NilCache(t *testing.T) {
	repo := &countingRepo{users: []user.User{{ID: 1, Username: "jdoe", Email: "j@doe.com"}}}
	uc := NewUserUsecase(repo, plainHasher{}, nil)

	if _, err := uc.GetUserProfile(context.Background(), 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.GetAllUsers(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
