package usecase

import (
	"context"
	"fmt"
	"time"

	"alumx/internal/domain/user"
	ucuser "alumx/internal/usecase/user"
	"alumx/internal/ws"
)

const (
	profileCacheTTL = 60 * time.Second
	listAllCacheKey = "users:all"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, in ucuser.CreateInput) (user.User, error)
	GetUserProfile(ctx context.Context, id int64) (ucuser.Profile, error)
	GetAllUsers(ctx context.Context) ([]user.User, error)
}

type User struct {
	svc   *ucuser.Service
	cache ProfileCache
}

func NewUserUsecase(users user.Repository, hasher ucuser.PasswordHasher, cache ProfileCache) *User {
	return &User{svc: ucuser.NewService(users, hasher), cache: cache}
}

func (u *User) CreateUser(ctx context.Context, in ucuser.CreateInput) (user.User, error) {
	created, err := u.svc.Create(ctx, in)
	if err != nil {
		return user.User{}, err
	}

	u.invalidate(ctx, listAllCacheKey)
	ws.NotifyUserRegistered(created.Username, created.Role.String())

	return ucuser.Sanitize(created), nil
}

func (u *User) GetUserProfile(ctx context.Context, id int64) (ucuser.Profile, error) {
	key := profileCacheKey(id)

	var cached ucuser.Profile
	if hit, err := u.cacheGet(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	prof, err := u.svc.GetProfile(ctx, id)
	if err != nil {
		return ucuser.Profile{}, err
	}

	u.cacheSet(ctx, key, prof)
	return prof, nil
}

func (u *User) GetAllUsers(ctx context.Context) ([]user.User, error) {
	var cached []user.User
	if hit, err := u.cacheGet(ctx, listAllCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	users, err := u.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	u.cacheSet(ctx, listAllCacheKey, users)
	return users, nil
}

func profileCacheKey(id int64) string {
	return fmt.Sprintf("users:profile:%d", id)
}

func (u *User) cacheGet(ctx context.Context, key string, out any) (bool, error) {
	if u.cache == nil {
		return false, nil
	}
	return u.cache.GetJSON(ctx, key, out)
}

func (u *User) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	_ = u.cache.SetJSON(ctx, key, value, profileCacheTTL)
}

func (u *User) invalidate(ctx context.Context, key string) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, key)
}
