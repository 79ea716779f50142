package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"alumx/internal/domain/user"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidRole        = errors.New("role must be STUDENT, ALUMNI, or PROFESSOR")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInternal           = errors.New("internal error")
)

// DuplicateFieldError reports a uniqueness collision with the offending
// field and submitted value.
type DuplicateFieldError struct {
	Field string
	Value string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Field, e.Value)
}

const minPasswordLength = 6

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}(\.[A-Za-z]{2,})?$`)

type CreateInput struct {
	Username string
	Name     string
	Email    string
	Password string
	Role     string
}

// Profile is the condensed single-user projection.
type Profile struct {
	ID        int64
	Username  string
	Name      string
	Email     string
	Skills    []string
	Education []string
	TechStack []string
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type Service struct {
	users  user.Repository
	hasher PasswordHasher
}

func NewService(users user.Repository, hasher PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Create runs the registration pipeline: uniqueness checks (email before
// username, so the email error wins when both collide), role parsing, email
// shape, password policy, then hash and persist.
func (s *Service) Create(ctx context.Context, in CreateInput) (user.User, error) {
	taken, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, &DuplicateFieldError{Field: "email", Value: in.Email}
	}

	taken, err = s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, &DuplicateFieldError{Field: "username", Value: in.Username}
	}

	role, err := user.ParseRole(in.Role)
	if err != nil {
		return user.User{}, ErrInvalidRole
	}

	if !emailRe.MatchString(in.Email) {
		return user.User{}, ErrInvalidEmailFormat
	}

	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return user.User{}, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		Username:         in.Username,
		Name:             in.Name,
		Email:            in.Email,
		PasswordHash:     hash,
		Role:             role,
		ProfileCompleted: true, // default for now, not derived from profile data
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, s.duplicateAfterInsert(ctx, in)
		}
		return user.User{}, ErrInternal
	}
	return created, nil
}

// duplicateAfterInsert resolves which unique constraint lost the race
// between the pre-check and the insert.
func (s *Service) duplicateAfterInsert(ctx context.Context, in CreateInput) error {
	if taken, err := s.users.ExistsByEmail(ctx, in.Email); err == nil && taken {
		return &DuplicateFieldError{Field: "email", Value: in.Email}
	}
	if taken, err := s.users.ExistsByUsername(ctx, in.Username); err == nil && taken {
		return &DuplicateFieldError{Field: "username", Value: in.Username}
	}
	return ErrInternal
}

// GetProfile returns the condensed projection for one user.
func (s *Service) GetProfile(ctx context.Context, id int64) (Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, user.ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Skills:    copyTags(u.Skills),
		Education: copyTags(u.Education),
		TechStack: copyTags(u.TechStack),
	}, nil
}

// ListAll returns one full projection per stored user, in store order.
// Password hashes are cleared and every tag list is copied so callers can
// never alias or mutate persisted state.
func (s *Service) ListAll(ctx context.Context) ([]user.User, error) {
	stored, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]user.User, 0, len(stored))
	for _, u := range stored {
		out = append(out, Sanitize(u))
	}
	return out, nil
}

// Sanitize clears the password hash and replaces every tag list with a
// fresh copy (nil becomes empty) so the result never aliases stored state.
func Sanitize(u user.User) user.User {
	u.PasswordHash = ""
	u.Skills = copyTags(u.Skills)
	u.Education = copyTags(u.Education)
	u.TechStack = copyTags(u.TechStack)
	u.Languages = copyTags(u.Languages)
	u.Frameworks = copyTags(u.Frameworks)
	u.CommunicationSkills = copyTags(u.CommunicationSkills)
	u.Certifications = copyTags(u.Certifications)
	u.Projects = copyTags(u.Projects)
	u.SoftSkills = copyTags(u.SoftSkills)
	u.Hobbies = copyTags(u.Hobbies)
	u.Experience = copyTags(u.Experience)
	u.Internships = copyTags(u.Internships)
	return u
}

// copyTags returns a fresh slice, never nil.
func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
