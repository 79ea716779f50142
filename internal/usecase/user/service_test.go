package user

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"alumx/internal/domain/user"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeHasher struct {
	err error
}

func (f fakeHasher) Hash(plaintext string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + plaintext, nil
}

type fakeRepo struct {
	users  []user.User
	nextID int64

	createErr error
	// makes the email look taken on the second existence probe, to
	// simulate losing the insert race.
	emailTakenOnRecheck bool
	emailChecks         int
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.emailChecks++
	if f.emailTakenOnRecheck && f.emailChecks > 1 {
		return true, nil
	}
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Create(_ context.Context, u user.User) (user.User, error) {
	if f.createErr != nil {
		return user.User{}, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeRepo) ListAll(_ context.Context) ([]user.User, error) {
	return f.users, nil
}

func validInput() CreateInput {
	return CreateInput{
		Username: "jdoe",
		Name:     "John Doe",
		Email:    "j@doe.com",
		Password: "secret1",
		Role:     "student",
	}
}

func TestService_Create_Success(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeHasher{})

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Role != user.RoleStudent {
		t.Fatalf("expected role STUDENT, got %s", created.Role)
	}
	if !created.ProfileCompleted {
		t.Fatalf("expected profile_completed=true")
	}
	if created.PasswordHash == "secret1" {
		t.Fatalf("password hash must not equal plaintext")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected store-populated timestamps")
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 persisted user, got %d", len(repo.users))
	}
}

func TestService_Create_RoleCaseInsensitive(t *testing.T) {
	for _, role := range []string{"STUDENT", "alumni", "Professor", "pRoFeSsOr"} {
		repo := &fakeRepo{}
		svc := NewService(repo, fakeHasher{})

		in := validInput()
		in.Role = role
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("role %q: unexpected err: %v", role, err)
		}
	}
}

func TestService_Create_DuplicateEmailWins(t *testing.T) {
	repo := &fakeRepo{users: []user.User{{ID: 1, Username: "jdoe", Email: "j@doe.com"}}}
	svc := NewService(repo, fakeHasher{})

	// Username collides too and role/password are invalid; the email
	// error must still win.
	in := CreateInput{
		Username: "jdoe",
		Name:     "Other",
		Email:    "j@doe.com",
		Password: "ab",
		Role:     "admin",
	}

	_, err := svc.Create(context.Background(), in)
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
	if dup.Field != "email" || dup.Value != "j@doe.com" {
		t.Fatalf("expected email duplicate, got field=%s value=%s", dup.Field, dup.Value)
	}
	if len(repo.users) != 1 {
		t.Fatalf("no write expected on rejection")
	}
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	repo := &fakeRepo{users: []user.User{{ID: 1, Username: "jdoe", Email: "j@doe.com"}}}
	svc := NewService(repo, fakeHasher{})

	in := validInput()
	in.Email = "other@doe.com"

	_, err := svc.Create(context.Background(), in)
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
	if dup.Field != "username" || dup.Value != "jdoe" {
		t.Fatalf("expected username duplicate, got field=%s value=%s", dup.Field, dup.Value)
	}
}

func TestService_Create_InvalidRole(t *testing.T) {
	for _, role := range []string{"admin", "Stu", "", "alumnus", "staff"} {
		svc := NewService(&fakeRepo{}, fakeHasher{})

		in := validInput()
		in.Role = role
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestService_Create_EmailFormat(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"j@doe.com", true},
		{"a.b+c@example.co.uk", true},
		{"first_last%x@sub-domain.org", true},
		{"foo@bar", false},
		{"not-an-email", false},
		{"@doe.com", false},
		{"j@doe.c", false},
		{"j doe@doe.com", false},
	}

	for _, tt := range tests {
		svc := NewService(&fakeRepo{}, fakeHasher{})

		in := validInput()
		in.Email = tt.email
		_, err := svc.Create(context.Background(), in)
		if tt.ok && err != nil {
			t.Fatalf("email %q: unexpected err: %v", tt.email, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidEmailFormat) {
			t.Fatalf("email %q: expected ErrInvalidEmailFormat, got %v", tt.email, err)
		}
	}
}

func TestService_Create_WeakPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"ab12", false},
		{"abcde", false},
		{"abcdef", true},
		{"日本語です", false}, // 5 runes, more than 6 bytes
		{"日本語ですよ!", true},
	}

	for _, tt := range tests {
		svc := NewService(&fakeRepo{}, fakeHasher{})

		in := validInput()
		in.Password = tt.password
		_, err := svc.Create(context.Background(), in)
		if tt.ok && err != nil {
			t.Fatalf("password %q: unexpected err: %v", tt.password, err)
		}
		if !tt.ok && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", tt.password, err)
		}
	}
}

func TestService_Create_InsertRaceTranslatesToDuplicate(t *testing.T) {
	repo := &fakeRepo{
		createErr:           &pgconn.PgError{Code: "23505"},
		emailTakenOnRecheck: true,
	}
	svc := NewService(repo, fakeHasher{})

	_, err := svc.Create(context.Background(), validInput())
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
	if dup.Field != "email" {
		t.Fatalf("expected email duplicate, got %s", dup.Field)
	}
}

func TestService_GetProfile_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeHasher{})

	if _, err := svc.GetProfile(context.Background(), 42); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_GetProfile_EmptyListsNeverNil(t *testing.T) {
	repo := &fakeRepo{users: []user.User{{
		ID:       1,
		Username: "jdoe",
		Name:     "John Doe",
		Email:    "j@doe.com",
	}}}
	svc := NewService(repo, fakeHasher{})

	prof, err := svc.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for name, tags := range map[string][]string{
		"skills":     prof.Skills,
		"education":  prof.Education,
		"tech_stack": prof.TechStack,
	} {
		if tags == nil {
			t.Fatalf("%s: expected empty slice, got nil", name)
		}
		if len(tags) != 0 {
			t.Fatalf("%s: expected empty slice, got %v", name, tags)
		}
	}
}

func TestService_GetProfile_DefensiveCopy(t *testing.T) {
	repo := &fakeRepo{users: []user.User{{
		ID:     1,
		Skills: []string{"Go", "SQL"},
	}}}
	svc := NewService(repo, fakeHasher{})

	prof, err := svc.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	prof.Skills[0] = "mutated"

	again, err := svc.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if again.Skills[0] != "Go" {
		t.Fatalf("caller mutation leaked into stored state: %v", again.Skills)
	}
}

func TestService_ListAll(t *testing.T) {
	repo := &fakeRepo{users: []user.User{
		{
			ID:           1,
			Username:     "jdoe",
			Email:        "j@doe.com",
			PasswordHash: "hashed:secret1",
			Role:         user.RoleStudent,
			Skills:       []string{"Go"},
		},
		{
			ID:           2,
			Username:     "asmith",
			Email:        "a@smith.com",
			PasswordHash: "hashed:secret2",
			Role:         user.RoleAlumni,
		},
	}}
	svc := NewService(repo, fakeHasher{})

	users, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	for _, u := range users {
		if u.PasswordHash != "" {
			t.Fatalf("password hash must not appear in projections")
		}
	}

	// Second user has every tag list unset; all twelve must project as
	// empty slices.
	second := users[1]
	for name, tags := range map[string][]string{
		"skills":               second.Skills,
		"education":            second.Education,
		"tech_stack":           second.TechStack,
		"languages":            second.Languages,
		"frameworks":           second.Frameworks,
		"communication_skills": second.CommunicationSkills,
		"certifications":       second.Certifications,
		"projects":             second.Projects,
		"soft_skills":          second.SoftSkills,
		"hobbies":              second.Hobbies,
		"experience":           second.Experience,
		"internships":          second.Internships,
	} {
		if tags == nil || len(tags) != 0 {
			t.Fatalf("%s: expected empty slice, got %#v", name, tags)
		}
	}

	// Mutating a projection must not touch the store.
	users[0].Skills[0] = "mutated"
	again, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if again[0].Skills[0] != "Go" {
		t.Fatalf("caller mutation leaked into stored state")
	}
	if !reflect.DeepEqual(again, mustListAll(t, svc)) {
		t.Fatalf("repeated reads must be identical")
	}
}

func mustListAll(t *testing.T, svc *Service) []user.User {
	t.Helper()
	users, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return users
}
