package postgres

import (
	"context"
	"errors"

	"alumx/internal/database"
	"alumx/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, name, email, password_hash, role, profile_completed,
	created_at, updated_at,
	skills, education, tech_stack, languages, frameworks, communication_skills,
	certifications, projects, soft_skills, hobbies, experience, internships`

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, name, email, password_hash, role, profile_completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.Username, u.Name, u.Email, u.PasswordHash, u.Role.String(), u.ProfileCompleted,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) ListAll(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &role, &u.ProfileCompleted,
		&u.CreatedAt, &u.UpdatedAt,
		&u.Skills, &u.Education, &u.TechStack, &u.Languages, &u.Frameworks, &u.CommunicationSkills,
		&u.Certifications, &u.Projects, &u.SoftSkills, &u.Hobbies, &u.Experience, &u.Internships,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
