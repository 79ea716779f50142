package dto

import (
	"time"

	"alumx/internal/domain/user"
	ucuser "alumx/internal/usecase/user"
)

// UserResponse is the full listing projection: identity, metadata, and all
// twelve profile tag lists.
type UserResponse struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Skills              []string `json:"skills"`
	Education           []string `json:"education"`
	TechStack           []string `json:"tech_stack"`
	Languages           []string `json:"languages"`
	Frameworks          []string `json:"frameworks"`
	CommunicationSkills []string `json:"communication_skills"`
	Certifications      []string `json:"certifications"`
	Projects            []string `json:"projects"`
	SoftSkills          []string `json:"soft_skills"`
	Hobbies             []string `json:"hobbies"`
	Experience          []string `json:"experience"`
	Internships         []string `json:"internships"`
}

// UserProfileResponse is the condensed single-user projection.
type UserProfileResponse struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Skills    []string `json:"skills"`
	Education []string `json:"education"`
	TechStack []string `json:"tech_stack"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role.String(),
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,

		Skills:              u.Skills,
		Education:           u.Education,
		TechStack:           u.TechStack,
		Languages:           u.Languages,
		Frameworks:          u.Frameworks,
		CommunicationSkills: u.CommunicationSkills,
		Certifications:      u.Certifications,
		Projects:            u.Projects,
		SoftSkills:          u.SoftSkills,
		Hobbies:             u.Hobbies,
		Experience:          u.Experience,
		Internships:         u.Internships,
	}
}

func NewUserProfileResponse(p ucuser.Profile) UserProfileResponse {
	return UserProfileResponse{
		ID:        p.ID,
		Username:  p.Username,
		Name:      p.Name,
		Email:     p.Email,
		Skills:    p.Skills,
		Education: p.Education,
		TechStack: p.TechStack,
	}
}
