package user

import "time"

type User struct {
	ID               int64
	Username         string
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Skills              []string
	Education           []string
	TechStack           []string
	Languages           []string
	Frameworks          []string
	CommunicationSkills []string
	Certifications      []string
	Projects            []string
	SoftSkills          []string
	Hobbies             []string
	Experience          []string
	Internships         []string
}
