package model

type UserRole string

const (
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User is a console account or a student of the mobile app. Students carry
// a student number and a section; teachers and admins do not.
type User struct {
	ID            string  `bson:"_id" json:"id"`
	Uid           string  `bson:"uid,omitempty" json:"uid,omitempty"`
	Name          string  `bson:"name" json:"name"`
	Email         string  `bson:"email" json:"email"`
	StudentNumber *string `bson:"studentNumber,omitempty" json:"studentNumber,omitempty"`
	Section       *string `bson:"section,omitempty" json:"section,omitempty"`
	IsTeacher     bool    `bson:"isTeacher" json:"isTeacher"`
	Timestamps    `bson:",inline"`
}

func (u User) Role() UserRole {
	if u.IsTeacher {
		return Teacher
	}
	return Admin
}

func (u User) IsStudent() bool {
	return u.StudentNumber != nil && *u.StudentNumber != ""
}

// SectionName returns the section or "" when the field is absent.
func (u User) SectionName() string {
	if u.Section == nil {
		return ""
	}
	return *u.Section
}
