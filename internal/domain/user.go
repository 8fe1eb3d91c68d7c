package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Availability describes when a user is free to swap skills
type Availability string

const (
	AvailabilityWeekends Availability = "weekends"
	AvailabilityEvenings Availability = "evenings"
	AvailabilityWeekdays Availability = "weekdays"
	AvailabilityFlexible Availability = "flexible"
)

// AvailabilityAll disables the availability filter in directory search
const AvailabilityAll = "all"

// Valid reports whether a is one of the known availability values
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityWeekends, AvailabilityEvenings, AvailabilityWeekdays, AvailabilityFlexible:
		return true
	}
	return false
}

// Visibility controls whether a profile is discoverable by other users
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// User represents a member of the skill exchange directory
type User struct {
	ID                uuid.UUID    `json:"id"`
	Email             string       `json:"email"`
	PasswordHash      string       `json:"-"`
	Name              string       `json:"name"`
	Location          string       `json:"location"`
	SkillsOffered     []string     `json:"skills_offered"`
	SkillsWanted      []string     `json:"skills_wanted"`
	Availability      Availability `json:"availability"`
	ProfileVisibility Visibility   `json:"profile_visibility"`
	Rating            float64      `json:"rating"`
	ReviewCount       int          `json:"review_count"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// IsPublic reports whether the user shows up in directory listings
func (u *User) IsPublic() bool {
	return u.ProfileVisibility == VisibilityPublic
}

// OfferedLabel finds skill in the user's offered set, ignoring case, and
// returns the label as the user spelled it
func (u *User) OfferedLabel(skill string) (string, bool) {
	return findFold(u.SkillsOffered, skill)
}

// WantedLabel finds skill in the user's wanted set, ignoring case
func (u *User) WantedLabel(skill string) (string, bool) {
	return findFold(u.SkillsWanted, skill)
}

// Public returns a copy of the user without the credential
func (u User) Public() User {
	u.PasswordHash = ""
	u.SkillsOffered = append([]string(nil), u.SkillsOffered...)
	u.SkillsWanted = append([]string(nil), u.SkillsWanted...)
	return u
}

// UserCreate represents user registration data
type UserCreate struct {
	Email         string       `json:"email" validate:"required,email,max=255"`
	Password      string       `json:"password" validate:"required,min=8,max=72"`
	Name          string       `json:"name" validate:"required,max=255"`
	Location      string       `json:"location" validate:"required,max=255"`
	SkillsOffered []string     `json:"skills_offered" validate:"omitempty,dive,max=100"`
	SkillsWanted  []string     `json:"skills_wanted" validate:"omitempty,dive,max=100"`
	Availability  Availability `json:"availability" validate:"omitempty,oneof=weekends evenings weekdays flexible"`
}

// UserLogin represents login credentials
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate carries a partial profile update; nil fields are left untouched
type UserUpdate struct {
	Name              *string       `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Location          *string       `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	SkillsOffered     *[]string     `json:"skills_offered,omitempty" validate:"omitempty,dive,max=100"`
	SkillsWanted      *[]string     `json:"skills_wanted,omitempty" validate:"omitempty,dive,max=100"`
	Availability      *Availability `json:"availability,omitempty" validate:"omitempty,oneof=weekends evenings weekdays flexible"`
	ProfileVisibility *Visibility   `json:"profile_visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// Empty reports whether the update touches no field
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Location == nil && u.SkillsOffered == nil &&
		u.SkillsWanted == nil && u.Availability == nil && u.ProfileVisibility == nil
}

// Apply merges the present fields of u into user
func (u UserUpdate) Apply(user *User) {
	if u.Name != nil {
		user.Name = strings.TrimSpace(*u.Name)
	}
	if u.Location != nil {
		user.Location = strings.TrimSpace(*u.Location)
	}
	if u.SkillsOffered != nil {
		user.SkillsOffered = NormalizeSkills(*u.SkillsOffered)
	}
	if u.SkillsWanted != nil {
		user.SkillsWanted = NormalizeSkills(*u.SkillsWanted)
	}
	if u.Availability != nil {
		user.Availability = *u.Availability
	}
	if u.ProfileVisibility != nil {
		user.ProfileVisibility = *u.ProfileVisibility
	}
}

// TokenPair represents JWT token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSkills trims labels, drops blanks and suppresses exact duplicates,
// keeping first-seen order
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func findFold(list []string, s string) (string, bool) {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return item, true
		}
	}
	return "", false
}
