package schema

import (
	"time"

	v "github.com/Gobd/librarian"
	"github.com/Gobd/librarian/models"
	"github.com/Gobd/librarian/transform"
)

// UserSignup is the body of a self-service registration. It creates a member
// and a login account with the member role.
type UserSignup struct {
	Email    string             `json:"email"`
	Password string             `json:"password" transform:"-"`
	Name     string             `json:"name"`
	Phone    v.Optional[string] `json:"phone"`
	Address  v.Optional[string] `json:"address"`
}

func (u *UserSignup) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&u.Email, v.Required, v.Email),
		v.Field(&u.Password, v.Required, v.Length(6, 0)),
		v.Field(&u.Name, v.Required, v.Length(1, 255)),
		v.Field(&u.Phone, v.Length(0, 20)),
		v.Field(&u.Address),
	}
}

func (u *UserSignup) Normalize() {
	transform.TrimSpace(u)
	u.Email = transform.Email(u.Email)
}

// Member returns the member record to create for the signup.
func (u *UserSignup) Member() models.Member {
	return models.Member{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone.Ptr(),
		Address: u.Address.Ptr(),
	}
}

// UserLogin is the body of a login request.
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (u *UserLogin) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&u.Email, v.Required, v.Email),
		v.Field(&u.Password, v.Required),
	}
}

func (u *UserLogin) Normalize() {
	u.Email = transform.Email(u.Email)
}

// Token is issued on a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
	UserID      int64  `json:"user_id"`
}

func (t *Token) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&t.AccessToken, v.Required),
		v.Field(&t.TokenType, v.Default("bearer")),
		v.Field(&t.Role, v.Required),
		v.Field(&t.UserID, v.Required),
	}
}

// UserResponse is a login account as returned to clients.
type UserResponse struct {
	ID        int64             `json:"id"`
	Email     string            `json:"email"`
	Role      Role              `json:"role"`
	MemberID  v.Optional[int64] `json:"member_id"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
}

func (u *UserResponse) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&u.ID, v.Required),
		v.Field(&u.Email, v.Required),
		v.Field(&u.Role, v.Required),
		v.Field(&u.MemberID),
		v.Field(&u.IsActive, v.Present),
		v.Field(&u.CreatedAt, v.Required),
	}
}

// NewUserResponse projects a stored account. The password hash is never
// exposed.
func NewUserResponse(rec models.User) UserResponse {
	return UserResponse{
		ID:        rec.ID,
		Email:     rec.Email,
		Role:      Role(rec.Role),
		MemberID:  v.FromPtr(rec.MemberID),
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
	}
}

// ProfileUpdate is the body of a caller's update of their own profile.
type ProfileUpdate struct {
	Name           v.Optional[string] `json:"name,omitzero"`
	Email          v.Optional[string] `json:"email,omitzero"`
	Phone          v.Optional[string] `json:"phone,omitzero"`
	ProfilePicture v.Optional[string] `json:"profile_picture,omitzero"`
	Password       v.Optional[string] `json:"password,omitzero" transform:"-"`
}

func (p *ProfileUpdate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&p.Name, v.NotNull, v.Length(1, 255)),
		v.Field(&p.Email, v.NotNull, v.Email),
		v.Field(&p.Phone, v.Length(0, 20)),
		v.Field(&p.ProfilePicture),
		v.Field(&p.Password, v.NotNull, v.Length(6, 0)),
	}
}

func (p *ProfileUpdate) Normalize() {
	transform.TrimSpace(p)
	p.Email.TransformStrings(transform.Email)
}

// ApplyTo merges the member fields of the update into rec. The merged member
// is validated as a whole; rec is left unchanged on failure.
func (p *ProfileUpdate) ApplyTo(rec *models.Member) error {
	return applyMember(rec, p.Name, p.Email, p.Phone, v.Optional[string]{}, p.ProfilePicture)
}

// ProfileResponse is the caller's account and, when linked, their member.
type ProfileResponse struct {
	User   UserResponse    `json:"user"`
	Member *MemberResponse `json:"member"`
}

func (p *ProfileResponse) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&p.User, v.Required),
		v.Field(&p.Member),
	}
}

// NewProfileResponse projects an account and its linked member, if any.
func NewProfileResponse(account models.User, member *models.Member) ProfileResponse {
	p := ProfileResponse{User: NewUserResponse(account)}
	if member != nil {
		m := NewMemberResponse(*member, &account)
		p.Member = &m
	}
	return p
}
