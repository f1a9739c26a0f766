package schema

import (
	"time"

	v "github.com/Gobd/librarian"
	"github.com/Gobd/librarian/models"
	"github.com/Gobd/librarian/transform"
)

// MemberFields are the fields shared by member creation and member responses.
type MemberFields struct {
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          v.Optional[string] `json:"phone"`
	Address        v.Optional[string] `json:"address"`
	ProfilePicture v.Optional[string] `json:"profile_picture"`
}

func (m *MemberFields) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&m.Name, v.Required, v.Length(1, 255)),
		v.Field(&m.Email, v.Required, v.Email, v.Example("reader@example.com")),
		v.Field(&m.Phone, v.Length(0, 20)),
		v.Field(&m.Address, v.Describe("postal address")),
		v.Field(&m.ProfilePicture, v.Describe("URL of the profile picture")),
	}
}

func (m *MemberFields) Normalize() {
	transform.TrimSpace(m)
	m.Email = transform.Email(m.Email)
}

// Model returns the persistence record for the fields. Server-assigned
// columns are left zero.
func (m MemberFields) Model() models.Member {
	return models.Member{
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone.Ptr(),
		Address:        m.Address.Ptr(),
		ProfilePicture: m.ProfilePicture.Ptr(),
	}
}

func memberFieldsOf(rec models.Member) MemberFields {
	return MemberFields{
		Name:           rec.Name,
		Email:          rec.Email,
		Phone:          v.FromPtr(rec.Phone),
		Address:        v.FromPtr(rec.Address),
		ProfilePicture: v.FromPtr(rec.ProfilePicture),
	}
}

// MemberCreate is the body of a create-member request. It can also ask for a
// login account to be created for the member, in which case a password is
// required.
type MemberCreate struct {
	MemberFields
	Role              v.Optional[Role]   `json:"role,omitzero"`
	Password          v.Optional[string] `json:"password,omitzero"`
	CreateUserAccount bool               `json:"create_user_account"`
}

func (m *MemberCreate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&m.MemberFields),
		v.Field(&m.Role, v.NotNull),
		v.Field(&m.Password,
			v.When(m.CreateUserAccount, "create_user_account is true", v.Required),
			v.Length(6, 0),
		),
		v.Field(&m.CreateUserAccount, v.Default(false),
			v.Describe("Whether to create a user account for this member")),
	}
}

// AccountRole is the role of the account to create. It defaults to member.
func (m *MemberCreate) AccountRole() Role {
	return m.Role.OrElse(RoleMember)
}

// MemberUpdate is the body of a partial member update. The account fields
// apply to the linked user account when update_user_account is true.
type MemberUpdate struct {
	Name              v.Optional[string] `json:"name,omitzero"`
	Email             v.Optional[string] `json:"email,omitzero"`
	Phone             v.Optional[string] `json:"phone,omitzero"`
	Address           v.Optional[string] `json:"address,omitzero"`
	ProfilePicture    v.Optional[string] `json:"profile_picture,omitzero"`
	Role              v.Optional[Role]   `json:"role,omitzero"`
	Password          v.Optional[string] `json:"password,omitzero" transform:"-"`
	UpdateUserAccount bool               `json:"update_user_account"`
}

func (m *MemberUpdate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&m.Name, v.NotNull, v.Length(1, 255)),
		v.Field(&m.Email, v.NotNull, v.Email),
		v.Field(&m.Phone, v.Length(0, 20)),
		v.Field(&m.Address),
		v.Field(&m.ProfilePicture),
		v.Field(&m.Role, v.NotNull),
		v.Field(&m.Password, v.NotNull, v.Length(6, 0)),
		v.Field(&m.UpdateUserAccount, v.Default(false),
			v.Describe("Whether to update or create the linked user account")),
	}
}

func (m *MemberUpdate) Normalize() {
	transform.TrimSpace(m)
	m.Email.TransformStrings(transform.Email)
}

// ApplyTo merges the member fields of the update into rec. The merged member
// is validated as a whole; rec is left unchanged on failure.
func (m *MemberUpdate) ApplyTo(rec *models.Member) error {
	return applyMember(rec, m.Name, m.Email, m.Phone, m.Address, m.ProfilePicture)
}

func applyMember(rec *models.Member, name, email, phone, address, picture v.Optional[string]) error {
	next := *rec
	if s, ok := name.Get(); ok {
		next.Name = s
	}
	if s, ok := email.Get(); ok {
		next.Email = s
	}
	if phone.IsSet() {
		next.Phone = phone.Ptr()
	}
	if address.IsSet() {
		next.Address = address.Ptr()
	}
	if picture.IsSet() {
		next.ProfilePicture = picture.Ptr()
	}
	merged := memberFieldsOf(next)
	if err := v.Validate(&merged); err != nil {
		return err
	}
	*rec = next
	return nil
}

// MemberResponse is a stored member as returned to clients. UserRole is the
// role of the linked user account, null when there is none.
type MemberResponse struct {
	ID int64 `json:"id"`
	MemberFields
	MembershipDate v.Date           `json:"membership_date"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	UserRole       v.Optional[Role] `json:"user_role"`
}

func (m *MemberResponse) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&m.ID, v.Required),
		v.Field(&m.MemberFields),
		v.Field(&m.MembershipDate, v.Required),
		v.Field(&m.CreatedAt, v.Required),
		v.Field(&m.UpdatedAt, v.Required),
		v.Field(&m.UserRole),
	}
}

// NewMemberResponse projects a stored member and its linked account, if any.
func NewMemberResponse(rec models.Member, account *models.User) MemberResponse {
	role := v.Null[Role]()
	if account != nil {
		role = v.Some(Role(account.Role))
	}
	return MemberResponse{
		ID:             rec.ID,
		MemberFields:   memberFieldsOf(rec),
		MembershipDate: rec.MembershipDate,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		UserRole:       role,
	}
}
