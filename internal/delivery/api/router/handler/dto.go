package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// userResponse is the public view of a user. The digest is never part of it.
// LegacyID keeps clients written against the document-store schema working.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	LegacyID  uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:        user.ID,
		LegacyID:  user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}

	return out
}

// optionalInt tells an absent field apart from an explicit null.
type optionalInt struct {
	Set   bool
	Null  bool
	Value int
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true

		return nil
	}

	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value when one was supplied.
func (o optionalInt) Ptr() *int {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value

	return &v
}
