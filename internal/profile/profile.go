// Package profile is the local sign-in collaborator. It builds a profile from a
// display name and merges partial updates into it.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"uf-ai/backend/internal/catalog"
	apperrors "uf-ai/backend/internal/errors"
	"uf-ai/backend/internal/model"
)

var whitespace = regexp.MustCompile(`\s+`)

type Service struct {
	validate *validator.Validate
}

func NewService() *Service {
	return &Service{validate: validator.New()}
}

// SignIn creates the default profile for name.
func (s *Service) SignIn(_ context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
	}
	lower := strings.ToLower(name)

	u := &model.User{
		UID:              "mock-uid-" + whitespace.ReplaceAllString(lower, "-"),
		Name:             name,
		Email:            whitespace.ReplaceAllString(lower, ".") + "@ufai.local",
		AvatarURL:        "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=1a1a2e&color=dcdcdc&bold=true",
		WebAccessEnabled: true,
		UseChatMemory:    true,
		ChatStyle:        model.StyleFriendly,
		Plan:             model.PlanFree,
		Theme:            "light",
		SelectedModelID:  catalog.DefaultModelID,
		Language:         "English",
		Voice:            "Juniper",
		AccentColor:      "Default",
		SmartSuggestions: true,
	}
	slog.Info("User signed in", "uid", u.UID)
	return u, nil
}

// UpdateProfile validates upd and merges it into current.
func (s *Service) UpdateProfile(_ context.Context, current *model.User, upd model.ProfileUpdate) (*model.User, error) {
	if current == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate.Struct(upd); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if upd.SelectedModelID != nil {
		if _, ok := catalog.FindModel(*upd.SelectedModelID); !ok {
			return nil, fmt.Errorf("%w: unknown model %q", apperrors.ErrValidation, *upd.SelectedModelID)
		}
	}
	next := current.Apply(upd)
	return &next, nil
}

func (s *Service) SignOut(_ context.Context, current *model.User) error {
	if current != nil {
		slog.Info("User signed out", "uid", current.UID)
	}
	return nil
}
