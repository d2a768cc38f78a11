package model

// Plan gates the message quota.
type Plan string

const (
	PlanFree Plan = "Free"
	PlanPro  Plan = "Pro"
)

// ChatStyle selects the default persona when no avatar is bound.
type ChatStyle string

const (
	StyleFriendly     ChatStyle = "Friendly"
	StyleProfessional ChatStyle = "Professional"
	StyleCreative     ChatStyle = "Creative"
)

// User is the local profile and settings aggregate.
type User struct {
	UID              string    `json:"uid"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	AvatarURL        string    `json:"avatarUrl"`
	KnowledgeBase    string    `json:"knowledgeBase"`
	WebAccessEnabled bool      `json:"webAccessEnabled"`
	UseChatMemory    bool      `json:"useChatMemory"`
	ChatStyle        ChatStyle `json:"chatStyle"`
	Plan             Plan      `json:"plan"`
	Theme            string    `json:"theme"`
	SelectedModelID  string    `json:"selectedModelId"`
	MessageCount     int       `json:"messageCount"`

	Language         string `json:"language"`
	Voice            string `json:"voice"`
	AccentColor      string `json:"accentColor"`
	SmartSuggestions bool   `json:"smartSuggestions"`
	AutoSummarize    bool   `json:"autoSummarize"`
}

// ProfileUpdate is a partial change to a User. Nil fields are left untouched.
// The message counter is not settable; only a turn or a plan change moves it.
type ProfileUpdate struct {
	Name             *string    `json:"name,omitempty"`
	Email            *string    `json:"email,omitempty"`
	AvatarURL        *string    `json:"avatarUrl,omitempty"`
	KnowledgeBase    *string    `json:"knowledgeBase,omitempty"`
	WebAccessEnabled *bool      `json:"webAccessEnabled,omitempty"`
	UseChatMemory    *bool      `json:"useChatMemory,omitempty"`
	ChatStyle        *ChatStyle `json:"chatStyle,omitempty" validate:"omitempty,oneof=Friendly Professional Creative"`
	Plan             *Plan      `json:"plan,omitempty" validate:"omitempty,oneof=Free Pro"`
	Theme            *string    `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	SelectedModelID  *string    `json:"selectedModelId,omitempty"`
	Language         *string    `json:"language,omitempty"`
	Voice            *string    `json:"voice,omitempty"`
	AccentColor      *string    `json:"accentColor,omitempty"`
	SmartSuggestions *bool      `json:"smartSuggestions,omitempty"`
	AutoSummarize    *bool      `json:"autoSummarize,omitempty"`
}

// Apply merges the update into a copy of u and returns it.
// Changing the plan resets the message counter.
func (u User) Apply(p ProfileUpdate) User {
	set(&u.Name, p.Name)
	set(&u.Email, p.Email)
	set(&u.AvatarURL, p.AvatarURL)
	set(&u.KnowledgeBase, p.KnowledgeBase)
	set(&u.WebAccessEnabled, p.WebAccessEnabled)
	set(&u.UseChatMemory, p.UseChatMemory)
	set(&u.ChatStyle, p.ChatStyle)
	set(&u.Theme, p.Theme)
	set(&u.SelectedModelID, p.SelectedModelID)
	set(&u.Language, p.Language)
	set(&u.Voice, p.Voice)
	set(&u.AccentColor, p.AccentColor)
	set(&u.SmartSuggestions, p.SmartSuggestions)
	set(&u.AutoSummarize, p.AutoSummarize)

	if p.Plan != nil && *p.Plan != u.Plan {
		u.Plan = *p.Plan
		u.MessageCount = 0
	}
	return u
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
