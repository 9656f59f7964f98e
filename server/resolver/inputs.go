package resolver

import "github.com/Luismorlan/logosarena/model"

// Request shapes of the mutation handlers. The HTTP layer binds them from
// JSON bodies; `validate` tags hold the shape rules checked on trimmed
// values. Image urls go through ValidateImageURLs after the cooldown.

type SubmitArgumentInput struct {
	DebateID  string     `json:"debate_id" validate:"required,uuid"`
	Side      model.Side `json:"side" validate:"required"`
	Content   string     `json:"content" validate:"min=50,max=2000"`
	ImageURLs []string   `json:"image_urls"`
}

type ContentInput struct {
	Content string `json:"content"`
}

type PostCommentInput struct {
	ArgumentID string   `json:"argument_id"`
	Content    string   `json:"content"`
	ImageURLs  []string `json:"image_urls"`
}

type PostNoticeCommentInput struct {
	NoticeID  string   `json:"notice_id"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
}

type NoticeInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type DebateInput struct {
	Topic       string  `json:"topic" validate:"min=5"`
	Description *string `json:"description"`
	OptionA     string  `json:"option_a" validate:"required"`
	OptionB     string  `json:"option_b" validate:"required,nefield=OptionA"`
	// Empty keeps the current status, or active for a new debate.
	Status model.DebateStatus `json:"status"`
}

type ProfileSetupInput struct {
	Username string       `json:"username" validate:"min=2,max=12"`
	Gender   model.Gender `json:"gender" validate:"oneof=male female"`
	Age      int          `json:"age" validate:"min=10,max=100"`
}

type ReportInput struct {
	TargetType model.ReportTargetType `json:"target_type" validate:"oneof=argument comment notice_comment"`
	TargetID   string                 `json:"target_id" validate:"required"`
	Reason     string                 `json:"reason" validate:"required,max=500"`
}
