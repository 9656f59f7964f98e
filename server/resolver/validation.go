package resolver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Content bounds, counted in characters of the trimmed text. The struct tags
// of the inputs repeat them.
const (
	MaxImageCount          = 10
	MaxImageURLLength      = 2000
	MinArgumentLength      = 50
	MaxArgumentLength      = 2000
	MaxArgumentEditLength  = 3000
	MaxCommentLength       = 500
	MinUsernameLength      = 2
	MaxUsernameLength      = 15
	MaxSetupUsernameLength = 12
	MinAge                 = 10
	MaxAge                 = 100
	MinDebateTopicLength   = 5
	MaxReportReasonLength  = 500
)

// Shape rules live in `validate` struct tags. gin binds with the `binding`
// key, so decoding a body never runs them; the resolver does, in its own
// order.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterAlias("httpprefix", "startswith=http://|startswith=https://")
	if err := v.RegisterValidation("imageurl", isImageURL); err != nil {
		panic(err)
	}
	return v
}

// isImageURL requires an absolute url with a host.
func isImageURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	return err == nil && u.Host != ""
}

// ruleMessages maps "Field.tag" to the message shown for it. Slice elements
// use "Field[].tag", values validated on their own ".tag". A %s verb is
// filled with the tag parameter.
type ruleMessages map[string]string

func ruleKey(fe validator.FieldError) string {
	field := fe.StructField()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i] + "[]"
	}
	return field + "." + fe.Tag()
}

// firstFailure turns the first failing rule of a validator error into its
// message.
func (m ruleMessages) firstFailure(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := m[ruleKey(fe)]
	if !ok {
		return errors.Errorf("invalid %s", strings.ToLower(fe.Field()))
	}
	if strings.Contains(msg, "%s") {
		return errors.Errorf(msg, fe.Param())
	}
	return errors.New(msg)
}

type imageList struct {
	ImageURLs []string `validate:"max=10,dive,httpprefix,max=2000,imageurl"`
}

var imageMessages = ruleMessages{
	"ImageURLs.max":          "images are limited to a maximum of %s",
	"ImageURLs[].httpprefix": "images must start with http or https",
	"ImageURLs[].max":        "image url is too long",
	"ImageURLs[].imageurl":   "invalid image url",
}

func ValidateImageURLs(urls []string) error {
	return imageMessages.firstFailure(validate.Struct(imageList{ImageURLs: urls}))
}

var argumentContentMessages = ruleMessages{
	".min": "write at least %s characters including your claim and evidence",
	".max": "arguments can be at most %s characters",
}

// ValidateArgumentContent checks the trimmed content against
// [MinArgumentLength, max] and returns it.
func ValidateArgumentContent(content string, max int) (string, error) {
	content = strings.TrimSpace(content)
	err := validate.Var(content, fmt.Sprintf("min=%d,max=%d", MinArgumentLength, max))
	if err != nil {
		return "", argumentContentMessages.firstFailure(err)
	}
	return content, nil
}

var commentContentMessages = ruleMessages{
	".required": "content is empty",
	".max":      "comments can be at most %s characters",
}

func ValidateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if err := validate.Var(content, fmt.Sprintf("required,max=%d", MaxCommentLength)); err != nil {
		return "", commentContentMessages.firstFailure(err)
	}
	return content, nil
}

var usernameMessages = ruleMessages{
	".min": "username must be at least %s characters",
	".max": "username can be at most %s characters",
}

func ValidateUsername(name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, fmt.Sprintf("min=%d,max=%d", MinUsernameLength, max)); err != nil {
		return "", usernameMessages.firstFailure(err)
	}
	return name, nil
}

var profileSetupMessages = ruleMessages{
	"Username.min": usernameMessages[".min"],
	"Username.max": usernameMessages[".max"],
	"Gender.oneof": "please select a gender",
	"Age.min":      "you must be at least %s years old",
	"Age.max":      "age can be at most %s",
}

func ValidateProfileSetup(in ProfileSetupInput) (ProfileSetupInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	return in, profileSetupMessages.firstFailure(validate.Struct(in))
}

var noticeMessages = ruleMessages{
	"Title.required":   "enter a title",
	"Content.required": "enter the content",
}

func ValidateNotice(in NoticeInput) (NoticeInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	return in, noticeMessages.firstFailure(validate.Struct(in))
}

var debateMessages = ruleMessages{
	"Topic.min":        "topic must be at least %s characters",
	"OptionA.required": "enter both options",
	"OptionB.required": "enter both options",
	"OptionB.nefield":  "options must be different",
}

func ValidateDebate(in DebateInput) (DebateInput, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	in.OptionA = strings.TrimSpace(in.OptionA)
	in.OptionB = strings.TrimSpace(in.OptionB)
	if err := validate.Struct(in); err != nil {
		return in, debateMessages.firstFailure(err)
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
	return in, nil
}

var reportMessages = ruleMessages{
	"TargetType.oneof":  "unknown report target",
	"TargetID.required": "report target is missing",
	"Reason.required":   "enter a reason for the report",
	"Reason.max":        "reasons can be at most %s characters",
}

func ValidateReport(in ReportInput) (ReportInput, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	return in, reportMessages.firstFailure(validate.Struct(in))
}

var submitArgumentMessages = ruleMessages{
	"DebateID.required": "invalid debate id",
	"DebateID.uuid":     "invalid debate id",
	"Side.required":     "choose a side",
	"Content.min":       argumentContentMessages[".min"],
	"Content.max":       argumentContentMessages[".max"],
}

// validateSubmitArgument is the shape check of SubmitArgument, in the order
// the fields appear on the form. Images are checked after the cooldown.
func validateSubmitArgument(in SubmitArgumentInput) (SubmitArgumentInput, error) {
	in.Content = strings.TrimSpace(in.Content)
	return in, submitArgumentMessages.firstFailure(validate.Struct(in))
}
