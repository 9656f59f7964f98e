package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/lib/pq"
)

const (
	debateNotFoundMessage   = "debate not found"
	argumentNotFoundMessage = "argument not found"
)

// SubmitArgument runs auth, shape, cooldown, images, debate lookup and insert
// in that order and stops at the first failure.
func (r *Resolver) SubmitArgument(ctx context.Context, ident *model.Identity, input SubmitArgumentInput) (argument *model.Argument, err error) {
	defer r.track("submit_argument", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	input, verr := validateSubmitArgument(input)
	if verr != nil {
		return nil, invalid(verr)
	}
	if f := r.throttle(ctx, model.TableArguments, ident, "posting an argument"); f != nil {
		return nil, f
	}
	if verr := ValidateImageURLs(input.ImageURLs); verr != nil {
		return nil, invalid(verr)
	}

	debate, serr := r.Store.GetDebate(ctx, input.DebateID)
	if serr != nil {
		return nil, storeFailure(serr, debateNotFoundMessage)
	}
	if !debate.IsActive() {
		return nil, failf(ValidationFailed, "this debate is closed")
	}
	if !r.sideMode().Accepts(debate, input.Side) {
		return nil, failf(ValidationFailed, "invalid side: %s", input.Side)
	}

	argument = &model.Argument{
		DebateID:  debate.Id,
		UserID:    ident.Id,
		Side:      input.Side,
		Content:   input.Content,
		ImageUrls: pq.StringArray(input.ImageURLs),
	}
	if serr := r.Store.CreateArgument(ctx, argument); serr != nil {
		return nil, storeFailure(serr, "")
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(debate.Id))
	return argument, nil
}

func (r *Resolver) UpdateArgument(ctx context.Context, ident *model.Identity, id string, content string) (argument *model.Argument, err error) {
	defer r.track("update_argument", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	argument, serr := r.Store.GetArgument(ctx, id)
	if serr != nil {
		return nil, storeFailure(serr, argumentNotFoundMessage)
	}
	if f := r.authorize(ctx, ident, argument.UserID); f != nil {
		return nil, f
	}
	content, verr := ValidateArgumentContent(content, MaxArgumentEditLength)
	if verr != nil {
		return nil, invalid(verr)
	}
	if serr := r.Store.UpdateArgumentContent(ctx, id, content); serr != nil {
		return nil, storeFailure(serr, argumentNotFoundMessage)
	}
	argument.Content = content

	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(argument.DebateID))
	return argument, nil
}

// DeleteArgument removes the argument with its comments and likes. Likes the
// author received stay in total_score.
func (r *Resolver) DeleteArgument(ctx context.Context, ident *model.Identity, id string) (err error) {
	defer r.track("delete_argument", &err)

	if f := requireIdentity(ident); f != nil {
		return f
	}
	argument, serr := r.Store.GetArgument(ctx, id)
	if serr != nil {
		return storeFailure(serr, argumentNotFoundMessage)
	}
	if f := r.authorize(ctx, ident, argument.UserID); f != nil {
		return f
	}
	if serr := r.Store.DeleteArgument(ctx, id); serr != nil {
		return storeFailure(serr, argumentNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(argument.DebateID))
	return nil
}
