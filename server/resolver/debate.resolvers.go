package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
)

func validStatus(s model.DebateStatus) bool {
	return s == model.DebateStatusActive || s == model.DebateStatusClosed
}

func (r *Resolver) CreateDebate(ctx context.Context, ident *model.Identity, input DebateInput) (debate *model.Debate, err error) {
	defer r.track("create_debate", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return nil, f
	}
	input, verr := ValidateDebate(input)
	if verr != nil {
		return nil, invalid(verr)
	}
	if input.Status == "" {
		input.Status = model.DebateStatusActive
	}
	if !validStatus(input.Status) {
		return nil, failf(ValidationFailed, "unknown debate status: %s", input.Status)
	}

	debate = &model.Debate{
		Topic:       input.Topic,
		Description: input.Description,
		OptionA:     input.OptionA,
		OptionB:     input.OptionB,
		Status:      input.Status,
	}
	if serr := r.Store.CreateDebate(ctx, debate); serr != nil {
		return nil, storeFailure(serr, "")
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(debate.Id))
	return debate, nil
}

// UpdateDebate replaces topic, description and options. In label mode the
// options are the argument sides, renaming them detaches existing arguments
// from their group.
func (r *Resolver) UpdateDebate(ctx context.Context, ident *model.Identity, id string, input DebateInput) (debate *model.Debate, err error) {
	defer r.track("update_debate", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return nil, f
	}
	input, verr := ValidateDebate(input)
	if verr != nil {
		return nil, invalid(verr)
	}
	if input.Status != "" && !validStatus(input.Status) {
		return nil, failf(ValidationFailed, "unknown debate status: %s", input.Status)
	}
	debate, serr := r.Store.GetDebate(ctx, id)
	if serr != nil {
		return nil, storeFailure(serr, debateNotFoundMessage)
	}

	debate.Topic = input.Topic
	debate.Description = input.Description
	debate.OptionA = input.OptionA
	debate.OptionB = input.OptionB
	if input.Status != "" {
		debate.Status = input.Status
	}
	if serr := r.Store.SaveDebate(ctx, debate); serr != nil {
		return nil, storeFailure(serr, debateNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(debate.Id))
	return debate, nil
}

func (r *Resolver) DeleteDebate(ctx context.Context, ident *model.Identity, id string) (err error) {
	defer r.track("delete_debate", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return f
	}
	if serr := r.Store.DeleteDebate(ctx, id); serr != nil {
		return storeFailure(serr, debateNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(id), revalidate.PathRanking)
	return nil
}
