package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
)

// Notices have no owner, every mutation is admin only.

func (r *Resolver) CreateNotice(ctx context.Context, ident *model.Identity, input NoticeInput) (notice *model.Notice, err error) {
	defer r.track("create_notice", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return nil, f
	}
	input, verr := ValidateNotice(input)
	if verr != nil {
		return nil, invalid(verr)
	}
	notice = &model.Notice{Title: input.Title, Content: input.Content}
	if serr := r.Store.CreateNotice(ctx, notice); serr != nil {
		return nil, storeFailure(serr, "")
	}

	r.revalidate(ctx, revalidate.PathNotice)
	return notice, nil
}

func (r *Resolver) UpdateNotice(ctx context.Context, ident *model.Identity, id string, input NoticeInput) (notice *model.Notice, err error) {
	defer r.track("update_notice", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return nil, f
	}
	input, verr := ValidateNotice(input)
	if verr != nil {
		return nil, invalid(verr)
	}
	notice, serr := r.Store.GetNotice(ctx, id)
	if serr != nil {
		return nil, storeFailure(serr, noticeNotFoundMessage)
	}
	notice.Title = input.Title
	notice.Content = input.Content
	if serr := r.Store.SaveNotice(ctx, notice); serr != nil {
		return nil, storeFailure(serr, noticeNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathNotice)
	return notice, nil
}

func (r *Resolver) DeleteNotice(ctx context.Context, ident *model.Identity, id string) (err error) {
	defer r.track("delete_notice", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return f
	}
	if serr := r.Store.DeleteNotice(ctx, id); serr != nil {
		return storeFailure(serr, noticeNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathNotice)
	return nil
}
