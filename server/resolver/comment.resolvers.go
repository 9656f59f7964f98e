package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/lib/pq"
)

const commentNotFoundMessage = "comment not found"

func (r *Resolver) PostComment(ctx context.Context, ident *model.Identity, input PostCommentInput) (comment *model.Comment, err error) {
	defer r.track("post_comment", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	if f := r.throttle(ctx, model.TableComments, ident, "commenting"); f != nil {
		return nil, f
	}
	content, verr := ValidateCommentContent(input.Content)
	if verr != nil {
		return nil, invalid(verr)
	}
	if verr := ValidateImageURLs(input.ImageURLs); verr != nil {
		return nil, invalid(verr)
	}
	argument, serr := r.Store.GetArgument(ctx, input.ArgumentID)
	if serr != nil {
		return nil, storeFailure(serr, argumentNotFoundMessage)
	}

	comment = &model.Comment{
		ArgumentID: argument.Id,
		UserID:     ident.Id,
		Content:    content,
		ImageUrls:  pq.StringArray(input.ImageURLs),
	}
	if serr := r.Store.CreateComment(ctx, comment); serr != nil {
		return nil, storeFailure(serr, "")
	}

	// The home feed shows comment totals per debate.
	r.revalidate(ctx, revalidate.PathHome, revalidate.DebatePath(argument.DebateID))
	return comment, nil
}

func (r *Resolver) UpdateComment(ctx context.Context, ident *model.Identity, id string, content string) (comment *model.Comment, err error) {
	defer r.track("update_comment", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	comment, serr := r.Store.GetComment(ctx, id)
	if serr != nil {
		return nil, storeFailure(serr, commentNotFoundMessage)
	}
	if f := r.authorize(ctx, ident, comment.UserID); f != nil {
		return nil, f
	}
	content, verr := ValidateCommentContent(content)
	if verr != nil {
		return nil, invalid(verr)
	}
	if serr := r.Store.UpdateCommentContent(ctx, id, content); serr != nil {
		return nil, storeFailure(serr, commentNotFoundMessage)
	}
	comment.Content = content

	r.revalidateComment(ctx, comment, false)
	return comment, nil
}

func (r *Resolver) DeleteComment(ctx context.Context, ident *model.Identity, id string) (err error) {
	defer r.track("delete_comment", &err)

	if f := requireIdentity(ident); f != nil {
		return f
	}
	comment, serr := r.Store.GetComment(ctx, id)
	if serr != nil {
		return storeFailure(serr, commentNotFoundMessage)
	}
	if f := r.authorize(ctx, ident, comment.UserID); f != nil {
		return f
	}
	if serr := r.Store.DeleteComment(ctx, id); serr != nil {
		return storeFailure(serr, commentNotFoundMessage)
	}

	r.revalidateComment(ctx, comment, true)
	return nil
}

// revalidateComment refreshes the debate page of the comment's argument. The
// argument may already be gone, then only the home feed is refreshed.
func (r *Resolver) revalidateComment(ctx context.Context, comment *model.Comment, home bool) {
	var paths []string
	if home {
		paths = append(paths, revalidate.PathHome)
	}
	if argument, err := r.Store.GetArgument(ctx, comment.ArgumentID); err == nil {
		paths = append(paths, revalidate.DebatePath(argument.DebateID))
	}
	if len(paths) > 0 {
		r.revalidate(ctx, paths...)
	}
}

const (
	noticeNotFoundMessage        = "notice not found"
	noticeCommentNotFoundMessage = "notice comment not found"
)

func (r *Resolver) PostNoticeComment(ctx context.Context, ident *model.Identity, input PostNoticeCommentInput) (comment *model.NoticeComment, err error) {
	defer r.track("post_notice_comment", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	if f := r.throttle(ctx, model.TableNoticeComments, ident, "commenting"); f != nil {
		return nil, f
	}
	content, verr := ValidateCommentContent(input.Content)
	if verr != nil {
		return nil, invalid(verr)
	}
	if verr := ValidateImageURLs(input.ImageURLs); verr != nil {
		return nil, invalid(verr)
	}
	if _, serr := r.Store.GetNotice(ctx, input.NoticeID); serr != nil {
		return nil, storeFailure(serr, noticeNotFoundMessage)
	}

	comment = &model.NoticeComment{
		NoticeID:  input.NoticeID,
		UserID:    ident.Id,
		Content:   content,
		ImageUrls: pq.StringArray(input.ImageURLs),
	}
	if serr := r.Store.CreateNoticeComment(ctx, comment); serr != nil {
		return nil, storeFailure(serr, "")
	}

	r.revalidate(ctx, revalidate.PathNotice)
	return comment, nil
}

func (r *Resolver) UpdateNoticeComment(ctx context.Context, ident *model.Identity, id string, content string) (comment *model.NoticeComment, err error) {
	defer r.track("update_notice_comment", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	comment, serr := r.Store.GetNoticeComment(ctx, id)
	if serr != nil {
		return nil, storeFailure(serr, noticeCommentNotFoundMessage)
	}
	if f := r.authorize(ctx, ident, comment.UserID); f != nil {
		return nil, f
	}
	content, verr := ValidateCommentContent(content)
	if verr != nil {
		return nil, invalid(verr)
	}
	if serr := r.Store.UpdateNoticeCommentContent(ctx, id, content); serr != nil {
		return nil, storeFailure(serr, noticeCommentNotFoundMessage)
	}
	comment.Content = content

	r.revalidate(ctx, revalidate.PathNotice)
	return comment, nil
}

func (r *Resolver) DeleteNoticeComment(ctx context.Context, ident *model.Identity, id string) (err error) {
	defer r.track("delete_notice_comment", &err)

	if f := requireIdentity(ident); f != nil {
		return f
	}
	comment, serr := r.Store.GetNoticeComment(ctx, id)
	if serr != nil {
		return storeFailure(serr, noticeCommentNotFoundMessage)
	}
	if f := r.authorize(ctx, ident, comment.UserID); f != nil {
		return f
	}
	if serr := r.Store.DeleteNoticeComment(ctx, id); serr != nil {
		return storeFailure(serr, noticeCommentNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathNotice)
	return nil
}
