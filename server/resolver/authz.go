package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/store"
	Logger "github.com/Luismorlan/logosarena/utils/log"
)

// Authorize reports whether ident may change a row owned by ownerID, and the
// user facing message when it may not.
func (r *Resolver) Authorize(ctx context.Context, ident *model.Identity, ownerID string) (bool, string) {
	if f := r.authorize(ctx, ident, ownerID); f != nil {
		return false, f.Message
	}
	return true, ""
}

// authorize allows the owner of a row, or an admin.
func (r *Resolver) authorize(ctx context.Context, ident *model.Identity, ownerID string) *Failure {
	if f := requireIdentity(ident); f != nil {
		return f
	}
	if ident.Id == ownerID {
		return nil
	}
	profile, err := r.Store.GetProfile(ctx, ident.Id)
	if err != nil && !store.IsNotFound(err) {
		return storeFailure(err, "")
	}
	if profile.IsAdmin() {
		return nil
	}
	Logger.Log.Infof("user %s denied on content owned by %s", ident.Id, ownerID)
	return &Failure{Kind: NotAuthorized, Message: notAuthorizedMessage}
}

// requireAdmin is the branch of authorize used for rows without an owner.
func (r *Resolver) requireAdmin(ctx context.Context, ident *model.Identity) *Failure {
	if f := requireIdentity(ident); f != nil {
		return f
	}
	profile, err := r.Store.GetProfile(ctx, ident.Id)
	if err != nil && !store.IsNotFound(err) {
		return storeFailure(err, "")
	}
	if !profile.IsAdmin() {
		Logger.Log.Infof("user %s denied on admin operation", ident.Id)
		return &Failure{Kind: NotAuthorized, Message: adminOnlyMessage}
	}
	return nil
}

// IsAdmin reports whether ident is a signed in admin.
func (r *Resolver) IsAdmin(ctx context.Context, ident *model.Identity) bool {
	return r.requireAdmin(ctx, ident) == nil
}
