package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/store"
)

const (
	profileNotFoundMessage = "profile not found"
	usernameTakenMessage   = "this username is already taken"
)

// EnsureProfile creates the profile of a first time caller. Anonymous callers
// get AuthRequired.
func (r *Resolver) EnsureProfile(ctx context.Context, ident *model.Identity) (profile *model.Profile, err error) {
	defer guard("ensure_profile", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	profile, serr := r.Store.CreateProfileIfNotExists(ctx, ident.Id)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	return profile, nil
}

func (r *Resolver) Me(ctx context.Context, ident *model.Identity) (profile *model.Profile, err error) {
	defer guard("me", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	profile, serr := r.Store.GetProfile(ctx, ident.Id)
	if serr != nil {
		return nil, storeFailure(serr, profileNotFoundMessage)
	}
	return profile, nil
}

// usernameAvailable is a lookup then compare id check. The unique index on
// profiles.username still rejects the loser of a concurrent race.
func (r *Resolver) usernameAvailable(ctx context.Context, ident *model.Identity, username string) *Failure {
	holder, err := r.Store.GetProfileByUsername(ctx, username)
	if err != nil {
		if store.IsNotFound(err) {
			return nil
		}
		return storeFailure(err, "")
	}
	if holder.Id != ident.Id {
		return &Failure{Kind: ValidationFailed, Message: usernameTakenMessage}
	}
	return nil
}

func (r *Resolver) UpdateUsername(ctx context.Context, ident *model.Identity, username string) (profile *model.Profile, err error) {
	defer r.track("update_username", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	username, verr := ValidateUsername(username, MaxUsernameLength)
	if verr != nil {
		return nil, invalid(verr)
	}
	if f := r.usernameAvailable(ctx, ident, username); f != nil {
		return nil, f
	}
	if serr := r.Store.UpdateUsername(ctx, ident.Id, username); serr != nil {
		return nil, storeFailure(serr, profileNotFoundMessage)
	}
	profile, serr := r.Store.GetProfile(ctx, ident.Id)
	if serr != nil {
		return nil, storeFailure(serr, profileNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.PathRanking)
	return profile, nil
}

// SetupProfile stores the first login form. It may be submitted again to
// correct the values.
func (r *Resolver) SetupProfile(ctx context.Context, ident *model.Identity, input ProfileSetupInput) (profile *model.Profile, err error) {
	defer r.track("setup_profile", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	input, verr := ValidateProfileSetup(input)
	if verr != nil {
		return nil, invalid(verr)
	}
	if _, serr := r.Store.CreateProfileIfNotExists(ctx, ident.Id); serr != nil {
		return nil, storeFailure(serr, "")
	}
	if f := r.usernameAvailable(ctx, ident, input.Username); f != nil {
		return nil, f
	}
	if serr := r.Store.UpdateProfileSetup(ctx, ident.Id, input.Username, input.Gender, input.Age); serr != nil {
		return nil, storeFailure(serr, profileNotFoundMessage)
	}
	profile, serr := r.Store.GetProfile(ctx, ident.Id)
	if serr != nil {
		return nil, storeFailure(serr, profileNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathHome, revalidate.PathRanking)
	return profile, nil
}

func (r *Resolver) SetRole(ctx context.Context, ident *model.Identity, profileID string, role model.Role) (err error) {
	defer r.track("set_role", &err)

	if f := r.requireAdmin(ctx, ident); f != nil {
		return f
	}
	if !role.IsValid() {
		return failf(ValidationFailed, "unknown role: %s", role)
	}
	if serr := r.Store.UpdateRole(ctx, profileID, role); serr != nil {
		return storeFailure(serr, profileNotFoundMessage)
	}

	r.revalidate(ctx, revalidate.PathRanking)
	return nil
}
