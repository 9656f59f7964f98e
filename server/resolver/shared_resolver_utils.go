package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/utils"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

func toPublicProfile(p *model.Profile) (*model.PublicProfile, error) {
	if p == nil {
		return nil, nil
	}
	public := &model.PublicProfile{}
	if err := copier.Copy(public, p); err != nil {
		return nil, errors.Wrap(err, "copy public profile")
	}
	return public, nil
}

// loadAuthors returns the public profiles of userIDs keyed by id. Missing
// profiles are simply absent.
func (r *Resolver) loadAuthors(ctx context.Context, userIDs []string) (map[string]*model.PublicProfile, error) {
	profiles, err := r.Store.GetProfiles(ctx, utils.UniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}
	res := make(map[string]*model.PublicProfile, len(profiles))
	for id, p := range profiles {
		public, err := toPublicProfile(p)
		if err != nil {
			return nil, err
		}
		res[id] = public
	}
	return res, nil
}

// likedBy returns which of targetIDs the viewer liked. Anonymous viewers
// liked nothing.
func (r *Resolver) likedBy(ctx context.Context, kind model.LikeKind, viewer string, targetIDs []string) (map[string]bool, error) {
	if viewer == "" || len(targetIDs) == 0 {
		return map[string]bool{}, nil
	}
	return r.Store.LikedTargetIDs(ctx, kind, viewer, targetIDs)
}

// groupBySide keeps the order of sides, then appends groups for sides the
// mode does not know, which happens after a label debate renames an option.
func groupBySide(sides []model.Side, arguments []*model.ArgumentView) []*model.SideGroup {
	groups := make([]*model.SideGroup, 0, len(sides))
	index := map[model.Side]*model.SideGroup{}
	for _, side := range sides {
		g := &model.SideGroup{Side: side, Arguments: []*model.ArgumentView{}}
		groups = append(groups, g)
		index[side] = g
	}
	for _, a := range arguments {
		g, ok := index[a.Side]
		if !ok {
			g = &model.SideGroup{Side: a.Side, Arguments: []*model.ArgumentView{}}
			groups = append(groups, g)
			index[a.Side] = g
		}
		g.Arguments = append(g.Arguments, a)
	}
	return groups
}
