package resolver

import (
	"context"
	"math"
	"time"

	"github.com/Luismorlan/logosarena/model"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/pkg/errors"
)

// CheckCooldown returns how many whole seconds userID still has to wait
// before writing to table again, 0 when the write is allowed.
//
// The check reads the latest created_at and decides without locking, two
// concurrent requests can both pass it. It is a soft throttle only.
func (r *Resolver) CheckCooldown(ctx context.Context, table model.Table, userID string, window time.Duration) (int, error) {
	if !model.IsCooldownTable(table) {
		return 0, errors.Errorf("table %s is not cooldown checked", table)
	}
	last, ok, err := r.Store.LatestCreatedAt(ctx, table, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return remainingSeconds(r.now().Sub(last), window), nil
}

func remainingSeconds(elapsed time.Duration, window time.Duration) int {
	if elapsed >= window {
		return 0
	}
	return int(math.Ceil((window - elapsed).Seconds()))
}

// throttle runs the cooldown check of table for ident and converts the result
// into a RateLimited failure.
func (r *Resolver) throttle(ctx context.Context, table model.Table, ident *model.Identity, what string) *Failure {
	remaining, err := r.CheckCooldown(ctx, table, ident.Id, r.Setting.CooldownWindow(table))
	if err != nil {
		return storeFailure(err, "")
	}
	if remaining > 0 {
		Logger.Log.Infof("user %s throttled on %s for %ds", ident.Id, table, remaining)
		return failf(RateLimited, "please wait %d seconds before %s again", remaining, what)
	}
	return nil
}
