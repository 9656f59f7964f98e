package resolver

import (
	"context"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/logosarena/app_setting"
	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/store"
	"github.com/Luismorlan/logosarena/utils"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/ThreeDotsLabs/watermill/message"
)

// It serves as dependency injection for your app, add any dependencies you require here.
//
// Every exported method takes the caller identity explicitly, nil meaning an
// anonymous caller, and returns either a nil error or a *Failure.
type Resolver struct {
	Store      store.Store
	Revalidate revalidate.Signal
	// Publisher receives domain events such as filed reports.
	Publisher message.Publisher
	Statsd    statsd.ClientInterface
	Setting   app_setting.ArenaAppSetting
	Now       func() time.Time
}

func New(st store.Store, signal revalidate.Signal, publisher message.Publisher, client statsd.ClientInterface, setting app_setting.ArenaAppSetting) *Resolver {
	return &Resolver{
		Store:      st,
		Revalidate: signal,
		Publisher:  publisher,
		Statsd:     client,
		Setting:    setting,
		Now:        time.Now,
	}
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Resolver) sideMode() model.SideMode {
	return r.Setting.SideMode()
}

// track is deferred by every mutation. It turns a panic into a StoreError
// failure and counts the outcome.
func (r *Resolver) track(operation string, err *error) {
	if p := recover(); p != nil {
		Logger.Log.Errorf("panic in %s: %v", operation, p)
		*err = &Failure{Kind: StoreError, Message: UnexpectedErrorMessage}
	}

	outcome := "success"
	if *err != nil {
		outcome = string(AsFailure(*err).Kind)
	}
	if r.Statsd != nil {
		r.Statsd.Incr(utils.MetricMutation, []string{"operation:" + operation, "outcome:" + outcome}, 1)
	}
}

// guard is deferred by read handlers, which are not counted.
func guard(operation string, err *error) {
	if p := recover(); p != nil {
		Logger.Log.Errorf("panic in %s: %v", operation, p)
		*err = &Failure{Kind: StoreError, Message: UnexpectedErrorMessage}
	}
}

func (r *Resolver) revalidate(ctx context.Context, paths ...string) {
	if r.Revalidate != nil {
		r.Revalidate.Revalidate(ctx, paths...)
	}
}

func requireIdentity(ident *model.Identity) *Failure {
	if ident == nil || ident.Id == "" {
		return &Failure{Kind: AuthRequired, Message: LoginRequiredMessage}
	}
	return nil
}

// viewerID is the id used for is_liked lookups, empty for anonymous viewers.
func viewerID(ident *model.Identity) string {
	if ident == nil {
		return ""
	}
	return ident.Id
}
