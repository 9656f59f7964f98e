package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/engine"
	"github.com/Luismorlan/logosarena/model"
	Logger "github.com/Luismorlan/logosarena/utils/log"
)

// SubmitReport stores the report and publishes a report.filed event. The
// admin notification happens in the report notifier module, a failure to
// publish is logged and does not fail the report.
func (r *Resolver) SubmitReport(ctx context.Context, ident *model.Identity, input ReportInput) (report *model.Report, err error) {
	defer r.track("submit_report", &err)

	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	input, verr := ValidateReport(input)
	if verr != nil {
		return nil, invalid(verr)
	}

	report = &model.Report{
		ReporterID: ident.Id,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		Reason:     input.Reason,
	}
	if serr := r.Store.CreateReport(ctx, report); serr != nil {
		return nil, storeFailure(serr, "")
	}

	event := &model.ReportFiled{Report: *report, ReporterEmail: ident.Email}
	if profile, perr := r.Store.GetProfile(ctx, ident.Id); perr == nil && profile.Username != nil {
		event.ReporterName = *profile.Username
	}
	if r.Publisher != nil {
		if perr := engine.PublishReportFiled(r.Publisher, event); perr != nil {
			Logger.Log.Errorln("failed to publish report event: ", perr)
		}
	}
	return report, nil
}
