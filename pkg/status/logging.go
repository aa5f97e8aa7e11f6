package status

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints the end of run summary for people
type UserLogger struct {
	log       zerolog.Logger // for debug/error logging
	out       io.Writer
	formatter OutcomeFormatter
}

// 🎯 NewUserLogger creates a user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	if out == nil {
		out = io.Discard
	}
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		out:       out,
		formatter: NewDefaultFormatter(),
	}
}

// 📝 LogOutcome prints a single document outcome
func (u *UserLogger) LogOutcome(o Outcome) {
	printer := pterm.Info.WithWriter(u.out)
	if o.Status.Failed() {
		printer = pterm.Error.WithWriter(u.out)
	}
	printer.Println(u.formatter.FormatOutcome(o))
}

// 📊 LogSummary prints failed and changed documents followed by the tally
func (u *UserLogger) LogSummary(report *Report) {
	outcomes := report.Outcomes()

	changed, failed := 0, 0
	for _, o := range outcomes {
		switch {
		case o.Status.Failed():
			failed++
			u.LogOutcome(o)
		case o.Status == StatusModified || o.Status == StatusWritten:
			changed++
			u.LogOutcome(o)
		}
	}

	totals := u.formatter.FormatTotals(len(outcomes), changed, failed)
	if failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(u.out).Println(totals)
		u.log.Warn().Int("documents", len(outcomes)).Int("changed", changed).Int("failed", failed).Msg("run finished with failures")
		return
	}

	pterm.Success.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(u.out).Println(totals)
	u.log.Info().Int("documents", len(outcomes)).Int("changed", changed).Msg("run finished")
}
