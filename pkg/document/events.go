package document

import (
	"context"

	"github.com/rs/zerolog"
)

// 🏷️ EventKind classifies something that happened while processing a document
type EventKind int

const (
	EventApplied      EventKind = iota // Hint applied to its target line
	EventHintFormat                    // Hint line did not parse
	EventRegexCompile                  // Pattern or template did not compile
	EventHintAtEOF                     // Hint was the last line of the document
)

// String returns a string representation of EventKind
func (k EventKind) String() string {
	switch k {
	case EventApplied:
		return "applied"
	case EventHintFormat:
		return "hint_format"
	case EventRegexCompile:
		return "regex_compile"
	case EventHintAtEOF:
		return "hint_at_eof"
	default:
		return "unknown"
	}
}

// Level is the log level an event should be reported at
func (k EventKind) Level() zerolog.Level {
	switch k {
	case EventHintFormat, EventRegexCompile:
		return zerolog.ErrorLevel
	case EventHintAtEOF:
		return zerolog.WarnLevel
	default:
		return zerolog.DebugLevel
	}
}

// 📣 Event is a structured record produced by Process
type Event struct {
	Kind         EventKind
	Line         int    // 1-based number of the hint line
	Hint         string // Hint line without its terminator
	Replacements int    // Matches replaced, for EventApplied
	Err          error  // Cause, for failures
}

// Message is the human readable summary of the event
func (e Event) Message() string {
	switch e.Kind {
	case EventApplied:
		return "applied hint"
	case EventHintFormat:
		return "skipping hint due to error"
	case EventRegexCompile:
		return "skipping replacement due to invalid regex"
	case EventHintAtEOF:
		return "hint at EOF with no subsequent line to process"
	default:
		return "unknown event"
	}
}

// 📝 LogEvents writes events to the logger carried by ctx
func LogEvents(ctx context.Context, document string, events []Event) {
	logger := zerolog.Ctx(ctx)
	for _, ev := range events {
		entry := logger.WithLevel(ev.Kind.Level()).
			Str("document", document).
			Str("event", ev.Kind.String()).
			Int("line", ev.Line).
			Str("hint", ev.Hint)
		if ev.Kind == EventApplied {
			entry = entry.Int("replacements", ev.Replacements)
		}
		if ev.Err != nil {
			entry = entry.Err(ev.Err)
		}
		entry.Msg(ev.Message())
	}
}
