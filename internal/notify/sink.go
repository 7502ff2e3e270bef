package notify

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/notice"
)

// desktopKinds are the notices worth a desktop notification: they end a
// session while the terminal may be in the background.
var desktopKinds = map[notice.Kind]Urgency{
	notice.KindFinished:        UrgencyLow,
	notice.KindTooManyFailures: UrgencyCritical,
}

// Sink forwards session-ending notices to n. Each new notification replaces
// the previous one.
type Sink struct {
	notifier Notifier
	log      zerolog.Logger
	lastID   uint32
	timeout  int32
}

// NewSink wraps n. Timeout is in milliseconds; -1 leaves it to the server.
func NewSink(n Notifier, timeout int32, log zerolog.Logger) *Sink {
	return &Sink{notifier: n, timeout: timeout, log: log}
}

// Notify implements notice.Sink.
func (s *Sink) Notify(n notice.Notice) {
	urgency, ok := desktopKinds[n.Kind]
	if !ok {
		return
	}
	id, err := s.notifier.Notify(Notification{
		Title:      "Shloka",
		Body:       n.Text,
		Icon:       "audio-x-generic",
		Timeout:    s.timeout,
		ReplacesID: s.lastID,
		Urgency:    urgency,
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("desktop notification")
		return
	}
	s.lastID = id
}

var _ notice.Sink = (*Sink)(nil)
