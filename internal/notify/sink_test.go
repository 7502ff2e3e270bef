package notify

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/llehouerou/shloka/internal/notice"
)

type fakeNotifier struct {
	sent []Notification
	err  error
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	return uint32(len(f.sent)), nil
}

func (f *fakeNotifier) Close(uint32) error { return nil }

func TestSink_ForwardsSessionEndingNotices(t *testing.T) {
	fake := &fakeNotifier{}
	s := NewSink(fake, 3000, zerolog.Nop())

	s.Notify(notice.Infof("Speed 1.5x"))
	s.Notify(notice.Notice{Level: notice.Warn, Kind: notice.KindInvalidRange, Text: "Invalid range."})
	if len(fake.sent) != 0 {
		t.Fatalf("sent %d notifications for ordinary notices, want 0", len(fake.sent))
	}

	s.Notify(notice.Notice{Level: notice.Info, Kind: notice.KindFinished, Text: "Playlist finished."})
	s.Notify(notice.Notice{Level: notice.Error, Kind: notice.KindTooManyFailures, Text: "Too many errors."})

	if len(fake.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(fake.sent))
	}
	first, second := fake.sent[0], fake.sent[1]
	if first.Body != "Playlist finished." || first.Urgency != UrgencyLow || first.ReplacesID != 0 {
		t.Errorf("first notification = %+v", first)
	}
	if second.Urgency != UrgencyCritical {
		t.Errorf("second urgency = %d, want critical", second.Urgency)
	}
	if second.ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", second.ReplacesID)
	}
	if second.Timeout != 3000 {
		t.Errorf("timeout = %d, want 3000", second.Timeout)
	}
}

func TestSink_IgnoresNotifierErrors(t *testing.T) {
	fake := &fakeNotifier{err: errors.New("no server")}
	s := NewSink(fake, -1, zerolog.Nop())
	s.Notify(notice.Notice{Kind: notice.KindFinished, Text: "Playlist finished."})
	if s.lastID != 0 {
		t.Errorf("lastID = %d after failure, want 0", s.lastID)
	}
}
