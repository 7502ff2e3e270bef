package notice

import "testing"

func TestHub_FansOut(t *testing.T) {
	h := NewHub()
	var a, b Recorder
	h.Subscribe(&a)
	unsubscribe := h.Subscribe(&b)

	h.Notify(Infof("one"))
	unsubscribe()
	h.Notify(Notice{Level: Warn, Kind: KindTrackLoad, Text: "two"})

	if got := len(a.All()); got != 2 {
		t.Errorf("first sink got %d notices, want 2", got)
	}
	if got := len(b.All()); got != 1 {
		t.Errorf("unsubscribed sink got %d notices, want 1", got)
	}
	if !a.Has(KindTrackLoad) {
		t.Error("expected KindTrackLoad notice")
	}
	if last, _ := a.Last(); last.Text != "two" {
		t.Errorf("last = %q, want two", last.Text)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		l    Level
		want string
	}{
		{Info, "info"},
		{Warn, "warn"},
		{Error, "error"},
		{Level(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.l.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.l, got, tt.want)
		}
	}
}
