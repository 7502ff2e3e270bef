package player

import (
	"errors"
	"testing"
)

func TestMock_LoadPlayStop(t *testing.T) {
	m := NewMock()
	if err := m.Play(); !errors.Is(err, ErrNoSource) {
		t.Fatalf("Play without source = %v, want ErrNoSource", err)
	}

	m.Load("a.mp3")
	if err := m.Play(); err != nil {
		t.Fatal(err)
	}
	if m.State() != Playing {
		t.Errorf("state = %v, want Playing", m.State())
	}
	m.Pause()
	if m.State() != Paused {
		t.Errorf("state = %v, want Paused", m.State())
	}
	m.Stop()
	if m.State() != Stopped || m.Source() != "" {
		t.Errorf("after Stop: state=%v source=%q", m.State(), m.Source())
	}
}

func TestMock_Callbacks(t *testing.T) {
	m := NewMock()
	var got []string
	m.OnPlaying(func() { got = append(got, "playing") })
	m.OnEnded(func() { got = append(got, "ended") })
	m.OnError(func(error) { got = append(got, "error") })

	m.EmitPlaying()
	m.EmitEnded()
	m.EmitError(ErrLoad)

	if len(got) != 3 || got[0] != "playing" || got[1] != "ended" || got[2] != "error" {
		t.Errorf("callbacks = %v", got)
	}
}
