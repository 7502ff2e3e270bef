package confirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shloka/internal/ui/action"
	"github.com/llehouerou/shloka/internal/ui/testutil"
)

func newHarness(context any) (*Model, *testutil.PopupHarness) {
	m := New()
	m.Show("Delete playlist", `Delete "Morning"?`, context, 80, 24)
	return &m, testutil.NewPopupHarness(&m)
}

func result(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	msg := testutil.ExecuteCmd(h.LastCommand())
	am, ok := msg.(action.Msg)
	require.True(t, ok, "expected action.Msg, got %T", msg)
	assert.Equal(t, "confirm", am.Source)
	r, ok := am.Action.(Result)
	require.True(t, ok)
	return r
}

func TestConfirm_Keys(t *testing.T) {
	tests := []struct {
		name string
		send func(h *testutil.PopupHarness)
		want bool
	}{
		{"enter", func(h *testutil.PopupHarness) { h.SendEnter() }, true},
		{"y", func(h *testutil.PopupHarness) { h.SendKey("y") }, true},
		{"Y", func(h *testutil.PopupHarness) { h.SendKey("Y") }, true},
		{"esc", func(h *testutil.PopupHarness) { h.SendEscape() }, false},
		{"n", func(h *testutil.PopupHarness) { h.SendKey("n") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, h := newHarness("Morning")
			tt.send(h)

			r := result(t, h)
			assert.Equal(t, tt.want, r.Confirmed)
			assert.Equal(t, "Morning", r.Context)
			assert.False(t, m.Active())
		})
	}
}

func TestConfirm_IgnoresOtherKeys(t *testing.T) {
	m, h := newHarness(nil)
	h.SendKey("x")
	assert.Nil(t, h.LastCommand())
	assert.True(t, m.Active())
}

func TestConfirm_View(t *testing.T) {
	_, h := newHarness(nil)
	assert.Empty(t, h.AssertViewContains(`Delete "Morning"?`))
	assert.Empty(t, h.AssertViewContains("Delete playlist"))

	h.SendEscape()
	assert.Empty(t, h.View())
}
