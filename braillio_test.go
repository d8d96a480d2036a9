package braillio

import (
	"errors"
	"testing"
	"time"

	"github.com/hnimtadd/braillio/braille/control"
	"github.com/hnimtadd/braillio/braille/key"
	"github.com/hnimtadd/braillio/device"
	"github.com/hnimtadd/braillio/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	setupErr error
	options  string
	writes   int
}

func (d *fakeDevice) Setup(options string) error {
	d.options = options
	return d.setupErr
}

func (d *fakeDevice) Write([]byte) { d.writes++ }

type stubTerminal struct {
	id         int
	cols, rows int
}

func (s *stubTerminal) ID() int            { return s.id }
func (s *stubTerminal) Size() (int, int)   { return s.cols, s.rows }
func (s *stubTerminal) Cursor() (int, int) { return 0, 0 }
func (s *stubTerminal) CursorMoved()       {}
func (s *stubTerminal) Refresh()           {}

type recordBeeper struct {
	beeps []int
}

func (b *recordBeeper) Beep(freq int, _ time.Duration) {
	b.beeps = append(b.beeps, freq)
}

func newTestBinder(opts *Options) (*Binder, *notify.Keyboard, *notify.Terminals) {
	kb := &notify.Keyboard{}
	vt := &notify.Terminals{}
	o := Options{}
	if opts != nil {
		o = *opts
	}
	o.Keyboard = kb
	o.Terminal = vt
	return NewBinder(o), kb, vt
}

func TestRegisterAppliesDefaultOptions(t *testing.T) {
	b, _, _ := newTestBinder(nil)
	dev := &fakeDevice{}

	require.NoError(t, b.Register(dev, 0, "", ""))
	assert.Equal(t, device.DefaultOptions, dev.options)
	assert.True(t, b.Bound())
}

func TestRegisterPassesExplicitOptions(t *testing.T) {
	b, _, _ := newTestBinder(nil)
	dev := &fakeDevice{}

	require.NoError(t, b.Register(dev, 2, "9600n8", ""))
	assert.Equal(t, "9600n8", dev.options)
}

func TestRegisterExclusive(t *testing.T) {
	b, _, _ := newTestBinder(nil)
	first := &fakeDevice{}
	second := &fakeDevice{}

	require.NoError(t, b.Register(first, 0, "", ""))
	err := b.Register(second, 1, "", "")
	assert.ErrorIs(t, err, ErrAlreadyBound)

	// The first binding survives the failed attempt.
	assert.ErrorIs(t, b.Unregister(second), ErrNotBound)
	assert.NoError(t, b.Unregister(first))
}

func TestRegisterSetupFailure(t *testing.T) {
	b, kb, _ := newTestBinder(nil)
	setupErr := errors.New("port rejected configuration")
	dev := &fakeDevice{setupErr: setupErr}

	err := b.Register(dev, 0, "", "")
	assert.ErrorIs(t, err, setupErr)
	assert.False(t, b.Bound(), "setup failure must leave nothing bound")

	// No handler was attached: events are not consumed.
	term := &stubTerminal{id: 1, cols: 80, rows: 25}
	assert.False(t, kb.Key(notify.KeyEvent{Key: key.Insert, Down: true, Terminal: term}))
}

func TestUnregisterWrongDevice(t *testing.T) {
	b, _, _ := newTestBinder(nil)
	dev := &fakeDevice{}
	other := &fakeDevice{}

	assert.ErrorIs(t, b.Unregister(dev), ErrNotBound, "nothing bound yet")

	require.NoError(t, b.Register(dev, 0, "", ""))
	assert.ErrorIs(t, b.Unregister(other), ErrNotBound)
	assert.True(t, b.Bound())
	assert.NoError(t, b.Unregister(dev))
	assert.False(t, b.Bound())
}

func TestEventsFlowWhileBound(t *testing.T) {
	b, kb, vt := newTestBinder(nil)
	dev := &fakeDevice{}
	term := &stubTerminal{id: 1, cols: 80, rows: 25}
	require.NoError(t, b.Register(dev, 0, "", ""))

	vt.Dispatch(notify.TerminalEvent{
		Kind:       notify.TerminalWrite,
		Char:       'A',
		Terminal:   term,
		Foreground: true,
	})
	assert.Equal(t, 1, dev.writes, "follow mode mirrors the write")

	consumed := kb.Key(notify.KeyEvent{Key: key.Insert, Down: true, Terminal: term})
	assert.True(t, consumed)
	assert.Equal(t, control.Browsing, b.Controller().Mode())

	require.NoError(t, b.Unregister(dev))
	assert.Nil(t, b.Controller())

	// Stale events after unbind are not consumed and write nothing.
	writes := dev.writes
	assert.False(t, kb.Key(notify.KeyEvent{Key: key.Insert, Down: true, Terminal: term}))
	vt.Dispatch(notify.TerminalEvent{
		Kind:       notify.TerminalWrite,
		Char:       'B',
		Terminal:   term,
		Foreground: true,
	})
	assert.Equal(t, writes, dev.writes)
}

func TestRebindAfterUnregister(t *testing.T) {
	b, _, _ := newTestBinder(nil)
	first := &fakeDevice{}
	second := &fakeDevice{}

	require.NoError(t, b.Register(first, 0, "", ""))
	require.NoError(t, b.Unregister(first))
	require.NoError(t, b.Register(second, 1, "", ""))
	assert.True(t, b.Bound())
}

func TestSoundFeatureOption(t *testing.T) {
	beeper := &recordBeeper{}
	b, kb, _ := newTestBinder(&Options{Beeper: beeper})
	dev := &fakeDevice{}
	require.NoError(t, b.Register(dev, 0, "", "sound"))

	kb.Lock(notify.LockEvent{Lock: key.LockCaps, On: true})
	assert.Equal(t, []int{control.BeepHigh}, beeper.beeps)
}

func TestSoundDefaultOff(t *testing.T) {
	beeper := &recordBeeper{}
	b, kb, _ := newTestBinder(&Options{Beeper: beeper})
	dev := &fakeDevice{}
	require.NoError(t, b.Register(dev, 0, "", ""))

	kb.Lock(notify.LockEvent{Lock: key.LockCaps, On: true})
	assert.Empty(t, beeper.beeps, "cues are off unless enabled")
}
