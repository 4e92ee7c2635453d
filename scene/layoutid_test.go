package scene

import (
	"testing"

	"github.com/phanxgames/inkwell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutIDSpringsBetweenSlots(t *testing.T) {
	l, err := NewLayoutID(DefaultLayoutIDConfig())
	require.NoError(t, err)
	rt := newRuntime()
	require.NoError(t, l.Mount(rt))
	l.Layout(900, 600)
	rt.Update(frame60)

	assert.Equal(t, inkwell.Bounds{Left: 280, Top: 280, Width: 40, Height: 40}, l.Box())

	l.Toggle()
	assert.Equal(t, 1, l.Active())
	rt.Update(frame60)
	x := l.Box().Left
	assert.True(t, x > 280 && x < 580, "box moving, x = %f", x)

	run(rt, 120)
	assert.Equal(t, inkwell.Bounds{Left: 580, Top: 280, Width: 40, Height: 40}, l.Box())

	l.Toggle()
	assert.Equal(t, 0, l.Active())
}

func TestLayoutIDFollowsResizedSlot(t *testing.T) {
	l, err := NewLayoutID(DefaultLayoutIDConfig())
	require.NoError(t, err)
	rt := newRuntime()
	require.NoError(t, l.Mount(rt))
	l.Layout(900, 600)
	rt.Update(frame60)

	l.Layout(1200, 600)
	rt.Update(frame60)
	assert.Equal(t, 380.0, l.Box().Left, "a moved slot carries its box without animating")
}

func TestLayoutIDSetSizeRelayouts(t *testing.T) {
	sc, err := New("layout-id", nil)
	require.NoError(t, err)
	l := sc.(*LayoutID)
	rt := newRuntime()
	require.NoError(t, l.Mount(rt))
	l.Layout(900, 600)
	rt.Update(frame60)

	got, err := l.Set("size", 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got)
	rt.Update(frame60)
	assert.Equal(t, inkwell.Bounds{Left: 270, Top: 270, Width: 60, Height: 60}, l.Box())
}

func TestLayoutIDSetRejectsInvalidConfig(t *testing.T) {
	tn, err := Defaults("layout-id")
	require.NoError(t, err)
	for _, name := range []string{"visualDuration", "size"} {
		x := tn[name]
		x.Min = 0
		tn[name] = x
	}
	l, err := NewLayoutIDFromTunables(tn)
	require.NoError(t, err)

	for _, name := range []string{"visualDuration", "size"} {
		_, err = l.Set(name, 0)
		assert.ErrorIs(t, err, inkwell.ErrConfig, name)
	}
	assert.Equal(t, DefaultLayoutIDConfig().Spring, l.cfg.Spring)
	assert.Equal(t, 40.0, l.cfg.Size)
	assert.Equal(t, 40.0, l.Tunables()["size"].Value)
}

func TestLayoutIDConfigErrors(t *testing.T) {
	cfg := DefaultLayoutIDConfig()
	cfg.Slots = 1
	_, err := NewLayoutID(cfg)
	assert.ErrorIs(t, err, inkwell.ErrConfig)

	cfg = DefaultLayoutIDConfig()
	cfg.Size = 0
	_, err = NewLayoutID(cfg)
	assert.ErrorIs(t, err, inkwell.ErrConfig)
}
