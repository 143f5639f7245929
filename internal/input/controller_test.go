package input

import "testing"

func TestControllerStandardReadSequence(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, true, false, false, false, false, true}) // A, Select, Right

	c.Write(true)
	c.Write(false)

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestControllerExtendedReadsReturnOne(t *testing.T) {
	c := New()
	c.Write(true)
	c.Write(false)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if got := c.Read(); got != 1 {
		t.Fatalf("9th read = %d, want 1 (open bus)", got)
	}
}

func TestControllerStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(true)
	if got := c.Read(); got != 1 {
		t.Fatalf("strobe-high read = %d, want 1", got)
	}
	c.SetButton(ButtonA, false)
	if got := c.Read(); got != 0 {
		t.Fatalf("strobe-high read after release = %d, want 0 (live poll)", got)
	}
}

func TestControllerPollButtonsOverridesLocalState(t *testing.T) {
	c := New()
	c.PollButtons = func() uint8 { return uint8(ButtonB) }
	c.SetButton(ButtonA, true) // should be ignored while PollButtons is set

	c.Write(true)
	c.Write(false)
	if got := c.Read(); got != 0 {
		t.Fatalf("bit 0 (A) = %d, want 0 (poll reports only B)", got)
	}
	if got := c.Read(); got != 1 {
		t.Fatalf("bit 1 (B) = %d, want 1", got)
	}
}

func TestZapperReadsLightAndTrigger(t *testing.T) {
	z := NewZapper()
	light, trigger := false, false
	z.PollLight = func() bool { return light }
	z.PollTrigger = func() bool { return trigger }

	if got := z.Read(); got != 0x10 {
		t.Fatalf("no light/no trigger = %#x, want 0x10", got)
	}
	light = true
	if got := z.Read(); got&0x10 != 0 {
		t.Fatalf("light sensed, bit 4 should clear, got %#x", got)
	}
	light, trigger = false, true
	if got := z.Read(); got&0x08 == 0 {
		t.Fatalf("trigger held, bit 3 should be set, got %#x", got)
	}
}

func TestInputStateRoutesStrobeToBothPorts(t *testing.T) {
	is := NewInputState()
	is.SetButtons1([8]bool{true})
	is.SetButtons2([8]bool{false, true})

	is.Write(0x4016, 1)
	is.Write(0x4016, 0)

	if got := is.Read(0x4016) & 1; got != 1 {
		t.Fatalf("controller 1 bit 0 = %d, want 1", got)
	}
	if got := is.Read(0x4017) & 1; got != 0 {
		t.Fatalf("controller 2 bit 0 = %d, want 0", got)
	}
}

func TestInputStatePort2AcceptsZapper(t *testing.T) {
	is := NewInputState()
	z := NewZapper()
	z.PollTrigger = func() bool { return true }
	is.Port2 = z

	if got := is.Read(0x4017); got&0x08 == 0 {
		t.Fatalf("expected Zapper trigger bit through port 2, got %#x", got)
	}
}
