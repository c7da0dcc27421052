package media

import "testing"

func TestPropertiesDuration(t *testing.T) {
	props := Properties{Width: 1920, Height: 1080, FrameRate: 30, FrameCount: 90}
	if got := props.Duration(); got != 3.0 {
		t.Errorf("Duration() = %f, want 3.0", got)
	}

	// Нулевая частота кадров не должна приводить к делению на ноль
	zero := Properties{Width: 1920, Height: 1080, FrameCount: 90}
	if got := zero.Duration(); got != 0 {
		t.Errorf("Duration() with zero rate = %f, want 0", got)
	}
}

func TestPropertiesFrameBytes(t *testing.T) {
	props := Properties{Width: 64, Height: 48}
	if got := props.FrameBytes(); got != 64*48*3 {
		t.Errorf("FrameBytes() = %d, want %d", got, 64*48*3)
	}
}

func TestFrameLifecycle(t *testing.T) {
	f := NewFrame(16, 9)
	if len(f.Pix) != 16*9*3 {
		t.Fatalf("frame buffer %d bytes, want %d", len(f.Pix), 16*9*3)
	}

	f.Release()
	if f.Pix != nil {
		t.Error("Release must detach the buffer")
	}

	// Повторный Release безопасен
	f.Release()
	var nilFrame *Frame
	nilFrame.Release()
}
