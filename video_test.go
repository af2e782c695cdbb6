package main

import (
	"testing"

	"github.com/zergon321/reisen"
)

func TestVideoSourceSkipsEmptyRead(t *testing.T) {
	reads := 0
	src := &videoSource{packets: func() (*reisen.Packet, bool, error) {
		reads++
		if reads < 3 {
			// libav reported EAGAIN
			return nil, true, nil
		}
		return nil, false, nil
	}}
	frame, ok, err := src.Next()
	if frame != nil || ok || err != nil {
		t.Fatalf("expected end of stream, got ok=%v err=%v", ok, err)
	}
	if reads != 3 {
		t.Fatalf("read %d packets, want 3", reads)
	}
	if _, ok, _ := src.Next(); ok {
		t.Fatalf("frame after end of stream")
	}
	if err := src.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
