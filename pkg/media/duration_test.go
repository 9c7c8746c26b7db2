package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func box(name string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload))
	binary.BigEndian.PutUint32(out[:4], uint32(8+len(payload)))
	copy(out[4:8], name)
	return append(out, payload...)
}

func mvhdV0(timescale, units uint32) []byte {
	payload := make([]byte, 4+16+80)
	binary.BigEndian.PutUint32(payload[12:16], timescale)
	binary.BigEndian.PutUint32(payload[16:20], units)
	return payload
}

func mvhdV1(timescale uint32, units uint64) []byte {
	payload := make([]byte, 4+28+80)
	payload[0] = 1
	binary.BigEndian.PutUint32(payload[20:24], timescale)
	binary.BigEndian.PutUint64(payload[24:32], units)
	return payload
}

func TestMP4Duration(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want time.Duration
	}{
		{
			name: "version 0",
			data: append(box("ftyp", []byte("isom")), box("moov", box("mvhd", mvhdV0(1000, 45000)))...),
			want: 45 * time.Second,
		},
		{
			name: "version 1",
			data: append(box("ftyp", []byte("isom")), box("moov", box("mvhd", mvhdV1(600, 54000)))...),
			want: 90 * time.Second,
		},
		{
			name: "skips other boxes",
			data: append(box("free", nil), box("moov", append(box("udta", []byte("x")), box("mvhd", mvhdV0(10, 25))...))...),
			want: 2500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MP4Duration(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMP4DurationErrors(t *testing.T) {
	if _, err := MP4Duration(bytes.NewReader(box("ftyp", []byte("isom")))); !errors.Is(err, ErrNoDuration) {
		t.Fatalf("expected ErrNoDuration without moov, got %v", err)
	}
	if _, err := MP4Duration(bytes.NewReader(box("moov", box("mvhd", mvhdV0(0, 10))))); !errors.Is(err, ErrNoDuration) {
		t.Fatalf("expected ErrNoDuration for zero timescale, got %v", err)
	}

	truncated := box("moov", nil)
	binary.BigEndian.PutUint32(truncated[:4], 64)
	if _, err := MP4Duration(bytes.NewReader(truncated)); err == nil {
		t.Fatalf("expected error for a box exceeding the file")
	}
}
