package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNoDuration is returned when a container carries no movie header.
var ErrNoDuration = errors.New("media: duration not found")

// MP4Duration reads the movie duration from the mvhd box of an ISO base
// media file (MP4, MOV, M4V). Other boxes are skipped without being read.
func MP4Duration(r io.ReadSeeker) (time.Duration, error) {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	moovEnd, err := seekBox(r, end, "moov")
	if err != nil {
		return 0, err
	}
	mvhdEnd, err := seekBox(r, moovEnd, "mvhd")
	if err != nil {
		return 0, err
	}
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	return readMovieHeader(r, mvhdEnd-pos)
}

// seekBox advances r to the payload of the first box of type name before
// limit and returns the offset at which that box ends.
func seekBox(r io.ReadSeeker, limit int64, name string) (int64, error) {
	for {
		start, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		if start >= limit {
			return 0, fmt.Errorf("%w: no %s box", ErrNoDuration, name)
		}

		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return 0, err
		}
		size := int64(binary.BigEndian.Uint32(header[:4]))
		headerLen := int64(8)
		switch size {
		case 0:
			size = limit - start
		case 1:
			var large [8]byte
			if _, err := io.ReadFull(r, large[:]); err != nil {
				return 0, err
			}
			size = int64(binary.BigEndian.Uint64(large[:]))
			headerLen = 16
		}
		if size < headerLen || start+size > limit {
			return 0, fmt.Errorf("media: malformed %q box at offset %d", header[4:8], start)
		}

		if string(header[4:8]) == name {
			return start + size, nil
		}
		if _, err := r.Seek(start+size, io.SeekStart); err != nil {
			return 0, err
		}
	}
}

func readMovieHeader(r io.Reader, payload int64) (time.Duration, error) {
	var version [4]byte
	if payload < 4 {
		return 0, fmt.Errorf("%w: mvhd too small", ErrNoDuration)
	}
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return 0, err
	}

	var timescale uint32
	var units uint64
	switch version[0] {
	case 0:
		var body [16]byte
		if payload < 4+16 {
			return 0, fmt.Errorf("%w: mvhd too small", ErrNoDuration)
		}
		if _, err := io.ReadFull(r, body[:]); err != nil {
			return 0, err
		}
		timescale = binary.BigEndian.Uint32(body[8:12])
		units = uint64(binary.BigEndian.Uint32(body[12:16]))
	case 1:
		var body [28]byte
		if payload < 4+28 {
			return 0, fmt.Errorf("%w: mvhd too small", ErrNoDuration)
		}
		if _, err := io.ReadFull(r, body[:]); err != nil {
			return 0, err
		}
		timescale = binary.BigEndian.Uint32(body[16:20])
		units = binary.BigEndian.Uint64(body[20:28])
	default:
		return 0, fmt.Errorf("media: unsupported mvhd version %d", version[0])
	}

	if timescale == 0 {
		return 0, fmt.Errorf("%w: zero timescale", ErrNoDuration)
	}
	seconds := float64(units) / float64(timescale)
	return time.Duration(seconds * float64(time.Second)), nil
}
