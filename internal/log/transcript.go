package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// TranscriptLogger appends every event as one JSON line to a zstd-compressed
// file. A transcript plus the session seed is enough to audit a game.
type TranscriptLogger struct {
	MemoryLogger

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	err error
}

// NewTranscriptLogger creates (or truncates) path.
func NewTranscriptLogger(path string) (*TranscriptLogger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &TranscriptLogger{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (l *TranscriptLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.MemoryLogger.Log(event)
	if l.err != nil || l.w == nil {
		return
	}
	b, err := json.Marshal(l.LastEvent())
	if err != nil {
		l.err = err
		return
	}
	if _, err := l.w.Write(b); err != nil {
		l.err = err
		return
	}
	l.err = l.w.WriteByte('\n')
}

// Err returns the first write error, if any.
func (l *TranscriptLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes and closes the transcript.
func (l *TranscriptLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return l.err
	}
	first := l.err
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}
	keep(l.w.Flush())
	keep(l.enc.Close())
	keep(l.f.Close())
	l.w, l.enc, l.f = nil, nil, nil
	return first
}

// ReadTranscript decodes every event from a transcript stream.
func ReadTranscript(r io.Reader) ([]GameEvent, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	var events []GameEvent
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e GameEvent
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("transcript line %d: %w", line, err)
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// ReadTranscriptFile opens path and decodes it with ReadTranscript.
func ReadTranscriptFile(path string) ([]GameEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTranscript(f)
}
