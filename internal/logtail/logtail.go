package logtail

import (
	"bytes"
	"fmt"
	"os"
)

const (
	smallChunk  = 64
	mediumChunk = 512
	largeChunk  = 4096
)

// Tail returns the last lines newline-terminated records of the file at path,
// with surrounding whitespace trimmed. The file is read backward from its end
// so the cost tracks the size of the window, not the size of the file.
func Tail(path string, lines int) ([]byte, error) {
	if lines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	// Appends after this point are not part of the window.
	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, size-1); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	remaining := lines
	if last[0] != '\n' {
		remaining--
	}

	chunk := int64(chunkSize(lines))
	var chunks [][]byte
	total := 0
	offset := size
	for offset > 0 && remaining >= 0 {
		step := min(offset, chunk)
		offset -= step
		buf := make([]byte, step)
		if _, err := file.ReadAt(buf, offset); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		chunks = append(chunks, buf)
		total += len(buf)
		remaining -= bytes.Count(buf, []byte{'\n'})
	}

	out := make([]byte, 0, total)
	for i := len(chunks) - 1; i >= 0; i-- {
		out = append(out, chunks[i]...)
	}

	for ; remaining < 0; remaining++ {
		idx := bytes.IndexByte(out, '\n')
		if idx < 0 {
			break
		}
		out = out[idx+1:]
	}
	return bytes.TrimSpace(out), nil
}

// chunkSize scales the backward read step with the number of requested lines.
func chunkSize(lines int) int {
	switch {
	case lines < 2:
		return smallChunk
	case lines < 10:
		return mediumChunk
	default:
		return largeChunk
	}
}
