// Package snapshot reads and writes zstd-compressed farm exports.
//
// An export is a JSON header line followed by the farm state as JSON.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// Version is the export format written by Write
const Version = 1

// Header describes an export
type Header struct {
	Version    int       `json:"version"`
	FarmID     int       `json:"farmId"`
	ExportedAt time.Time `json:"exportedAt"`
}

// Write encodes state to w
func Write(w io.Writer, header Header, state *game.FarmState) error {
	if header.Version == 0 {
		header.Version = Version
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	bw := bufio.NewWriter(enc)
	if err := json.NewEncoder(bw).Encode(header); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := json.NewEncoder(bw).Encode(state); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decodes an export produced by Write
func Read(r io.Reader) (Header, *game.FarmState, error) {
	var header Header

	dec, err := zstd.NewReader(r)
	if err != nil {
		return header, nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	defer dec.Close()

	jd := json.NewDecoder(bufio.NewReader(dec))
	if err := jd.Decode(&header); err != nil {
		return header, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if header.Version != Version {
		return header, nil, fmt.Errorf("unsupported snapshot version %d", header.Version)
	}

	var state game.FarmState
	if err := jd.Decode(&state); err != nil {
		return header, nil, fmt.Errorf("failed to read state: %w", err)
	}
	state.Normalize()
	return header, &state, nil
}

// WriteFile writes an export to path
func WriteFile(path string, header Header, state *game.FarmState) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, header, state); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads an export from path
func ReadFile(path string) (Header, *game.FarmState, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Read(f)
}
