package levelio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Header is the first line of a snapshot. It can be read without decoding
// the body.
type Header struct {
	Version    int    `json:"version"`
	Seed       int64  `json:"seed"`
	Size       string `json:"size"`
	Placements int    `json:"placements"`
}

func headerOf(doc *Document) Header {
	return Header{
		Version:    doc.Version,
		Seed:       doc.Seed,
		Size:       fmt.Sprintf("%dx%dx%d", doc.Size.Width, doc.Size.Depth, doc.Size.Floors),
		Placements: len(doc.Placements),
	}
}

// WriteSnapshot writes a zstd stream holding a JSON header line followed
// by the JSON document.
func WriteSnapshot(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := EncodeSnapshot(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeSnapshot writes the snapshot stream to w.
func EncodeSnapshot(w io.Writer, doc *Document) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(headerOf(doc))
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(doc); err != nil {
		enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (Header, *Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// DecodeSnapshot reads a snapshot stream. The header must agree with the
// document it precedes.
func DecodeSnapshot(r io.Reader) (Header, *Document, error) {
	var h Header
	dec, err := zstd.NewReader(r)
	if err != nil {
		return h, nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, nil, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, nil, fmt.Errorf("parse header: %w", err)
	}
	if h.Version != Version {
		return h, nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	var doc Document
	if err := json.NewDecoder(br).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return h, nil, fmt.Errorf("json decode: %w", err)
	}
	if headerOf(&doc) != h {
		return h, nil, fmt.Errorf("levelio: snapshot header %+v does not match body", h)
	}
	return h, &doc, nil
}
