// Package codec serializes exchange records with a deterministic,
// fixed-width layout so that buffers compared byte for byte are identical on
// every rank of the process group.
package codec

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/spacemeshos/go-scale"
)

var encoderPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(64)
		return b
	},
}

func getEncoderBuffer() *bytes.Buffer {
	return encoderPool.Get().(*bytes.Buffer)
}

func putEncoderBuffer(b *bytes.Buffer) {
	b.Reset()
	encoderPool.Put(b)
}

// Encode value to a byte buffer.
func Encode(value scale.Encodable) ([]byte, error) {
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	if _, err := value.EncodeScale(scale.NewEncoder(b)); err != nil {
		return nil, fmt.Errorf("encode scale: %w", err)
	}
	buf := make([]byte, len(b.Bytes()))
	copy(buf, b.Bytes())
	return buf, nil
}

// Decode value from a byte buffer.
func Decode(buf []byte, value scale.Decodable) error {
	if _, err := value.DecodeScale(scale.NewDecoder(bytes.NewReader(buf))); err != nil {
		return fmt.Errorf("decode scale: %w", err)
	}
	return nil
}

// Pack encodes records into dst, one fixed-size slot per record. Slots are
// zero padded, so identical records always produce identical bytes. dst must
// hold len(recs)*slotSize bytes.
func Pack[V any, H scale.EncodablePtr[V]](dst []byte, recs []V, slotSize int) error {
	if len(dst) < len(recs)*slotSize {
		return fmt.Errorf("pack: %d slots of %db exceed buffer of %db", len(recs), slotSize, len(dst))
	}
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	enc := scale.NewEncoder(b)
	for i := range recs {
		b.Reset()
		if _, err := H(&recs[i]).EncodeScale(enc); err != nil {
			return fmt.Errorf("pack slot %d: %w", i, err)
		}
		if b.Len() > slotSize {
			return fmt.Errorf("pack slot %d: encoding %db exceeds slot %db", i, b.Len(), slotSize)
		}
		off := i * slotSize
		n := copy(dst[off:off+slotSize], b.Bytes())
		for j := off + n; j < off+slotSize; j++ {
			dst[j] = 0
		}
	}
	return nil
}

// Unpack decodes len(recs) fixed-size slots from src into recs.
func Unpack[V any, H scale.DecodablePtr[V]](src []byte, recs []V, slotSize int) error {
	if len(src) < len(recs)*slotSize {
		return fmt.Errorf("unpack: %d slots of %db exceed buffer of %db", len(recs), slotSize, len(src))
	}
	r := bytes.NewReader(nil)
	for i := range recs {
		off := i * slotSize
		r.Reset(src[off : off+slotSize])
		if _, err := H(&recs[i]).DecodeScale(scale.NewDecoder(r)); err != nil {
			return fmt.Errorf("unpack slot %d: %w", i, err)
		}
	}
	return nil
}
