package audiocodec

import (
	"encoding/base64"
	"strings"

	"ai-langcoach-be/internal/pkg/apperror"
)

// ChunkSize is the maximum number of base64 characters per stored chunk.
// Firestore caps a document at 1 MiB including its envelope; base64 expands
// binary by ~4/3, so 750k characters of payload leaves headroom.
const ChunkSize = 750000

// Encode converts binary audio to its base64 transport form (standard
// alphabet, no line wrapping).
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode is the inverse of Encode. Malformed input is reported as a decode
// error.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindDecode, "malformed base64 payload", err)
	}
	return data, nil
}

// StripDataURL removes a data-URL prefix ("data:audio/webm;base64,<payload>")
// when present. Browsers send recordings in either form.
func StripDataURL(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// SplitChunks cuts encoded into contiguous pieces of at most size characters,
// preserving order. The last chunk may be shorter. Empty input or a
// non-positive size yields no chunks.
func SplitChunks(encoded string, size int) []string {
	if encoded == "" || size <= 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(encoded); i += size {
		end := i + size
		if end > len(encoded) {
			end = len(encoded)
		}
		chunks = append(chunks, encoded[i:end])
	}
	return chunks
}

// JoinChunks concatenates chunks in the given order. Callers must sort by
// chunk index first; storage order is not trustworthy.
func JoinChunks(chunks []string) string {
	return strings.Join(chunks, "")
}
