package fingerprint

import (
	"bytes"
	"testing"
)

func TestComputeStableAcrossCalls(t *testing.T) {
	data := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}
	first := Compute(data)
	second := Compute(data)
	if first != second {
		t.Fatalf("digest not stable: first=%s second=%s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("digest length: want=64 got=%d", len(first))
	}
}

func TestComputeDistinguishesContent(t *testing.T) {
	a := Compute([]byte("camera-capture"))
	b := Compute([]byte("file-upload"))
	if a == b {
		t.Fatalf("different content produced equal digests: %s", a)
	}
}

func TestFromReaderMatchesCompute(t *testing.T) {
	data := []byte("same bytes via two upload paths")
	fromReader, err := FromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if got := Compute(data); got != fromReader {
		t.Fatalf("digest mismatch: Compute=%s FromReader=%s", got, fromReader)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	// sha256 of the empty string
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Compute(nil); got != want {
		t.Fatalf("empty digest: want=%s got=%s", want, got)
	}
}
