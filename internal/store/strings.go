package store

// stringRef is an (offset, length) pair into the shared string blob.
type stringRef struct {
	Offset uint32
	Length uint16
}

// stringPool deduplicates strings into one contiguous blob at write time.
type stringPool struct {
	blob []byte
	seen map[string]stringRef
}

func newStringPool() *stringPool {
	return &stringPool{seen: make(map[string]stringRef)}
}

// intern returns the stringRef for s, appending it to the blob on first
// occurrence.
func (p *stringPool) intern(s string) stringRef {
	if ref, ok := p.seen[s]; ok {
		return ref
	}
	ref := stringRef{Offset: uint32(len(p.blob)), Length: uint16(len(s))}
	p.blob = append(p.blob, s...)
	p.seen[s] = ref
	return ref
}

func (e *encoder) stringRef(r stringRef) {
	e.u32(r.Offset)
	var b [2]byte
	b[0] = byte(r.Length)
	b[1] = byte(r.Length >> 8)
	e.buf.Write(b[:])
}

func (d *decoder) stringRef() (stringRef, error) {
	off, err := d.u32()
	if err != nil {
		return stringRef{}, err
	}
	if err := d.need(2); err != nil {
		return stringRef{}, err
	}
	length := uint16(d.data[d.pos]) | uint16(d.data[d.pos+1])<<8
	d.pos += 2
	return stringRef{Offset: off, Length: length}, nil
}

// stringBlob is the read-side view of the interned string section: a
// window into the artifact bytes handed to Decode, sliced on demand by
// (offset, length); at copies out each string it returns.
type stringBlob []byte

func (b stringBlob) at(r stringRef) (string, error) {
	end := uint32(r.Length) + r.Offset
	if int(end) > len(b) {
		return "", errTruncatedString
	}
	return string(b[r.Offset:end]), nil
}

var errTruncatedString = errStr("repoindex: string blob truncated")

type errStr string

func (e errStr) Error() string { return string(e) }
