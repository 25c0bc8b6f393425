package store

import (
	"fmt"
	"sort"

	"github.com/dshills/repoindex/pkg/types"
)

// sectionOrder fixes the on-disk ordering of sections; Decode reads the
// table of contents so actual position doesn't matter, but a fixed write
// order keeps repeated builds of identical content byte-for-byte
// identical (spec.md §8 round-trip property).
var sectionOrder = []string{
	tagStrings, tagFiles, tagChunks, tagTerms, tagInverted, tagEdges, tagPageRank, tagStats,
}

// Encode serializes idx into the on-disk artifact layout.
func Encode(idx *types.Index) []byte {
	pool := newStringPool()

	filesSec := encodeFiles(idx, pool)
	chunksSec := encodeChunks(idx, pool)
	termsSec := encodeTermBags(idx, pool)
	invertedSec := encodeInverted(idx, pool)
	edgesSec := encodeEdges(idx)
	pagerankSec := encodePageRank(idx)
	statsSec := encodeStats(idx.Stats)

	sections := map[string][]byte{
		tagStrings:  pool.blob,
		tagFiles:    filesSec,
		tagChunks:   chunksSec,
		tagTerms:    termsSec,
		tagInverted: invertedSec,
		tagEdges:    edgesSec,
		tagPageRank: pagerankSec,
		tagStats:    statsSec,
	}

	headerLen := headerFixedSize + len(sectionOrder)*tocEntrySize
	out := make([]byte, 0, headerLen+len(pool.blob)+len(filesSec)+len(chunksSec)+len(termsSec)+len(invertedSec)+len(edgesSec)+len(pagerankSec)+len(statsSec))

	he := newEncoder()
	he.raw(magic[:])
	he.u32(uint32(idx.Version))
	he.u32(uint32(len(sectionOrder)))

	offset := uint64(headerLen)
	type tocEntry struct {
		tag    string
		offset uint64
		length uint64
	}
	var entries []tocEntry
	for _, tag := range sectionOrder {
		sec := sections[tag]
		entries = append(entries, tocEntry{tag: tag, offset: offset, length: uint64(len(sec))})
		offset += uint64(len(sec))
	}
	for _, e := range entries {
		he.raw([]byte(e.tag))
		he.u64(e.offset)
		he.u64(e.length)
	}

	out = append(out, he.Bytes()...)
	for _, tag := range sectionOrder {
		out = append(out, sections[tag]...)
	}
	return out
}

// Decode parses the artifact layout back into an Index. It returns
// types.ErrIndexCorrupt if the magic, version, or any section bounds fail
// to validate.
func Decode(data []byte) (*types.Index, error) {
	if len(data) < headerFixedSize {
		return nil, types.ErrIndexCorrupt
	}
	hd := newDecoder(data)
	var gotMagic [8]byte
	if err := hd.need(8); err != nil {
		return nil, types.ErrIndexCorrupt
	}
	copy(gotMagic[:], data[:8])
	hd.pos = 8
	if gotMagic != magic {
		return nil, types.ErrIndexCorrupt
	}
	version, err := hd.u32()
	if err != nil || version != uint32(types.CurrentIndexVersion) {
		return nil, types.ErrIndexCorrupt
	}
	sectionCount, err := hd.u32()
	if err != nil || sectionCount == 0 || sectionCount > 64 {
		return nil, types.ErrIndexCorrupt
	}

	secs := make(map[string][]byte, sectionCount)
	for i := uint32(0); i < sectionCount; i++ {
		if err := hd.need(tocEntrySize); err != nil {
			return nil, types.ErrIndexCorrupt
		}
		tag := string(data[hd.pos : hd.pos+4])
		hd.pos += 4
		off, _ := hd.u64()
		length, _ := hd.u64()
		end := off + length
		if end > uint64(len(data)) || off > end {
			return nil, types.ErrIndexCorrupt
		}
		secs[tag] = data[off:end]
	}

	blob := stringBlob(secs[tagStrings])

	files, err := decodeFiles(secs[tagFiles], blob)
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}
	chunks, err := decodeChunks(secs[tagChunks], blob, files)
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}
	termBags, err := decodeTermBags(secs[tagTerms], blob, len(files))
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}
	filenameIdx, symbolIdx, bodyIdx, err := decodeInverted(secs[tagInverted], blob)
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}
	edges, err := decodeEdges(secs[tagEdges], files)
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}
	pagerank, err := decodePageRank(secs[tagPageRank], files)
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}
	stats, err := decodeStats(secs[tagStats])
	if err != nil {
		return nil, types.ErrIndexCorrupt
	}

	return &types.Index{
		Version:       int(version),
		Stats:         stats,
		FileRecords:   files,
		Chunks:        chunks,
		TermBags:      termBags,
		FilenameIndex: filenameIdx,
		SymbolIndex:   symbolIdx,
		BodyIndex:     bodyIdx,
		ResolvedEdges: edges,
		PageRank:      pagerank,
	}, nil
}

func encodeFiles(idx *types.Index, pool *stringPool) []byte {
	e := newEncoder()
	e.u32(uint32(len(idx.FileRecords)))
	for _, f := range idx.FileRecords {
		e.stringRef(pool.intern(f.Path))
		e.i64(f.SizeBytes)
		e.i64(f.ModTime.UnixNano())
		e.bytes32(f.ContentHash)
		e.u8(languageToCode(f.Language))
		e.u8(roleToCode(f.Role))
	}
	return e.Bytes()
}

func decodeFiles(sec []byte, blob stringBlob) ([]types.FileRecord, error) {
	d := newDecoder(sec)
	count, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]types.FileRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		ref, err := d.stringRef()
		if err != nil {
			return nil, err
		}
		path, err := blob.at(ref)
		if err != nil {
			return nil, err
		}
		size, err := d.i64()
		if err != nil {
			return nil, err
		}
		modNano, err := d.i64()
		if err != nil {
			return nil, err
		}
		hash, err := d.bytes32()
		if err != nil {
			return nil, err
		}
		langCode, err := d.u8()
		if err != nil {
			return nil, err
		}
		roleCode, err := d.u8()
		if err != nil {
			return nil, err
		}
		out = append(out, types.FileRecord{
			Path:        path,
			SizeBytes:   size,
			ModTime:     unixNanoTime(modNano),
			ContentHash: hash,
			Language:    codeToLanguage(langCode),
			Role:        codeToRole(roleCode),
		})
	}
	return out, nil
}

func encodeChunks(idx *types.Index, pool *stringPool) []byte {
	e := newEncoder()
	e.u32(uint32(len(idx.Chunks)))
	for _, fileChunks := range idx.Chunks {
		e.u32(uint32(len(fileChunks)))
		for _, c := range fileChunks {
			e.u8(chunkKindToCode(c.Kind))
			e.stringRef(pool.intern(c.Name))
			e.u32(uint32(c.StartLine))
			e.u32(uint32(c.EndLine))
		}
	}
	return e.Bytes()
}

func decodeChunks(sec []byte, blob stringBlob, files []types.FileRecord) ([][]types.Chunk, error) {
	d := newDecoder(sec)
	fileCount, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([][]types.Chunk, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		chunkCount, err := d.u32()
		if err != nil {
			return nil, err
		}
		chunks := make([]types.Chunk, 0, chunkCount)
		for j := uint32(0); j < chunkCount; j++ {
			kindCode, err := d.u8()
			if err != nil {
				return nil, err
			}
			ref, err := d.stringRef()
			if err != nil {
				return nil, err
			}
			name, err := blob.at(ref)
			if err != nil {
				return nil, err
			}
			start, err := d.u32()
			if err != nil {
				return nil, err
			}
			end, err := d.u32()
			if err != nil {
				return nil, err
			}
			owning := ""
			if int(i) < len(files) {
				owning = files[i].Path
			}
			chunks = append(chunks, types.Chunk{
				Kind: codeToChunkKind(kindCode), Name: name,
				StartLine: int(start), EndLine: int(end), OwningFile: owning,
			})
		}
		out[i] = chunks
	}
	return out, nil
}

func encodeTermBags(idx *types.Index, pool *stringPool) []byte {
	e := newEncoder()
	e.u32(uint32(len(idx.TermBags)))
	for _, bag := range idx.TermBags {
		encodeTermMap(e, pool, bag.FilenameTerms)
		encodeTermMap(e, pool, bag.SymbolTerms)
		encodeTermMap(e, pool, bag.BodyTerms)
	}
	return e.Bytes()
}

func encodeTermMap(e *encoder, pool *stringPool, m map[string]int) {
	terms := sortedKeys(m)
	e.u32(uint32(len(terms)))
	for _, t := range terms {
		e.stringRef(pool.intern(t))
		e.u32(uint32(m[t]))
	}
}

func decodeTermBags(sec []byte, blob stringBlob, expectedFiles int) ([]types.TermBag, error) {
	d := newDecoder(sec)
	count, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]types.TermBag, 0, count)
	for i := uint32(0); i < count; i++ {
		bag := types.NewTermBag()
		if err := decodeTermMap(d, blob, bag.FilenameTerms); err != nil {
			return nil, err
		}
		if err := decodeTermMap(d, blob, bag.SymbolTerms); err != nil {
			return nil, err
		}
		if err := decodeTermMap(d, blob, bag.BodyTerms); err != nil {
			return nil, err
		}
		out = append(out, bag)
	}
	return out, nil
}

func decodeTermMap(d *decoder, blob stringBlob, into map[string]int) error {
	count, err := d.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		ref, err := d.stringRef()
		if err != nil {
			return err
		}
		term, err := blob.at(ref)
		if err != nil {
			return err
		}
		freq, err := d.u32()
		if err != nil {
			return err
		}
		into[term] = int(freq)
	}
	return nil
}

func encodeInverted(idx *types.Index, pool *stringPool) []byte {
	e := newEncoder()
	encodeFieldIndex(e, pool, idx.FilenameIndex)
	encodeFieldIndex(e, pool, idx.SymbolIndex)
	encodeFieldIndex(e, pool, idx.BodyIndex)
	return e.Bytes()
}

func encodeFieldIndex(e *encoder, pool *stringPool, fi types.FieldIndex) {
	terms := make([]string, 0, len(fi))
	for t := range fi {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	e.u32(uint32(len(terms)))
	for _, t := range terms {
		e.stringRef(pool.intern(t))
		postings := fi[t] // already sorted ascending by FileOrdinal (invariant)
		e.u32(uint32(len(postings)))
		for _, p := range postings {
			e.u32(uint32(p.FileOrdinal))
			e.u32(uint32(p.Frequency))
		}
	}
}

func decodeInverted(sec []byte, blob stringBlob) (types.FieldIndex, types.FieldIndex, types.FieldIndex, error) {
	d := newDecoder(sec)
	filenameIdx, err := decodeFieldIndex(d, blob)
	if err != nil {
		return nil, nil, nil, err
	}
	symbolIdx, err := decodeFieldIndex(d, blob)
	if err != nil {
		return nil, nil, nil, err
	}
	bodyIdx, err := decodeFieldIndex(d, blob)
	if err != nil {
		return nil, nil, nil, err
	}
	return filenameIdx, symbolIdx, bodyIdx, nil
}

func decodeFieldIndex(d *decoder, blob stringBlob) (types.FieldIndex, error) {
	count, err := d.u32()
	if err != nil {
		return nil, err
	}
	fi := make(types.FieldIndex, count)
	for i := uint32(0); i < count; i++ {
		ref, err := d.stringRef()
		if err != nil {
			return nil, err
		}
		term, err := blob.at(ref)
		if err != nil {
			return nil, err
		}
		postingCount, err := d.u32()
		if err != nil {
			return nil, err
		}
		postings := make([]types.Posting, 0, postingCount)
		for j := uint32(0); j < postingCount; j++ {
			ordinal, err := d.u32()
			if err != nil {
				return nil, err
			}
			freq, err := d.u32()
			if err != nil {
				return nil, err
			}
			postings = append(postings, types.Posting{FileOrdinal: int(ordinal), Frequency: int(freq)})
		}
		fi[term] = postings
	}
	return fi, nil
}

func encodeEdges(idx *types.Index) []byte {
	ordinals := make(map[string]int, len(idx.FileRecords))
	for i, f := range idx.FileRecords {
		ordinals[f.Path] = i
	}

	kept := make([]types.ResolvedEdge, 0, len(idx.ResolvedEdges))
	for _, edge := range idx.ResolvedEdges {
		if _, ok := ordinals[edge.SrcFile]; !ok {
			continue
		}
		if _, ok := ordinals[edge.TargetFile]; !ok {
			continue
		}
		kept = append(kept, edge)
	}

	e := newEncoder()
	e.u32(uint32(len(kept)))
	for _, edge := range kept {
		e.u32(uint32(ordinals[edge.SrcFile]))
		e.u32(uint32(ordinals[edge.TargetFile]))
	}
	return e.Bytes()
}

func decodeEdges(sec []byte, files []types.FileRecord) ([]types.ResolvedEdge, error) {
	d := newDecoder(sec)
	count, err := d.u32()
	if err != nil {
		return nil, err
	}
	out := make([]types.ResolvedEdge, 0, count)
	for i := uint32(0); i < count; i++ {
		src, err := d.u32()
		if err != nil {
			return nil, err
		}
		tgt, err := d.u32()
		if err != nil {
			return nil, err
		}
		if int(src) >= len(files) || int(tgt) >= len(files) {
			return nil, fmt.Errorf("repoindex: edge ordinal out of range")
		}
		out = append(out, types.ResolvedEdge{SrcFile: files[src].Path, TargetFile: files[tgt].Path})
	}
	return out, nil
}

func encodePageRank(idx *types.Index) []byte {
	e := newEncoder()
	e.u32(uint32(len(idx.FileRecords)))
	for _, f := range idx.FileRecords {
		e.f64(idx.PageRank[f.Path])
	}
	return e.Bytes()
}

func decodePageRank(sec []byte, files []types.FileRecord) (types.PageRankTable, error) {
	d := newDecoder(sec)
	count, err := d.u32()
	if err != nil {
		return nil, err
	}
	table := make(types.PageRankTable, count)
	for i := uint32(0); i < count; i++ {
		v, err := d.f64()
		if err != nil {
			return nil, err
		}
		if int(i) < len(files) {
			table[files[i].Path] = v
		}
	}
	return table, nil
}

func encodeStats(s types.CorpusStats) []byte {
	e := newEncoder()
	e.i64(int64(s.FileCount))
	e.f64(s.AvgFilenameLen)
	e.f64(s.AvgSymbolLen)
	e.f64(s.AvgBodyLen)
	e.i64(int64(s.UniqueFilenameTerms))
	e.i64(int64(s.UniqueSymbolTerms))
	e.i64(int64(s.UniqueBodyTerms))
	return e.Bytes()
}

func decodeStats(sec []byte) (types.CorpusStats, error) {
	d := newDecoder(sec)
	fileCount, err := d.i64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	avgF, err := d.f64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	avgS, err := d.f64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	avgB, err := d.f64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	uf, err := d.i64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	us, err := d.i64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	ub, err := d.i64()
	if err != nil {
		return types.CorpusStats{}, err
	}
	return types.CorpusStats{
		FileCount: int(fileCount), AvgFilenameLen: avgF, AvgSymbolLen: avgS, AvgBodyLen: avgB,
		UniqueFilenameTerms: int(uf), UniqueSymbolTerms: int(us), UniqueBodyTerms: int(ub),
	}, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
