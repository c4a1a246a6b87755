package region

import (
	"bytes"
	"encoding/binary"
	"io"
	"log"
	"math"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	lz4 "github.com/DataDog/golz4-2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/worldaudit/blockscan/scan"
)

// Chunk payload compression schemes, per the region format header byte.
const (
	schemeGzip = 1
	schemeZlib = 2
	schemeRaw  = 3
	schemeLZ4  = 4
)

const sectorSize = 4096

var regionNameRE = regexp.MustCompile(`r\.(-?\d+)\.(-?\d+)\.mca$`)

// ChunkSource yields decoded chunks. Satisfied by *File and by the in-memory
// fake used in tests.
type ChunkSource interface {
	Chunks() ([]*Chunk, error)
}

// section holds one 16x16x16 slice of a legacy chunk. add extends block IDs
// past 255 (modded servers); nil when the section has none.
type section struct {
	y      int
	blocks []byte // 4096 low bytes
	add    []byte // 2048 nibbles or nil
}

// Chunk is one decoded chunk at grid coordinates X, Z.
type Chunk struct {
	X, Z     int
	sections []section
}

func (c *Chunk) Coords() (int, int) { return c.X, c.Z }

// Blocks returns the chunk's flat block list in world coordinates, air
// included. Block ID is Blocks[i] | Add[i]<<8.
func (c *Chunk) Blocks() []scan.Block {
	blocks := make([]scan.Block, 0, len(c.sections)*4096)
	for _, s := range c.sections {
		for i, b := range s.blocks {
			id := int(b)
			if s.add != nil {
				id |= int((s.add[i>>1]>>((i&1)<<2))&0xf) << 8
			}
			blocks = append(blocks, scan.Block{
				ID: id,
				X:  c.X*16 + i&15,
				Y:  s.y*16 + i>>8,
				Z:  c.Z*16 + (i>>4)&15,
			})
		}
	}
	return blocks
}

// ListFiles returns the sorted .mca paths under dir whose names contain any
// of the filter substrings (all files when filters is empty).
func ListFiles(dir string, filters []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing region dir %s", dir)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".mca") {
			continue
		}
		if len(filters) > 0 {
			good := false
			for _, filter := range filters {
				if strings.Contains(e.Name(), filter) {
					good = true
					break
				}
			}
			if !good {
				continue
			}
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = path.Join(dir, n)
	}
	return paths, nil
}

// File is an opened region file: the two header tables plus the region's
// position on the 32x32 chunk grid.
type File struct {
	path       string
	rx, rz     int
	offsets    [1024]uint32
	timestamps [1024]uint32
}

// Open reads the region header. Chunk payloads are read later by Chunks.
func Open(p string) (*File, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Wrap(err, "opening region")
	}
	defer f.Close()

	r := &File{path: p}
	m := regionNameRE.FindStringSubmatch(p)
	if m == nil {
		return nil, errors.Errorf("region file %s doesn't match the r.<x>.<z>.mca format", p)
	}
	r.rx, _ = strconv.Atoi(m[1])
	r.rz, _ = strconv.Atoi(m[2])

	var buf [sectorSize]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return nil, errors.Wrapf(err, "reading offset table of %s", p)
	}
	for i := 0; i < 1024; i++ {
		r.offsets[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return nil, errors.Wrapf(err, "reading timestamp table of %s", p)
	}
	for i := 0; i < 1024; i++ {
		r.timestamps[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	return r, nil
}

// Chunks decodes every present chunk in the region. Payloads are read in
// file-offset order so the disk access stays sequential. Chunks that are
// misplaced (header slot disagrees with the NBT coords) or that carry no
// legacy block arrays are skipped; real decode errors abort.
func (r *File) Chunks() ([]*Chunk, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrap(err, "opening region")
	}
	defer f.Close()

	maxSectors := 0
	seq := make([]uint16, 0, 1024)
	for i, offset := range r.offsets {
		if offset == 0 {
			continue
		}
		seq = append(seq, uint16(i))
		if int(offset&255) > maxSectors {
			maxSectors = int(offset & 255)
		}
	}
	sort.Slice(seq, func(i, j int) bool {
		return r.offsets[seq[i]] < r.offsets[seq[j]]
	})

	raw := make([]byte, sectorSize*maxSectors)
	decompressed := bytes.NewBuffer(make([]byte, 0, 4*(1<<20)))
	var zr io.ReadCloser
	var zrr zlib.Resetter

	chunks := make([]*Chunk, 0, len(seq))
	for _, cn := range seq {
		if _, err := f.Seek(int64(r.offsets[cn]>>8)*sectorSize, io.SeekStart); err != nil {
			return nil, errors.Wrapf(err, "seeking to chunk %d of %s", cn, r.path)
		}
		paddedLen := sectorSize * int(r.offsets[cn]&0xff)
		if _, err := io.ReadFull(f, raw[:paddedLen]); err != nil {
			return nil, errors.Wrapf(err, "reading chunk %d of %s", cn, r.path)
		}
		chunkLen := int(binary.BigEndian.Uint32(raw))
		// the length field itself occupies 4 bytes of the padded area
		if chunkLen < 1 || chunkLen > paddedLen-4 {
			return nil, errors.Errorf("chunk %d of %s has bad length %d (padded %d)", cn, r.path, chunkLen, paddedLen)
		}
		payload := raw[5 : chunkLen+4]

		decompressed.Reset()
		switch raw[4] {
		case schemeZlib:
			pr := bytes.NewReader(payload)
			if zr == nil {
				zr, err = zlib.NewReader(pr)
				if err == nil {
					var ok bool
					if zrr, ok = zr.(zlib.Resetter); !ok {
						panic("zlib.NewReader must be resettable")
					}
				}
			} else {
				err = zrr.Reset(pr, nil)
			}
			if err == nil {
				_, err = decompressed.ReadFrom(zr)
			}
		case schemeGzip:
			var gr *gzip.Reader
			gr, err = gzip.NewReader(bytes.NewReader(payload))
			if err == nil {
				_, err = decompressed.ReadFrom(gr)
				gr.Close()
			}
		case schemeRaw:
			_, err = decompressed.Write(payload)
		case schemeLZ4:
			var out []byte
			out, err = lz4.UncompressAllocHdr(nil, payload)
			if err == nil {
				_, err = decompressed.Write(out)
			}
		default:
			return nil, errors.Errorf("chunk %d of %s has unhandled compression scheme %d", cn, r.path, raw[4])
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decompressing chunk %d of %s", cn, r.path)
		}

		x, z := int(cn&31)|r.rx<<5, int(cn>>5)|r.rz<<5
		c, err := decodeChunk(decompressed.Bytes(), x, z)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding chunk %d of %s", cn, r.path)
		}
		if c != nil {
			chunks = append(chunks, c)
		}
	}
	return chunks, nil
}

// decodeChunk walks a chunk's NBT and assembles its legacy sections. Returns
// nil (no error) for chunks worth skipping: proto-chunks without block
// arrays, or chunks whose stored coords disagree with their header slot.
func decodeChunk(buf []byte, x, z int) (*Chunk, error) {
	xPos, zPos := math.MaxInt64, math.MaxInt64
	secs := []section{}
	ensure := func(i int) *section {
		for len(secs) <= i {
			secs = append(secs, section{y: -1})
		}
		return &secs[i]
	}

	err := walkNBT(buf, func(path []string, idxes []int, ty TagType, value []byte) {
		if len(path) == 0 {
			return
		}
		last := path[len(path)-1]
		if len(path) <= 2 && ty == TagInt {
			switch last {
			case "xPos":
				xPos = int(int32(binary.BigEndian.Uint32(value)))
			case "zPos":
				zPos = int(int32(binary.BigEndian.Uint32(value)))
			}
			return
		}
		if len(path) != 4 || path[0] != "Level" || path[1] != "Sections" || len(idxes) != 1 {
			return
		}
		s := ensure(idxes[0])
		switch {
		case ty == TagByte && last == "Y":
			s.y = int(int8(value[0]))
		case ty == TagByteArray && last == "Blocks":
			// value aliases the reused decompression buffer
			s.blocks = append([]byte(nil), value...)
		case ty == TagByteArray && last == "Add":
			s.add = append([]byte(nil), value...)
		}
	})
	if err != nil {
		return nil, err
	}

	if (xPos != math.MaxInt64 && xPos != x) || (zPos != math.MaxInt64 && zPos != z) {
		log.Printf("chunk misplaced (corrupt region file?)-- expected %d,%d got %d,%d", x, z, xPos, zPos)
		return nil, nil
	}

	c := &Chunk{X: x, Z: z}
	for _, s := range secs {
		if len(s.blocks) != 4096 || s.y < 0 {
			continue
		}
		if len(s.add) != 2048 {
			s.add = nil
		}
		c.sections = append(c.sections, s)
	}
	if len(c.sections) == 0 {
		return nil, nil
	}
	sort.Slice(c.sections, func(i, j int) bool { return c.sections[i].y < c.sections[j].y })
	return c, nil
}
