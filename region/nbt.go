package region

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type TagType int

const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// WalkFunc receives each tag's dotted path (root name omitted, list elements
// as decimal indexes), the indexes of enclosing lists, the tag type, and the
// raw big-endian payload. path and value alias walker state: don't retain
// them past the call.
type WalkFunc func(path []string, idxes []int, ty TagType, value []byte)

// walkNBT streams over an uncompressed NBT buffer without building a tree.
// The root tag must be a compound.
func walkNBT(buf []byte, cb WalkFunc) error {
	w := nbtWalker{buf: buf, cb: cb}
	ty, err := w.takeByte()
	if err != nil {
		return err
	}
	if TagType(ty) != TagCompound {
		return errors.Errorf("nbt root is tag %d, not a compound", ty)
	}
	if _, err := w.takeString(); err != nil {
		return err
	}
	return w.compound()
}

type nbtWalker struct {
	buf   []byte
	off   int
	cb    WalkFunc
	path  []string
	idxes []int
}

func (w *nbtWalker) take(n int) ([]byte, error) {
	if n < 0 || w.off+n > len(w.buf) {
		return nil, errors.Errorf("nbt truncated at offset %d (want %d bytes of %d) near %s",
			w.off, n, len(w.buf), strings.Join(w.path, "."))
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b, nil
}

func (w *nbtWalker) takeByte() (byte, error) {
	b, err := w.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (w *nbtWalker) takeString() (string, error) {
	b, err := w.take(2)
	if err != nil {
		return "", err
	}
	s, err := w.take(int(binary.BigEndian.Uint16(b)))
	return string(s), err
}

func (w *nbtWalker) compound() error {
	for {
		tb, err := w.takeByte()
		if err != nil {
			return err
		}
		ty := TagType(tb)
		if ty == TagEnd {
			return nil
		}
		name, err := w.takeString()
		if err != nil {
			return err
		}
		w.path = append(w.path, name)
		if err := w.payload(ty); err != nil {
			return err
		}
		w.path = w.path[:len(w.path)-1]
	}
}

var tagSizes = map[TagType]int{
	TagByte: 1, TagShort: 2, TagInt: 4, TagLong: 8, TagFloat: 4, TagDouble: 8,
}

func (w *nbtWalker) payload(ty TagType) error {
	switch ty {
	case TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble:
		v, err := w.take(tagSizes[ty])
		if err != nil {
			return err
		}
		w.cb(w.path, w.idxes, ty, v)
	case TagByteArray, TagIntArray, TagLongArray:
		b, err := w.take(4)
		if err != nil {
			return err
		}
		n := int(binary.BigEndian.Uint32(b))
		elem := 1
		if ty == TagIntArray {
			elem = 4
		} else if ty == TagLongArray {
			elem = 8
		}
		v, err := w.take(n * elem)
		if err != nil {
			return err
		}
		w.cb(w.path, w.idxes, ty, v)
	case TagString:
		s, err := w.takeString()
		if err != nil {
			return err
		}
		w.cb(w.path, w.idxes, ty, []byte(s))
	case TagCompound:
		w.cb(w.path, w.idxes, ty, nil)
		return w.compound()
	case TagList:
		eb, err := w.takeByte()
		if err != nil {
			return err
		}
		lb, err := w.take(4)
		if err != nil {
			return err
		}
		elem, n := TagType(eb), int(binary.BigEndian.Uint32(lb))
		if n > 0 && elem == TagEnd {
			return errors.Errorf("non-empty list of end tags at %s", strings.Join(w.path, "."))
		}
		for i := 0; i < n; i++ {
			w.path = append(w.path, strconv.Itoa(i))
			w.idxes = append(w.idxes, i)
			if err := w.payload(elem); err != nil {
				return err
			}
			w.idxes = w.idxes[:len(w.idxes)-1]
			w.path = w.path[:len(w.path)-1]
		}
	default:
		return errors.Errorf("unhandled nbt tag type %d at %s", ty, strings.Join(w.path, "."))
	}
	return nil
}
