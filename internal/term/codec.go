package term

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/relationlabs/graphdb/internal/bighash"
	"github.com/relationlabs/graphdb/internal/decimal"
	"github.com/relationlabs/graphdb/internal/smallstr"
	"github.com/relationlabs/graphdb/internal/xsdtime"
)

// Tag bytes. Mirrors the block layout of the encoding this module's
// on-disk format is derived from: 1-7 named nodes, 8-15 blank nodes,
// 16-47 literals. Values are a stable on-disk contract: never renumber.
const (
	tagNamedNode                   = 1
	tagNumericalBlankNode          = 8
	tagSmallBlankNode              = 9
	tagBigBlankNode                = 10
	tagSmallStringLiteral          = 16
	tagBigStringLiteral            = 17
	tagSmallSmallLangStringLiteral = 20
	tagSmallBigLangStringLiteral   = 21
	tagBigSmallLangStringLiteral   = 22
	tagBigBigLangStringLiteral     = 23
	tagSmallTypedLiteral           = 24
	tagBigTypedLiteral             = 25
	tagBooleanLiteralTrue          = 28
	tagBooleanLiteralFalse         = 29
	tagFloatLiteral                = 30
	tagDoubleLiteral               = 31
	tagIntegerLiteral              = 32
	tagDecimalLiteral              = 33
	tagDateTimeLiteral             = 34
	tagTimeLiteral                 = 35
	tagDateLiteral                 = 36
	tagGYearMonthLiteral           = 37
	tagGYearLiteral                = 38
	tagGMonthDayLiteral            = 39
	tagGDayLiteral                 = 40
	tagGMonthLiteral               = 41
	tagDurationLiteral             = 42
	tagYearMonthDurationLiteral    = 43
	tagDayTimeDurationLiteral      = 44
)

// ErrCorrupt is returned by Decode on a truncated buffer, an invalid
// type tag, or a malformed fixed-width payload.
var ErrCorrupt = errors.New("term: corrupt encoded term")

// MaxEncodedSize bounds the longest possible single-term encoding (tag
// byte plus two 16-byte hashes, the widest variant shape).
const MaxEncodedSize = 1 + 2*bighash.Size

// Encode appends t's wire encoding to dst and returns the result.
// DefaultGraph writes zero bytes, matching its role as the "no graph
// name" placeholder in a quad's 4th position.
func Encode(dst []byte, t Term) []byte {
	switch v := t.(type) {
	case DefaultGraph:
		return dst
	case NamedNode:
		dst = append(dst, tagNamedNode)
		b := v.IRIID.Bytes()
		return append(dst, b[:]...)
	case NumericalBlankNode:
		dst = append(dst, tagNumericalBlankNode)
		return append(dst, v.ID[:]...)
	case SmallBlankNode:
		dst = append(dst, tagSmallBlankNode)
		b := v.ID.Bytes()
		return append(dst, b[:]...)
	case BigBlankNode:
		dst = append(dst, tagBigBlankNode)
		b := v.IDID.Bytes()
		return append(dst, b[:]...)
	case SmallStringLiteral:
		dst = append(dst, tagSmallStringLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case BigStringLiteral:
		dst = append(dst, tagBigStringLiteral)
		b := v.ValueID.Bytes()
		return append(dst, b[:]...)
	case SmallSmallLangStringLiteral:
		dst = append(dst, tagSmallSmallLangStringLiteral)
		lb := v.Language.Bytes()
		dst = append(dst, lb[:]...)
		vb := v.Value.Bytes()
		return append(dst, vb[:]...)
	case SmallBigLangStringLiteral:
		dst = append(dst, tagSmallBigLangStringLiteral)
		lb := v.LanguageID.Bytes()
		dst = append(dst, lb[:]...)
		vb := v.Value.Bytes()
		return append(dst, vb[:]...)
	case BigSmallLangStringLiteral:
		dst = append(dst, tagBigSmallLangStringLiteral)
		lb := v.Language.Bytes()
		dst = append(dst, lb[:]...)
		vb := v.ValueID.Bytes()
		return append(dst, vb[:]...)
	case BigBigLangStringLiteral:
		dst = append(dst, tagBigBigLangStringLiteral)
		lb := v.LanguageID.Bytes()
		dst = append(dst, lb[:]...)
		vb := v.ValueID.Bytes()
		return append(dst, vb[:]...)
	case SmallTypedLiteral:
		dst = append(dst, tagSmallTypedLiteral)
		db := v.DatatypeID.Bytes()
		dst = append(dst, db[:]...)
		vb := v.Value.Bytes()
		return append(dst, vb[:]...)
	case BigTypedLiteral:
		dst = append(dst, tagBigTypedLiteral)
		db := v.DatatypeID.Bytes()
		dst = append(dst, db[:]...)
		vb := v.ValueID.Bytes()
		return append(dst, vb[:]...)
	case BooleanLiteral:
		if v.Value {
			return append(dst, tagBooleanLiteralTrue)
		}
		return append(dst, tagBooleanLiteralFalse)
	case FloatLiteral:
		dst = append(dst, tagFloatLiteral)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(v.Value))
		return append(dst, b[:]...)
	case DoubleLiteral:
		dst = append(dst, tagDoubleLiteral)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v.Value))
		return append(dst, b[:]...)
	case IntegerLiteral:
		dst = append(dst, tagIntegerLiteral)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v.Value))
		return append(dst, b[:]...)
	case DecimalLiteral:
		dst = append(dst, tagDecimalLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case DateTimeLiteral:
		dst = append(dst, tagDateTimeLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case TimeLiteral:
		dst = append(dst, tagTimeLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case DateLiteral:
		dst = append(dst, tagDateLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case GYearMonthLiteral:
		dst = append(dst, tagGYearMonthLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case GYearLiteral:
		dst = append(dst, tagGYearLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case GMonthDayLiteral:
		dst = append(dst, tagGMonthDayLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case GDayLiteral:
		dst = append(dst, tagGDayLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case GMonthLiteral:
		dst = append(dst, tagGMonthLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case DurationLiteral:
		dst = append(dst, tagDurationLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case YearMonthDurationLiteral:
		dst = append(dst, tagYearMonthDurationLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	case DayTimeDurationLiteral:
		dst = append(dst, tagDayTimeDurationLiteral)
		b := v.Value.Bytes()
		return append(dst, b[:]...)
	default:
		panic("term: unknown Term implementation")
	}
}

// Decode reads one encoded term from the front of buf and returns it
// along with the number of bytes consumed. An empty buf decodes as
// DefaultGraph (the graph-name slot's "no graph" encoding).
func Decode(buf []byte) (Term, int, error) {
	if len(buf) == 0 {
		return DefaultGraph{}, 0, nil
	}
	tag := buf[0]
	buf = buf[1:]
	read := 1

	need := func(n int) ([]byte, error) {
		if len(buf) < n {
			return nil, ErrCorrupt
		}
		return buf[:n], nil
	}

	switch tag {
	case tagNamedNode:
		b, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		h, ok := bighash.FromBytes(b)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		return NamedNode{IRIID: h}, read + bighash.Size, nil
	case tagNumericalBlankNode:
		b, err := need(16)
		if err != nil {
			return nil, 0, err
		}
		var id [16]byte
		copy(id[:], b)
		return NumericalBlankNode{ID: id}, read + 16, nil
	case tagSmallBlankNode:
		b, err := need(smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		s, err := smallstr.FromBytes(b)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return SmallBlankNode{ID: s}, read + smallstr.Size, nil
	case tagBigBlankNode:
		b, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		h, ok := bighash.FromBytes(b)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		return BigBlankNode{IDID: h}, read + bighash.Size, nil
	case tagSmallStringLiteral:
		b, err := need(smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		s, err := smallstr.FromBytes(b)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return SmallStringLiteral{Value: s}, read + smallstr.Size, nil
	case tagBigStringLiteral:
		b, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		h, ok := bighash.FromBytes(b)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		return BigStringLiteral{ValueID: h}, read + bighash.Size, nil
	case tagSmallSmallLangStringLiteral:
		lb, err := need(smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		lang, err := smallstr.FromBytes(lb)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		vb, err := need2(buf, smallstr.Size, smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		val, err := smallstr.FromBytes(vb)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return SmallSmallLangStringLiteral{Value: val, Language: lang}, read + 2*smallstr.Size, nil
	case tagSmallBigLangStringLiteral:
		lb, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		langID, ok := bighash.FromBytes(lb)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		vb, err := need2(buf, bighash.Size, smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		val, err := smallstr.FromBytes(vb)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return SmallBigLangStringLiteral{Value: val, LanguageID: langID}, read + bighash.Size + smallstr.Size, nil
	case tagBigSmallLangStringLiteral:
		lb, err := need(smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		lang, err := smallstr.FromBytes(lb)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		vb, err := need2(buf, smallstr.Size, bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		valID, ok := bighash.FromBytes(vb)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		return BigSmallLangStringLiteral{ValueID: valID, Language: lang}, read + smallstr.Size + bighash.Size, nil
	case tagBigBigLangStringLiteral:
		lb, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		langID, ok := bighash.FromBytes(lb)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		vb, err := need2(buf, bighash.Size, bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		valID, ok := bighash.FromBytes(vb)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		return BigBigLangStringLiteral{ValueID: valID, LanguageID: langID}, read + 2*bighash.Size, nil
	case tagSmallTypedLiteral:
		db, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		dtID, ok := bighash.FromBytes(db)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		vb, err := need2(buf, bighash.Size, smallstr.Size)
		if err != nil {
			return nil, 0, err
		}
		val, err := smallstr.FromBytes(vb)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return SmallTypedLiteral{Value: val, DatatypeID: dtID}, read + bighash.Size + smallstr.Size, nil
	case tagBigTypedLiteral:
		db, err := need(bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		dtID, ok := bighash.FromBytes(db)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		vb, err := need2(buf, bighash.Size, bighash.Size)
		if err != nil {
			return nil, 0, err
		}
		valID, ok := bighash.FromBytes(vb)
		if !ok {
			return nil, 0, ErrCorrupt
		}
		return BigTypedLiteral{ValueID: valID, DatatypeID: dtID}, read + 2*bighash.Size, nil
	case tagBooleanLiteralTrue:
		return BooleanLiteral{Value: true}, read, nil
	case tagBooleanLiteralFalse:
		return BooleanLiteral{Value: false}, read, nil
	case tagFloatLiteral:
		b, err := need(4)
		if err != nil {
			return nil, 0, err
		}
		return FloatLiteral{Value: math.Float32frombits(binary.BigEndian.Uint32(b))}, read + 4, nil
	case tagDoubleLiteral:
		b, err := need(8)
		if err != nil {
			return nil, 0, err
		}
		return DoubleLiteral{Value: math.Float64frombits(binary.BigEndian.Uint64(b))}, read + 8, nil
	case tagIntegerLiteral:
		b, err := need(8)
		if err != nil {
			return nil, 0, err
		}
		return IntegerLiteral{Value: int64(binary.BigEndian.Uint64(b))}, read + 8, nil
	case tagDecimalLiteral:
		b, err := need(decimal.Size)
		if err != nil {
			return nil, 0, err
		}
		d, err := decimal.FromBytes(b)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return DecimalLiteral{Value: d}, read + decimal.Size, nil
	case tagDateTimeLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return DateTimeLiteral{Value: xsdtime.DateTime{Value: v}}, read + xsdtime.Size, nil
	case tagTimeLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return TimeLiteral{Value: xsdtime.Time{Value: v}}, read + xsdtime.Size, nil
	case tagDateLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return DateLiteral{Value: xsdtime.Date{Value: v}}, read + xsdtime.Size, nil
	case tagGYearMonthLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return GYearMonthLiteral{Value: xsdtime.GYearMonth{Value: v}}, read + xsdtime.Size, nil
	case tagGYearLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return GYearLiteral{Value: xsdtime.GYear{Value: v}}, read + xsdtime.Size, nil
	case tagGMonthDayLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return GMonthDayLiteral{Value: xsdtime.GMonthDay{Value: v}}, read + xsdtime.Size, nil
	case tagGDayLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return GDayLiteral{Value: xsdtime.GDay{Value: v}}, read + xsdtime.Size, nil
	case tagGMonthLiteral:
		b, err := need(xsdtime.Size)
		if err != nil {
			return nil, 0, err
		}
		v, _ := xsdtime.FromBytes(b)
		return GMonthLiteral{Value: xsdtime.GMonth{Value: v}}, read + xsdtime.Size, nil
	case tagDurationLiteral:
		b, err := need(xsdtime.DurationSize)
		if err != nil {
			return nil, 0, err
		}
		d, err := xsdtime.DurationFromBytes(b)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return DurationLiteral{Value: d}, read + xsdtime.DurationSize, nil
	case tagYearMonthDurationLiteral:
		b, err := need(xsdtime.YearMonthDurationSize)
		if err != nil {
			return nil, 0, err
		}
		d, err := xsdtime.YearMonthDurationFromBytes(b)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return YearMonthDurationLiteral{Value: d}, read + xsdtime.YearMonthDurationSize, nil
	case tagDayTimeDurationLiteral:
		b, err := need(xsdtime.DayTimeDurationSize)
		if err != nil {
			return nil, 0, err
		}
		d, err := xsdtime.DayTimeDurationFromBytes(b)
		if err != nil {
			return nil, 0, ErrCorrupt
		}
		return DayTimeDurationLiteral{Value: d}, read + xsdtime.DayTimeDurationSize, nil
	default:
		return nil, 0, ErrCorrupt
	}
}

// need2 slices n2 bytes starting right after the first n1 bytes of buf.
func need2(buf []byte, n1, n2 int) ([]byte, error) {
	if len(buf) < n1+n2 {
		return nil, ErrCorrupt
	}
	return buf[n1 : n1+n2], nil
}

// EncodeQuad appends the wire encoding of s, p, o, g in order.
// DefaultGraph in the graph slot contributes zero bytes, so a
// default-graph quad encodes to the same bytes as its bare triple.
// Every other term's width is fixed by its tag byte, so the result can
// be split back into terms with repeated Decode calls; the index layer
// does this with decodeTerms, given each key's term count (see
// internal/index).
func EncodeQuad(dst []byte, q Quad) []byte {
	dst = Encode(dst, q.Subject)
	dst = Encode(dst, q.Predicate)
	dst = Encode(dst, q.Object)
	dst = Encode(dst, q.GraphName)
	return dst
}
