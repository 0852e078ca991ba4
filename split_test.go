package recsplit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mocks and Helpers ---

// word is a 4-byte record kind with a static size.
type word = Fixed[uint32]

// sampledRecord has no static size, so its length is measured from a sample.
type sampledRecord struct {
	A, B byte
}

func (r *sampledRecord) MarshalBinary() ([]byte, error) { return []byte{r.A, r.B}, nil }

func (r *sampledRecord) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return ErrTruncatedData
	}
	r.A, r.B = data[0], data[1]
	return nil
}

// errCorrupt is returned by guardedRecord for a 0xFF tag.
var errCorrupt = errors.New("corrupt record")

// guardedRecord refuses to decode a record whose tag byte is 0xFF.
type guardedRecord struct {
	Tag  byte
	Body [3]byte
}

func (*guardedRecord) FixedSize() int { return 4 }

func (r *guardedRecord) MarshalBinary() ([]byte, error) {
	return []byte{r.Tag, r.Body[0], r.Body[1], r.Body[2]}, nil
}

func (r *guardedRecord) UnmarshalBinary(data []byte) error {
	if data[0] == 0xFF {
		return errCorrupt
	}
	r.Tag = data[0]
	copy(r.Body[:], data[1:4])
	return nil
}

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

// --- Split Test Suite ---

type SplitTestSuite struct {
	suite.Suite
	reg *Registry
}

// SetupTest runs before each test in the suite, ensuring a clean cache.
func (s *SplitTestSuite) SetupTest() {
	s.reg = NewRegistry()
}

func (s *SplitTestSuite) TestBoundaryScenarios() {
	s.T().Run("EmptyInput", func(t *testing.T) {
		res, err := Split[word](s.reg, []byte{})
		require.NoError(t, err)
		assert.Empty(t, res.Remainder)
		assert.NotNil(t, res.Remainder)
		assert.Empty(t, res.Records)
		assert.Equal(t, 4, res.EncodedLength)
	})

	s.T().Run("NilInput", func(t *testing.T) {
		res, err := Split[word](s.reg, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Remainder)
		assert.Empty(t, res.Records)
	})

	s.T().Run("ShorterThanRecord", func(t *testing.T) {
		res, err := Split[word](s.reg, []byte{0x01, 0x02})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, res.Remainder)
		assert.Empty(t, res.Records)
	})

	s.T().Run("RemainderAtStart", func(t *testing.T) {
		buf := seq(10)
		res, err := Split[word](s.reg, buf)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, res.Remainder)
		require.Len(t, res.Records, 2)
		assert.Equal(t, uint32(0x03040506), res.Records[0].Payload) // bytes [2:6]
		assert.Equal(t, uint32(0x0708090A), res.Records[1].Payload) // bytes [6:10]
	})

	s.T().Run("ExactMultiple", func(t *testing.T) {
		res, err := Split[word](s.reg, seq(8))
		require.NoError(t, err)
		assert.Empty(t, res.Remainder)
		assert.Len(t, res.Records, 2)
		assert.Equal(t, uint32(0x01020304), res.Records[0].Payload)
	})
}

func (s *SplitTestSuite) TestConservationAndPrefix() {
	for n := 0; n <= 33; n++ {
		buf := seq(n)
		res, err := Split[guardedRecord](s.reg, buf)
		s.Require().NoError(err)

		s.Assert().Equal(n, len(res.Remainder)+len(res.Records)*res.EncodedLength, "length %d", n)
		s.Assert().Equal(buf[:n%4], res.Remainder, "length %d", n)
		s.Assert().Less(len(res.Remainder), res.EncodedLength)
	}
}

func (s *SplitTestSuite) TestRemainderIsCopied() {
	buf := seq(6)
	res, err := Split[word](s.reg, buf)
	s.Require().NoError(err)

	buf[0] = 0xAA
	s.Assert().Equal([]byte{1, 2}, res.Remainder)
}

func (s *SplitTestSuite) TestDeterminism() {
	buf := seq(23)
	first, err := Split[guardedRecord](s.reg, buf)
	s.Require().NoError(err)
	second, err := Split[guardedRecord](s.reg, buf)
	s.Require().NoError(err)
	s.Assert().Equal(first, second)
}

func (s *SplitTestSuite) TestRoundTrip() {
	words := []word{{Payload: 1}, {Payload: 0xDEADBEEF}, {Payload: 42}}
	buf, err := Join(s.reg, words)
	s.Require().NoError(err)
	s.Assert().Len(buf, 12)

	res, err := Split[word](s.reg, buf)
	s.Require().NoError(err)
	s.Assert().Empty(res.Remainder)
	s.Assert().Equal(words, res.Records)

	s.T().Run("WithLeadingRemainder", func(t *testing.T) {
		recs := []sampledRecord{{A: 1, B: 2}, {A: 3, B: 4}}
		joined, err := Join(s.reg, recs)
		require.NoError(t, err)

		res, err := Split[sampledRecord](s.reg, append([]byte{0xEE}, joined...))
		require.NoError(t, err)
		assert.Equal(t, []byte{0xEE}, res.Remainder)
		assert.Equal(t, recs, res.Records)
	})

	s.T().Run("EmptyJoin", func(t *testing.T) {
		joined, err := Join[word](s.reg, nil)
		require.NoError(t, err)
		assert.Empty(t, joined)
	})
}

func (s *SplitTestSuite) TestDecodeErrorPropagates() {
	// remainder(1) + ok record + corrupt record
	buf := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0xFF, 0x00, 0x00, 0x00}
	res, err := Split[guardedRecord](s.reg, buf)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, errCorrupt)
	s.Assert().Zero(res)

	var decodeErr *DecodeError
	s.Require().ErrorAs(err, &decodeErr)
	s.Assert().Equal(1, decodeErr.Index)
	s.Assert().Equal(5, decodeErr.Offset)
	s.Assert().Equal(reflect.TypeFor[guardedRecord](), decodeErr.Kind)
	s.Assert().Equal([]byte{0xFF, 0, 0, 0}, decodeErr.Data)
	s.Assert().Contains(err.Error(), "[4 bytes] 0: 255|1: 0|2: 0|3: 0")

	failures := testutil.ToFloat64(s.reg.Metrics().decodeErrors.WithLabelValues("recsplit.guardedRecord"))
	s.Assert().Equal(1.0, failures)
}

func (s *SplitTestSuite) TestSplitInto() {
	dst := make([]guardedRecord, 0, 8)

	rem, dst, err := SplitInto(s.reg, []byte{9, 1, 2, 3, 4}, dst)
	s.Require().NoError(err)
	s.Assert().Equal([]byte{9}, rem)
	s.Assert().Len(dst, 1)

	rem, dst, err = SplitInto(s.reg, []byte{5, 6, 7, 8}, dst)
	s.Require().NoError(err)
	s.Assert().Empty(rem)
	s.Require().Len(dst, 2)
	s.Assert().Equal(guardedRecord{Tag: 1, Body: [3]byte{2, 3, 4}}, dst[0])
	s.Assert().Equal(guardedRecord{Tag: 5, Body: [3]byte{6, 7, 8}}, dst[1])

	s.T().Run("ErrorKeepsOriginalLength", func(t *testing.T) {
		_, out, err := SplitInto(s.reg, []byte{0xFF, 0, 0, 0}, dst)
		require.ErrorIs(t, err, errCorrupt)
		assert.Len(t, out, 2)
	})

	s.T().Run("GrowsSmallDestination", func(t *testing.T) {
		_, out, err := SplitInto(s.reg, seq(12), []guardedRecord{{Tag: 7}})
		require.NoError(t, err)
		require.Len(t, out, 4)
		assert.Equal(t, byte(7), out[0].Tag)
		assert.Equal(t, byte(1), out[1].Tag)
	})
}

func (s *SplitTestSuite) TestMetrics() {
	_, err := Split[word](s.reg, seq(10))
	s.Require().NoError(err)
	_, err = Split[word](s.reg, seq(7))
	s.Require().NoError(err)

	label := reflect.TypeFor[word]().String()
	s.Assert().Equal(3.0, testutil.ToFloat64(s.reg.Metrics().records.WithLabelValues(label)))
	s.Assert().Equal(5.0, testutil.ToFloat64(s.reg.Metrics().remainderBytes.WithLabelValues(label)))
}

func (s *SplitTestSuite) TestJoinErrors() {
	s.T().Run("LengthMismatch", func(t *testing.T) {
		_, err := Join(s.reg, []stretchyRecord{{N: 2}, {N: 3}})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	s.T().Run("InvalidKind", func(t *testing.T) {
		_, err := Join(s.reg, []emptyRecord{{}})
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

// TestSplit runs the SplitTestSuite.
func TestSplit(t *testing.T) {
	suite.Run(t, new(SplitTestSuite))
}

// stretchyRecord encodes to N bytes, which only matches its declared size for N == 2.
type stretchyRecord struct{ N int }

func (*stretchyRecord) FixedSize() int { return 2 }

func (r *stretchyRecord) MarshalBinary() ([]byte, error) { return make([]byte, r.N), nil }

func (r *stretchyRecord) UnmarshalBinary(data []byte) error {
	r.N = len(data)
	return nil
}

func TestSplit_NilRegistry(t *testing.T) {
	_, err := Split[word](nil, seq(4))
	assert.ErrorIs(t, err, ErrNilRegistry)
}
