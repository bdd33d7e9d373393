package seriallink

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	buf *bytes.Reader
}

func (f *fakeReader) Read(p []byte) (int, error) { return f.buf.Read(p) }

func TestIoReadFullDrainsShortReads(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := &fakeReader{buf: bytes.NewReader(data)}

	buf := make([]byte, 4)
	n, err := ioReadFull(r, buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, data, buf)
}

func TestIoReadFullPropagatesEOF(t *testing.T) {
	r := &fakeReader{buf: bytes.NewReader(nil)}
	buf := make([]byte, 2)
	_, err := ioReadFull(r, buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSendReceiveOnClosedLinkError(t *testing.T) {
	l := New("/dev/null-does-not-matter", 115200)
	assert.Error(t, l.Send(nil))
	assert.Error(t, l.Receive(nil))
	assert.False(t, l.IsOpen())
}
