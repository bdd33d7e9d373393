package mdnslink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendReceiveOnClosedLinkErrors(t *testing.T) {
	l := New("127.0.0.1:0")
	assert.Error(t, l.Send(nil))
	assert.Error(t, l.Receive(nil))
	assert.False(t, l.IsOpen())
}
