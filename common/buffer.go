package common

import (
	"bytes"
	"sync"
)

// BufferWriter is what statement text is written to. Both bytes.Buffer and
// bufio.Writer satisfy it.
type BufferWriter interface {
	Write(p []byte) (nn int, err error)
	WriteRune(r rune) (n int, err error)
	WriteString(s string) (n int, err error)
}

// statementSize fits most CALL/EXEC statements without growing.
const statementSize = 64

// BufferPool recycles the buffers statements are assembled in.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates a buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, statementSize))
		}},
	}
}

// Get checks out an empty buffer which must be returned with Put.
func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.pool.Get().(*bytes.Buffer)
}

// Put resets b and returns it to the pool.
func (bp *BufferPool) Put(b *bytes.Buffer) {
	b.Reset()
	bp.pool.Put(b)
}

// Join joins items with sep using a pooled buffer.
func (bp *BufferPool) Join(items []string, sep string) string {
	if len(items) == 0 {
		return ""
	}
	buf := bp.Get()
	defer bp.Put(buf)
	JoinTo(buf, items, sep)
	return buf.String()
}

// JoinTo writes items separated by sep to w.
func JoinTo(w BufferWriter, items []string, sep string) {
	for i, item := range items {
		if i > 0 {
			w.WriteString(sep)
		}
		w.WriteString(item)
	}
}
