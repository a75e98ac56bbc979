package simplehttp

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lateReader reports EOF for the first empty reads, then serves data.
type lateReader struct {
	empty int
	r     io.Reader
}

func (l *lateReader) Read(p []byte) (int, error) {
	if l.empty > 0 {
		l.empty--
		return 0, io.EOF
	}
	return l.r.Read(p)
}

func TestReadLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input io.Reader
		want  []string
	}{
		{
			name:  "complete lines",
			input: strings.NewReader("HTTP/1.1 200 OK\r\n\r\n"),
			want:  []string{"HTTP/1.1 200 OK\r\n", "\r\n"},
		},
		{
			name:  "unterminated last line",
			input: strings.NewReader("{\"id\":1}\r\n{\"id\":2}"),
			want:  []string{"{\"id\":1}\r\n", "{\"id\":2}"},
		},
		{
			name:  "data after empty reads",
			input: &lateReader{empty: 3, r: strings.NewReader("late\n")},
			want:  []string{"late\n"},
		},
		{
			name:  "one byte at a time",
			input: iotest.OneByteReader(strings.NewReader("a\nbc\n")),
			want:  []string{"a\n", "bc\n"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := bufio.NewReader(tt.input)
			deadline := time.Now().Add(time.Second)
			for _, want := range tt.want {
				line, err := readLine(r, deadline)
				require.NoError(t, err)
				assert.Equal(t, want, line)
			}
		})
	}
}

func TestReadLineTimeout(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(strings.NewReader(""))
	timeout := 50 * time.Millisecond
	start := time.Now()
	line, err := readLine(r, start.Add(timeout))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, line)
	assert.GreaterOrEqual(t, time.Since(start), timeout)
	assert.Less(t, time.Since(start), timeout+time.Second)
}

func TestReadLinePastDeadline(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(strings.NewReader("ready\n"))
	_, err := readLine(r, time.Now().Add(-time.Second))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestReadLineErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	_, err := readLine(bufio.NewReader(iotest.ErrReader(boom)), time.Now().Add(time.Second))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindSocket, e.Kind)
	assert.ErrorIs(t, err, boom)

	// the connection deadline is the call deadline
	_, err = readLine(bufio.NewReader(iotest.ErrReader(os.ErrDeadlineExceeded)), time.Now().Add(time.Second))
	assert.ErrorIs(t, err, ErrTimeout)
}
