package simplehttp

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"
)

// how long to wait before retrying a read that returned nothing
const lineRetryInterval = 5 * time.Millisecond

// readLine reads one line from r, terminator included if it arrived. it
// retries reads that yield nothing until deadline, then gives up with
// [ErrTimeout]. a read that yields anything returns immediately, even
// without a trailing '\n'; callers recognize lines by HTTP structure.
func readLine(r *bufio.Reader, deadline time.Time) (string, error) {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", ErrTimeout
		}
		line, err := r.ReadString('\n')
		switch {
		case err == nil:
			return line, nil
		case err == io.EOF:
			if len(line) > 0 {
				return line, nil
			}
			// nothing there for now, try again later
			if remaining > lineRetryInterval {
				remaining = lineRetryInterval
			}
			time.Sleep(remaining)
		case errors.Is(err, os.ErrDeadlineExceeded):
			// the connection shares our deadline
			return "", ErrTimeout
		default:
			return "", socketError(err)
		}
	}
}
