// Package host binds the resolver to a build pipeline over newline-delimited
// JSON: one request per input line, one reply per output line, replies in
// request order.
package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/aliasresolve/internal/alias"
)

// DefaultConcurrency bounds in-flight requests when ServeOptions leaves it unset.
const DefaultConcurrency = 8

// maxLineSize bounds a single request line.
const maxLineSize = 1 << 20

// Resolver resolves one request.
type Resolver interface {
	Resolve(ctx context.Context, req alias.Request) (alias.Result, error)
}

// ServeOptions configures Serve.
type ServeOptions struct {
	// Concurrency is the number of requests resolved at once.
	Concurrency int
}

// Serve reads requests from in until EOF and writes replies to out. Requests
// are resolved concurrently; replies keep input order. Resolution failures are
// reported in replies; Serve only returns an error for I/O failures or when
// ctx is canceled. Cancellation does not wait for in to reach EOF: a read
// blocked on in is abandoned and its goroutine exits once the read returns.
func Serve(ctx context.Context, in io.Reader, out io.Writer, r Resolver, opts ServeOptions) error {
	window := opts.Concurrency
	if window <= 0 {
		window = DefaultConcurrency
	}

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	g, ctx := errgroup.WithContext(ctx)
	pending := make(chan chan Reply, window)

	g.Go(func() error {
		defer close(pending)
		for {
			var item scanned
			var ok bool
			select {
			case item, ok = <-lines:
			case <-ctx.Done():
				return ctx.Err()
			}
			if !ok {
				return nil
			}
			if item.err != nil {
				return item.err
			}

			slot := make(chan Reply, 1)
			select {
			case pending <- slot:
			case <-ctx.Done():
				return ctx.Err()
			}
			dispatch(ctx, r, item.line, slot)
		}
	})

	g.Go(func() error {
		w := bufio.NewWriter(out)
		enc := json.NewEncoder(w)
		for slot := range pending {
			var reply Reply
			select {
			case reply = <-slot:
			case <-ctx.Done():
				return ctx.Err()
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
		}
		return nil
	})

	return g.Wait()
}

// dispatch decodes one request line and fills slot with its reply.
func dispatch(ctx context.Context, r Resolver, line []byte, slot chan<- Reply) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		slot <- invalidReply(fmt.Errorf("decoding request: %w", err))
		return
	}
	if req.Specifier == "" {
		reply := invalidReply(errors.New("missing specifier"))
		reply.ID = req.ID
		slot <- reply
		return
	}
	go func() {
		res, err := r.Resolve(ctx, req.Request)
		slot <- NewReply(req.ID, res, err)
	}()
}

// scanned is one non-blank input line, or the error that ended input.
type scanned struct {
	line []byte
	err  error
}

// readLines scans in on its own goroutine. The channel closes at EOF or once
// done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan scanned {
	out := make(chan scanned)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
				continue
			}
			select {
			case out <- scanned{line: bytes.Clone(scanner.Bytes())}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case out <- scanned{err: fmt.Errorf("reading requests: %w", err)}:
			case <-done:
			}
		}
	}()
	return out
}
