package tclib

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/creachadair/tripcode"
	"github.com/creachadair/tripcode/alphabet"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is reported by Search when it gives up before finding the
// requested number of matches.
var ErrNotFound = errors.New("no matching tripcode found")

// Charset is a bit mask specifying which characters to use in candidate
// passwords. A Charset always includes letters.
type Charset int

const (
	// Letters denotes the capital and lowercase ASCII English letters.
	Letters Charset = 0

	// Digits denotes the set of ASCII decimal digits.
	Digits Charset = 1

	// Symbols denotes a set of ASCII punctuation symbols.
	Symbols Charset = 2

	// AllChars denotes a combination of letters, digits, and symbols.
	AllChars = Letters | Digits | Symbols
)

const (
	pwLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz" // 52 letters
	pwDigits  = "0123456789"                                           // 10 digits
	pwSymbols = `!%()*+,-./:;=?@[]^_{|}~`                              // 23 symbols
	hexDigits = "0123456789ABCDEF"

	// Omitted from the symbols: the HTML-escaped characters, which would
	// change the hashed password, and the "#" and "$" markers that select
	// other branches of the auto formats.

	// The number of entropy bits to charge for each character, rounded up.
	bitsPerChar = 7 // log2(52 + 10 + 23) = 6.409
)

// SearchOptions control a tripcode search.
type SearchOptions struct {
	Format tripcode.Format // the format of tripcodes to search
	Prefix string          // the tripcode prefix to search for (required)

	// Length is the length of candidate passwords. If zero, it defaults to
	// 8. It is ignored for MonaRaw, whose candidates are always raw keys.
	Length int

	Charset  Charset // the characters to use in candidate passwords
	Count    int     // stop after this many matches; if zero, 1
	Jobs     int     // concurrent workers; if zero, one per CPU
	MaxTries int64   // if positive, give up after this many candidates
}

// Search generates random candidate passwords until it finds opts.Count
// whose tripcodes begin with opts.Prefix. It calls found for each match, one
// at a time, in the order they are found. If found reports an error, the
// search stops and Search returns that error.
//
// Search returns the number of candidates it tried. If ctx ends first, it
// reports the context error; if it runs out of tries, ErrNotFound.
func Search(ctx context.Context, opts SearchOptions, found func(Result) error) (int64, error) {
	if err := opts.checkPrefix(); err != nil {
		return 0, err
	}
	count := max(opts.Count, 1)
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	chars := expandCharset(opts.Charset)
	if opts.Format == tripcode.MonaRaw {
		chars = hexDigits
	}

	var (
		tries   atomic.Int64
		mu      sync.Mutex
		nfound  int
		errDone = errors.New("search complete")
		errOut  = errors.New("search limit reached")
	)
	g, gctx := errgroup.WithContext(ctx)
	for range jobs {
		g.Go(func() error {
			cand := opts.newCandidate()
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				if n := tries.Add(1); opts.MaxTries > 0 && n > opts.MaxTries {
					return errOut
				}
				if opts.Format == tripcode.MonaRaw {
					fillRandom(cand[1:], chars, crand.Reader)
				} else {
					fillRandom(cand, chars, crand.Reader)
				}
				trip := tripcode.Generate(opts.Format, cand)
				if !strings.HasPrefix(trip, opts.Prefix) {
					continue
				}

				mu.Lock()
				if nfound == count {
					mu.Unlock()
					return errDone
				}
				nfound++
				done := nfound == count
				err := found(Result{
					Input:    Input{Text: string(cand), Data: bytes.Clone(cand)},
					Tripcode: trip,
				})
				mu.Unlock()
				if err != nil {
					return err
				} else if done {
					return errDone
				}
			}
		})
	}
	err := g.Wait()
	ntries := tries.Load()
	if opts.MaxTries > 0 {
		ntries = min(ntries, opts.MaxTries)
	}
	switch {
	case errors.Is(err, errDone):
		return ntries, nil
	case errors.Is(err, errOut):
		return ntries, fmt.Errorf("%w for %q in %d tries", ErrNotFound, opts.Prefix, ntries)
	}
	return ntries, err
}

// checkPrefix reports an error if no tripcode found by the search could
// begin with o.Prefix.
func (o SearchOptions) checkPrefix() error {
	if o.Prefix == "" {
		return errors.New("empty search prefix")
	}
	alpha, length := o.Format.Alphabet(), o.Format.Length()
	if alpha == nil {
		// The auto formats select by the candidate length. Candidates never
		// begin with "#" or "$", so only two branches are possible.
		if o.passwordLen() < 12 {
			alpha, length = alphabet.Crypt, tripcode.Fourchan.Length()
		} else {
			alpha, length = alphabet.Base64, tripcode.Mona12.Length()
		}
	}
	n, ok := alpha.Len(o.Prefix)
	if !ok {
		return fmt.Errorf("prefix %q is not in the %s alphabet", o.Prefix, alpha.Name())
	} else if n > length {
		return fmt.Errorf("prefix %q is longer than a %v tripcode", o.Prefix, o.Format)
	} else if alpha == alphabet.Crypt && n == length {
		// A whole DES tripcode: the last symbol carries only 4 bits.
		if err := tripcode.Check(tripcode.Fourchan, o.Prefix); err != nil {
			return fmt.Errorf("prefix %q can never match: %w", o.Prefix, err)
		}
	}
	return nil
}

func (o SearchOptions) passwordLen() int {
	if o.Format == tripcode.MonaRaw {
		return 17
	} else if o.Length <= 0 {
		return 8
	}
	return o.Length
}

// newCandidate returns a buffer for candidate passwords.
func (o SearchOptions) newCandidate() []byte {
	buf := make([]byte, o.passwordLen())
	if o.Format == tripcode.MonaRaw {
		buf[0] = '#'
	}
	return buf
}

// randomUint64 returns a random value populated by reading rng.
func randomUint64(rng io.Reader) uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// fillRandom populates out with random characters from chars, using rng as
// the source of randomness.
func fillRandom(out []byte, chars string, rng io.Reader) {
	clen := uint64(len(chars))

	var bits uint64 // entropy bits
	var nb int      // unconsumed entropy count
	for i := range out {
		if nb < bitsPerChar {
			bits, nb = randomUint64(rng), 64
		}
		out[i] = chars[int(bits%clen)]
		bits /= clen
		nb -= bitsPerChar
	}
}

// expandCharset returns the characters described by c.
func expandCharset(c Charset) string {
	chars := pwLetters
	if c&Digits != 0 {
		chars += pwDigits
	}
	if c&Symbols != 0 {
		chars += pwSymbols
	}
	return chars
}
