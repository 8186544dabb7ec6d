// Package indexer is the off-chain consumer of attribution trailers. It
// classifies raw buffers and keeps running per-code counts.
package indexer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/danmuck/suffixctl/internal/observability"
	"github.com/danmuck/suffixctl/internal/protocol/hexdata"
	"github.com/danmuck/suffixctl/internal/protocol/suffix"
)

type Status int

const (
	StatusAbsent Status = iota
	StatusPresent
	StatusUnparseable
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusPresent:
		return "present"
	case StatusUnparseable:
		return "unparseable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is one classified buffer. Attribution and Payload are only set
// when Status is StatusPresent; Err carries the decode reason otherwise.
type Result struct {
	Status      Status
	Attribution suffix.Attribution
	Payload     []byte
	Err         error
}

// Classify never fails: a missing trailer is a normal outcome.
func Classify(buf []byte) Result {
	attr, payload, err := suffix.ExtractTrailer(buf)
	var res Result
	switch {
	case err == nil:
		res = Result{Status: StatusPresent, Attribution: attr, Payload: payload}
	case suffix.IsAbsent(err):
		res = Result{Status: StatusAbsent, Err: err}
	default:
		res = Result{Status: StatusUnparseable, Err: err}
	}
	observability.RecordClassification(res.Status.String())
	return res
}

// Tally counts classification results. The zero value is ready to use.
type Tally struct {
	mu       sync.Mutex
	byStatus map[Status]uint64
	byCode   map[string]uint64
}

type CodeCount struct {
	Code  string `json:"code"`
	Count uint64 `json:"count"`
}

type TallySnapshot struct {
	Absent      uint64      `json:"absent"`
	Present     uint64      `json:"present"`
	Unparseable uint64      `json:"unparseable"`
	Codes       []CodeCount `json:"codes"`
}

func (t *Tally) Record(res Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.byStatus == nil {
		t.byStatus = make(map[Status]uint64)
		t.byCode = make(map[string]uint64)
	}
	t.byStatus[res.Status]++
	if res.Status == StatusPresent {
		t.byCode[res.Attribution.Code]++
	}
}

// Snapshot returns counts with codes sorted by count, then code.
func (t *Tally) Snapshot() TallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := TallySnapshot{
		Absent:      t.byStatus[StatusAbsent],
		Present:     t.byStatus[StatusPresent],
		Unparseable: t.byStatus[StatusUnparseable],
		Codes:       make([]CodeCount, 0, len(t.byCode)),
	}
	for code, n := range t.byCode {
		snap.Codes = append(snap.Codes, CodeCount{Code: code, Count: n})
	}
	sort.Slice(snap.Codes, func(i, j int) bool {
		if snap.Codes[i].Count != snap.Codes[j].Count {
			return snap.Codes[i].Count > snap.Codes[j].Count
		}
		return snap.Codes[i].Code < snap.Codes[j].Code
	})
	return snap
}

// Line is one scanned input line. Err is set when the line was not hex; the
// Result is then zero and nothing was tallied.
type Line struct {
	Number int
	Result Result
	Err    error
}

const maxLineBytes = 4 * 1024 * 1024

// Scan reads newline separated hex buffers from r, classifies each, records
// it into t and hands it to fn. Blank lines and # comments are skipped. A
// non-nil error from fn stops the scan and is returned.
func (t *Tally) Scan(ctx context.Context, r io.Reader, fn func(Line) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	number := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		number++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		line := Line{Number: number}
		buf, err := hexdata.Parse(raw)
		if err != nil {
			line.Err = err
		} else {
			line.Result = Classify(buf)
			t.Record(line.Result)
		}
		if fn != nil {
			if err := fn(line); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("indexer: line %d exceeds %d bytes: %w", number+1, maxLineBytes, err)
		}
		return err
	}
	return nil
}
