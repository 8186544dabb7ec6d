// Package attribution decides whether and how outgoing call data carries the
// builder-code trailer. The codec in protocol/suffix stays policy free.
package attribution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/suffixctl/internal/observability"
	"github.com/danmuck/suffixctl/internal/protocol/calldata"
	"github.com/danmuck/suffixctl/internal/protocol/hexdata"
	"github.com/danmuck/suffixctl/internal/protocol/suffix"
	"github.com/rs/zerolog"
)

type Policy int

const (
	// PolicyRequire refuses to build an Attributor for an unencodable code.
	PolicyRequire Policy = iota
	// PolicyFallback passes payloads through unattributed instead.
	PolicyFallback
)

var ErrUnknownPolicy = errors.New("attribution: unknown policy")

func (p Policy) String() string {
	switch p {
	case PolicyRequire:
		return "require"
	case PolicyFallback:
		return "fallback"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "require":
		return PolicyRequire, nil
	case "fallback":
		return PolicyFallback, nil
	default:
		return PolicyRequire, fmt.Errorf("%w: %q", ErrUnknownPolicy, raw)
	}
}

const (
	OutcomeAttributed = "attributed"
	OutcomeFallback   = "fallback"
)

type Options struct {
	Code     string
	Contract calldata.Address
	Policy   Policy
	Logger   zerolog.Logger
}

// Attributor appends one fixed trailer to every payload it is handed.
// It is immutable after New and safe for concurrent use.
type Attributor struct {
	code      string
	contract  calldata.Address
	trailer   suffix.Trailer
	encodeErr error
	logger    zerolog.Logger
}

// Call is one transaction request: target, data and value in wei.
type Call struct {
	To    calldata.Address
	Data  []byte
	Value uint64
}

func New(opts Options) (*Attributor, error) {
	trailer, err := suffix.EncodeIdentifier(opts.Code)
	if err != nil {
		if opts.Policy != PolicyFallback {
			return nil, fmt.Errorf("attribution: builder code %q: %w", opts.Code, err)
		}
		opts.Logger.Warn().Err(err).Str("code", opts.Code).Msg("builder code unencodable, payloads go out unattributed")
	}
	return &Attributor{
		code:      opts.Code,
		contract:  opts.Contract,
		trailer:   trailer,
		encodeErr: err,
		logger:    opts.Logger,
	}, nil
}

func (a *Attributor) Code() string {
	return a.code
}

func (a *Attributor) Contract() calldata.Address {
	return a.contract
}

// Attributed reports whether payloads will carry a trailer.
func (a *Attributor) Attributed() bool {
	return a.encodeErr == nil
}

// Suffix returns the 0x hex trailer, or "" when falling back.
func (a *Attributor) Suffix() string {
	if !a.Attributed() {
		return ""
	}
	return hexdata.Format(a.trailer)
}

// Attach returns a new buffer holding payload plus the trailer.
func (a *Attributor) Attach(payload []byte) []byte {
	if !a.Attributed() {
		observability.RecordAttribution(a.code, OutcomeFallback)
		return append([]byte(nil), payload...)
	}
	observability.RecordAttribution(a.code, OutcomeAttributed)
	return suffix.Combine(payload, a.trailer)
}

// MintCall builds the attributed safeMint(to) call against the contract.
func (a *Attributor) MintCall(to calldata.Address) Call {
	data := a.Attach(calldata.SafeMint(to))
	a.logger.Debug().
		Str("to", to.String()).
		Str("contract", a.contract.String()).
		Int("data_len", len(data)).
		Msg("mint call built")
	return Call{To: a.contract, Data: data, Value: 0}
}
