// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package breaker rate limits outflows of a token account. The outflow of a
// rolling window is tracked as a single value decaying linearly over the window.
package breaker

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// PercentBase is the denominator of a Percent threshold, 10000 means the whole balance.
const PercentBase = 10_000

type ThresholdType uint8

const (
	Absolute ThresholdType = iota
	Percent
)

func (t ThresholdType) String() string {
	switch t {
	case Absolute:
		return "absolute"
	case Percent:
		return "percent"
	}
	return "unknown"
}

func (t ThresholdType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ThresholdType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "absolute":
		*t = Absolute
	case "percent":
		*t = Percent
	default:
		return errors.Errorf("unknown threshold type %q", text)
	}
	return nil
}

type Config struct {
	WindowSizeSeconds uint64        `json:"windowSizeSeconds" yaml:"window-size-seconds"`
	ThresholdType     ThresholdType `json:"thresholdType" yaml:"threshold-type"`
	Threshold         uint64        `json:"threshold" yaml:"threshold"`
}

// DefaultConfig is a one day window with an absolute threshold.
func DefaultConfig(threshold uint64) Config {
	return Config{
		WindowSizeSeconds: vsr.SecsPerDay,
		ThresholdType:     Absolute,
		Threshold:         threshold,
	}
}

func (c *Config) Validate() error {
	if c.WindowSizeSeconds == 0 {
		return reverts.ErrInvalidBreakerConfig
	}
	if c.ThresholdType != Absolute && c.ThresholdType != Percent {
		return reverts.ErrInvalidBreakerConfig
	}
	if c.ThresholdType == Percent && c.Threshold > PercentBase {
		return reverts.ErrInvalidBreakerConfig
	}
	return nil
}

// Breaker guards the outflow of one token account.
type Breaker struct {
	Authority           vsr.Address `json:"authority"`
	Config              Config      `json:"config"`
	LastAggregatedValue uint64      `json:"lastAggregatedValue"`
	LastTimestamp       int64       `json:"lastTimestamp"`
}

// New creates a breaker with no recorded outflow.
func New(authority vsr.Address, config Config) (*Breaker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Breaker{Authority: authority, Config: config}, nil
}

// Decayed returns the aggregated outflow remaining in the window at now.
func (b *Breaker) Decayed(now int64) uint64 {
	elapsed := now - b.LastTimestamp
	if elapsed <= 0 {
		return b.LastAggregatedValue
	}
	window := b.Config.WindowSizeSeconds
	if uint64(elapsed) >= window {
		return 0
	}
	gone := new(uint256.Int).Mul(uint256.NewInt(b.LastAggregatedValue), uint256.NewInt(uint64(elapsed)))
	gone.Div(gone, uint256.NewInt(window))
	return b.LastAggregatedValue - gone.Uint64()
}

// Threshold returns the limit given the current balance of the guarded account.
func (b *Breaker) Threshold(balance uint64) uint64 {
	if b.Config.ThresholdType == Percent {
		v := new(uint256.Int).Mul(uint256.NewInt(balance), uint256.NewInt(b.Config.Threshold))
		return v.Div(v, uint256.NewInt(PercentBase)).Uint64()
	}
	return b.Config.Threshold
}

// Record accounts an outflow of amount at now. It fails with
// CircuitBreakerTriggered, leaving the breaker untouched, if the aggregated
// outflow would exceed the threshold.
func (b *Breaker) Record(now int64, amount, balance uint64) error {
	decayed := b.Decayed(now)
	value := decayed + amount
	if value < decayed {
		return reverts.ErrArithmeticOverflow
	}
	if value > b.Threshold(balance) {
		return reverts.ErrCircuitBreakerTriggered
	}
	b.LastAggregatedValue = value
	if now > b.LastTimestamp {
		b.LastTimestamp = now
	}
	return nil
}

type breakerRLP struct {
	Authority           vsr.Address
	Config              Config
	LastAggregatedValue uint64
	LastTimestamp       uint64
}

// EncodeRLP implements rlp.Encoder.
func (b *Breaker) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &breakerRLP{
		Authority:           b.Authority,
		Config:              b.Config,
		LastAggregatedValue: b.LastAggregatedValue,
		LastTimestamp:       uint64(b.LastTimestamp),
	})
}

// DecodeRLP implements rlp.Decoder.
func (b *Breaker) DecodeRLP(s *rlp.Stream) error {
	var obj breakerRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	*b = Breaker{
		Authority:           obj.Authority,
		Config:              obj.Config,
		LastAggregatedValue: obj.LastAggregatedValue,
		LastTimestamp:       int64(obj.LastTimestamp),
	}
	return nil
}
