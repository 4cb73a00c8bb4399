package models

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/fileledger/internal/common"
)

var (
	maxPoints = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minPoints = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Points is an immutable signed 128-bit amount. The zero value is 0.
type Points struct {
	i *big.Int
}

func NewPoints(v int64) Points {
	return Points{i: big.NewInt(v)}
}

// ParsePoints parses a base-10 amount. Values outside the signed 128-bit
// range are rejected with common.ErrorAmountOverflow.
func ParsePoints(s string) (Points, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Points{}, fmt.Errorf("parse amount %q: %w", s, common.ErrorInvalidAmount)
	}
	return checked(v)
}

func checked(v *big.Int) (Points, error) {
	if v.Cmp(maxPoints) > 0 || v.Cmp(minPoints) < 0 {
		return Points{}, common.ErrorAmountOverflow
	}
	return Points{i: v}, nil
}

func (p Points) big() *big.Int {
	if p.i == nil {
		return new(big.Int)
	}
	return p.i
}

// Add returns p+o or common.ErrorAmountOverflow.
func (p Points) Add(o Points) (Points, error) {
	return checked(new(big.Int).Add(p.big(), o.big()))
}

// Sub returns p-o or common.ErrorAmountOverflow.
func (p Points) Sub(o Points) (Points, error) {
	return checked(new(big.Int).Sub(p.big(), o.big()))
}

func (p Points) Cmp(o Points) int { return p.big().Cmp(o.big()) }

func (p Points) Sign() int { return p.big().Sign() }

func (p Points) String() string { return p.big().String() }

// MarshalJSON encodes the amount as a decimal string so no precision is lost
// by JSON consumers limited to float64.
func (p Points) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Points) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParsePoints(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
