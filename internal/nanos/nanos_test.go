package nanos

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddSaturates(t *testing.T) {
	assert.Equal(t, Nanos(3), Nanos(1).Add(2))
	assert.Equal(t, Max, Max.Add(1))
	assert.Equal(t, Max, Nanos(math.MaxUint64-1).Add(2))
}

func TestSubSaturates(t *testing.T) {
	assert.Equal(t, Nanos(0), Nanos(0).Sub(1))
	assert.Equal(t, Nanos(5), Nanos(10).Sub(5))
}

func TestMulSaturates(t *testing.T) {
	assert.Equal(t, Nanos(0), Nanos(0).Mul(100))
	assert.Equal(t, Nanos(20), Nanos(4).Mul(5))
	assert.Equal(t, Max, Max.Mul(2))
}

func TestCheckedMul(t *testing.T) {
	v, overflow := Nanos(4).CheckedMul(5)
	assert.False(t, overflow)
	assert.Equal(t, Nanos(20), v)

	_, overflow = Nanos(math.MaxUint64).CheckedMul(2)
	assert.True(t, overflow)
}

func TestDiv(t *testing.T) {
	assert.Equal(t, uint64(5), Nanos(10).Div(2))
	assert.Equal(t, uint64(Max), Nanos(10).Div(0))
}

func TestMax2(t *testing.T) {
	assert.Equal(t, Nanos(5), Max2(3, 5))
	assert.Equal(t, Nanos(5), Max2(5, 3))
}

func TestFromDurationClampsNegative(t *testing.T) {
	assert.Equal(t, Nanos(0), FromDuration(-time.Second))
	assert.Equal(t, Nanos(time.Second), FromDuration(time.Second))
}

func TestDurationSaturatesAtInt64Max(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Max.Duration())
}
