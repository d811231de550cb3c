package bst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	msg := "integer mixing hash"

	testVec := []struct {
		In  uint32
		Out uint32
	}{
		{0, 0},
		{1, 824515495},
		{2, 1722258072},
		{42, 4147366645},
		{12345, 1747545881},
		{0xffffffff, 539527247},
	}

	for _, c := range testVec {
		assert.Equal(t, c.Out, Hash(c.In), msg)
	}
}

func TestKeys(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]uint32{4147366645, 1543550320, 446290577, 3006564939, 2834992226}, Keys(5, 42))
	assert.Equal([]uint32{1004384961, 2044851634, 3253613923, 1571669607}, Keys(4, -7))
	assert.Equal([]uint32{0}, Keys(1, 0))
	assert.Empty(Keys(0, 42))

	// same inputs, same sequence
	assert.Equal(Keys(1000, 99), Keys(1000, 99))
	for i, k := range Keys(100, 7) {
		assert.Equal(KeyAt(i, 7), k)
	}
	assert.Equal(Hash(42), KeyAt(0, 42))
}
