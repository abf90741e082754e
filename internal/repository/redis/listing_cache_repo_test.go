package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingsKey(t *testing.T) {
	assert.Equal(t, "vinted:listings:123456", listingsKey("123456"))
}
