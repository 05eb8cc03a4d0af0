package util

import (
	"testing"

	"github.com/jxskiss/base62"
	"github.com/stretchr/testify/assert"
)

func TestUniqueID(t *testing.T) {
	uniqueIDGenerate, err := GetUniqueIDGenerate()
	assert.Nil(t, err)

	again, err := GetUniqueIDGenerate()
	assert.Nil(t, err)
	assert.Same(t, uniqueIDGenerate, again)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		uniqueID := uniqueIDGenerate.Generate()
		base62ID := uniqueID.GetBase62()
		assert.False(t, seen[base62ID])
		seen[base62ID] = true

		parsed, err := base62.ParseInt([]byte(base62ID))
		assert.Nil(t, err)
		assert.Equal(t, uniqueID.GetInt64(), parsed)
	}

	assert.NotZero(t, GetSnowflakeIDInt64())
}
