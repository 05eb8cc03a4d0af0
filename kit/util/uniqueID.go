package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/jxskiss/base62"
	"github.com/pkg/errors"
)

type UniqueIDGenerate struct {
	snowflakeNode *snowflake.Node
}

var (
	singletonUniqueIDGenerate *UniqueIDGenerate
	singletonUniqueIDErr      error
	singletonUniqueIDOnce     sync.Once
)

func GetUniqueIDGenerate() (*UniqueIDGenerate, error) {
	singletonUniqueIDOnce.Do(func() {
		snowflakeNode, err := snowflake.NewNode(1)
		if err != nil {
			singletonUniqueIDErr = errors.Wrap(err, "create snowflake failed")
			return
		}
		singletonUniqueIDGenerate = &UniqueIDGenerate{
			snowflakeNode: snowflakeNode,
		}
	})
	return singletonUniqueIDGenerate, singletonUniqueIDErr
}

func (u UniqueIDGenerate) Generate() *UniqueID {
	return &UniqueID{
		snowflakeID: u.snowflakeNode.Generate(),
	}
}

type UniqueID struct {
	snowflakeID snowflake.ID
}

func (u UniqueID) GetInt64() int64 {
	return u.snowflakeID.Int64()
}

func (u UniqueID) GetBase62() string {
	return string(base62.FormatInt(u.snowflakeID.Int64()))
}

// GetSnowflakeIDInt64 returns 0 when the generator could not be created.
func GetSnowflakeIDInt64() int64 {
	uniqueIDGenerate, err := GetUniqueIDGenerate()
	if err != nil {
		return 0
	}
	return uniqueIDGenerate.Generate().GetInt64()
}
