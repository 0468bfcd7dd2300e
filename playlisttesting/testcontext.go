package playlisttesting

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-playlist/playlist"
	"github.com/stretchr/testify/require"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
}

func NewTestContext(t *testing.T, testLabelPrefix string) TestContext {
	logger.New("NOOP")
	return TestContext{
		T:   t,
		Log: logger.Sugar.WithServiceName(testLabelPrefix),
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// NewStore returns an empty store that logs through the context logger.
func (c *TestContext) NewStore(opts ...playlist.Option) *playlist.Store {
	s, err := playlist.NewStore(append([]playlist.Option{playlist.WithLogger(c.Log)}, opts...)...)
	require.NoError(c.T, err)
	return s
}
