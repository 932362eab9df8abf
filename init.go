package sproc

import (
	"github.com/mgutz/logxi"
	"github.com/mgutz/sproc/common"
)

var logger logxi.Logger

var bufPool = common.NewBufferPool()

func init() {
	logger = logxi.New("sproc")
}
