package runner

import (
	"github.com/mgutz/logxi"
)

var logger logxi.Logger

func init() {
	logger = logxi.New("sproc:sqlx")
}
