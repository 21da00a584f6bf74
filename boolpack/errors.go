package boolpack

import (
	"fmt"

	"github.com/patrickelectric/blueberry/errs"
)

var errTruncatedBool = fmt.Errorf("%w: bool field: no byte remaining for bit-packed run", errs.ErrTruncated)
