package orders

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")
