package shipments

import "errors"

var ErrInvalidStatus = errors.New("invalid shipment status")
