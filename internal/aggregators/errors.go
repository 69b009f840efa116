package aggregators

import "errors"

// ErrAggregationAborted wraps the failure that stopped the record sequence mid-pass.
var ErrAggregationAborted = errors.New("aggregation aborted")
