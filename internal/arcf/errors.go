package arcf

import "errors"

var errTrackCount = errors.New("arcf: track count must be at least 1")
