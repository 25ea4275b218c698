package job

import "errors"

var ErrJobNotFound = errors.New("work-hour job not found")
