package output

import "errors"

var ErrTemplateNotFound = errors.New("template not found")
