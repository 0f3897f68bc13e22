package domain

import "errors"

// ErrNotFound é devolvido pelos repositórios quando o registro não existe.
var ErrNotFound = errors.New("record not found")
