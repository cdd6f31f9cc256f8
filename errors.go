package ecs

import "errors"

// Sentinel errors returned by World operations. Wrap with fmt.Errorf
// and %w where additional context helps; callers should compare with
// errors.Is.
var (
	ErrUnknownEntity    = errors.New("ecs: unknown or dead entity")
	ErrUnknownComponent = errors.New("ecs: unknown component")
	ErrWrongKind        = errors.New("ecs: operation not valid for this component's kind")
	ErrDuplicateSystem  = errors.New("ecs: system already registered")
	ErrUnknownSystem    = errors.New("ecs: unknown system")
	ErrUnknownPrefab    = errors.New("ecs: unknown prefab")
	ErrUnknownRelation  = errors.New("ecs: unknown relation")
)

// ErrReentrantFlush is not an error condition a caller needs to handle:
// Flush called from within a flush is a documented no-op, reported only
// so a caller that checks the return value can tell the two apart from
// "nothing was pending".
var ErrReentrantFlush = errors.New("ecs: flush called re-entrantly, ignored")
