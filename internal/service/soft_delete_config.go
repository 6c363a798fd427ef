package service

// SoftDeleteConfig is supplied per service instance.
type SoftDeleteConfig struct {
	// NotFoundIsNotAnError turns a missing entry into a valid status with
	// Result 0 instead of an invalid one.
	NotFoundIsNotAnError bool

	// UserFilterValue is handed to the repositories, which compare it with the
	// user column of every type declaring one. nil disables row scoping. It
	// must be an untyped nil, not a nil pointer, to mean "no filter".
	UserFilterValue interface{}
}
