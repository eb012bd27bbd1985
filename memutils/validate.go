package memutils

// Validatable is implemented by anything that can check its own bookkeeping, such as
// a resource provider's resource table. DebugValidate acts on it.
type Validatable interface {
	Validate() error
}
