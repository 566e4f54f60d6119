package model

// AccountKind classifies accounts by the withdrawal rules they carry.
type AccountKind string

const (
	AccountKindBasic    AccountKind = "basic"
	AccountKindChecking AccountKind = "checking"
)
