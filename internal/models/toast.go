package models

import "time"

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast is a transient notification; the UI evicts it at ExpiresAt
type Toast struct {
	ID        int
	Kind      ToastKind
	Message   string
	ExpiresAt time.Time
}
