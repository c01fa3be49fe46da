package shop

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the outcome of a transaction. The zero value is Success.
type ErrorKind int

const (
	Success ErrorKind = iota
	Restricted
	OutOfStock
	InsufficientStock
	InsufficientSpace
	UserNotAllowed
	InsufficientFunds
	NoQuantitySelected
	InsufficientOwned
	NoSelection
	SessionClosed
	Failed
)

var kindNames = map[ErrorKind]string{
	Success:            "success",
	Restricted:         "restricted",
	OutOfStock:         "out_of_stock",
	InsufficientStock:  "insufficient_stock",
	InsufficientSpace:  "insufficient_space",
	UserNotAllowed:     "user_not_allowed",
	InsufficientFunds:  "insufficient_funds",
	NoQuantitySelected: "no_quantity_selected",
	InsufficientOwned:  "insufficient_owned",
	NoSelection:        "no_selection",
	SessionClosed:      "session_closed",
	Failed:             "failed",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ErrorKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", text)
}

// Sentinels for use with errors.Is.
var (
	ErrRestricted         = errors.New("entry is restricted")
	ErrOutOfStock         = errors.New("entry is out of stock")
	ErrInsufficientStock  = errors.New("not enough stock")
	ErrInsufficientSpace  = errors.New("not enough inventory space")
	ErrUserNotAllowed     = errors.New("character cannot use this entry")
	ErrInsufficientFunds  = errors.New("not enough money")
	ErrNoQuantitySelected = errors.New("no quantity selected")
	ErrInsufficientOwned  = errors.New("not enough owned")
	ErrNoSelection        = errors.New("nothing selected")

	ErrSessionClosed = errors.New("shop session is closed")
)

var kindSentinels = map[ErrorKind]error{
	Restricted:         ErrRestricted,
	OutOfStock:         ErrOutOfStock,
	InsufficientStock:  ErrInsufficientStock,
	InsufficientSpace:  ErrInsufficientSpace,
	UserNotAllowed:     ErrUserNotAllowed,
	InsufficientFunds:  ErrInsufficientFunds,
	NoQuantitySelected: ErrNoQuantitySelected,
	InsufficientOwned:  ErrInsufficientOwned,
	NoSelection:        ErrNoSelection,
	SessionClosed:      ErrSessionClosed,
}

// TransactionError is a rejected buy or sell. Rejections never change state.
type TransactionError struct {
	Kind     ErrorKind
	Mode     Mode
	EntryID  string
	Quantity int
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s %d x %q rejected: %v", e.Mode, e.Quantity, e.EntryID, kindSentinels[e.Kind])
}

func (e *TransactionError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// KindOf extracts the ErrorKind from err. A nil error is Success.
func KindOf(err error) ErrorKind {
	if err == nil {
		return Success
	}
	var te *TransactionError
	if errors.As(err, &te) {
		return te.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return Failed
}
