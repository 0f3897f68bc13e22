package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindNotFound
	KindForbidden
	KindExternal
)

// BusinessError é uma falha esperada, com código estável para o cliente.
type BusinessError struct {
	Code    string
	Kind    Kind
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrValidation(code, message string) error {
	return BusinessError{Code: code, Kind: KindValidation, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Code: code, Kind: KindConflict, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Code: code, Kind: KindNotFound, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Code: code, Kind: KindForbidden, Message: message}
}

// ErrExternal embrulha uma falha de dependência externa (ex.: Stripe).
func ErrExternal(code string, err error) error {
	return BusinessError{Code: code, Kind: KindExternal, Message: "Serviço externo indisponível.", Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
