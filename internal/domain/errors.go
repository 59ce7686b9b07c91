package domain

import "errors"

// Client-facing messages for rejected input.
const (
	MsgTextTooShort      = "Texto do email muito curto ou vazio."
	MsgUnsupportedFormat = "Formato de arquivo não suportado. Use .txt ou .pdf"
	MsgFileTooLarge      = "Arquivo excede o tamanho máximo de 16MB."
	MsgInvalidRequest    = "Requisição inválida."
	MsgInternalError     = "Erro interno do servidor"
	MsgLanguageRejected  = "Email detectado em idioma diferente do português"
)

// InputError is a user-correctable problem with the submitted email.
// Message is safe to return to the client as-is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

var (
	// ErrTextTooShort is returned when the trimmed text has fewer than three characters.
	ErrTextTooShort = &InputError{Message: MsgTextTooShort}
	// ErrUnsupportedFormat is returned for uploads that are neither .txt nor .pdf.
	ErrUnsupportedFormat = &InputError{Message: MsgUnsupportedFormat}
	// ErrInvalidRequest is returned for bodies that cannot be parsed.
	ErrInvalidRequest = &InputError{Message: MsgInvalidRequest}
	// ErrFileTooLarge is returned when the upload exceeds the body limit.
	ErrFileTooLarge = &InputError{Message: MsgFileTooLarge}
)

// AsInputError returns the InputError in err's chain, if any.
func AsInputError(err error) (*InputError, bool) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr, true
	}
	return nil, false
}
